package evaluator

import (
	"io"
	"iter"

	"github.com/sirupsen/logrus"
)

// Pairer empareja cada consulta del cliente con la primera respuesta del agente.
// Recorre las respuestas una sola vez y solo recuerda la anterior y la
// consulta del cliente pendiente.
//
// Se asume que las respuestas llegan ordenadas y que la primera es del cliente.
// Si no es así no se corta la ejecución: simplemente salen menos mediciones.
type Pairer struct {
	prev         *Response
	lastCustomer *Response
	log          logrus.FieldLogger
}

// NewPairer crea un Pairer; log puede ser nil
func NewPairer(log logrus.FieldLogger) *Pairer {
	if log == nil {
		log = discardLogger()
	}
	return &Pairer{log: log}
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Next procesa la siguiente respuesta y devuelve su evaluación
func (p *Pairer) Next(current Response) Evaluation {
	var taken *ResponseTime

	switch {
	case current.IsAgent() && p.prev != nil && !p.prev.IsAgent():
		// Primera respuesta del agente tras uno o más mensajes del cliente
		rt := NewResponseTime(p.lastCustomer.RespondedAt(), current.RespondedAt())
		if rt.Duration() <= 0 {
			p.log.WithFields(logrus.Fields{
				"asked_at":    formatTimestamp(rt.AskedAt()),
				"answered_at": formatTimestamp(rt.AnsweredAt()),
				"duration":    formatDuration(rt.Duration()),
			}).Warn("Tiempo de respuesta no positivo")
		}
		taken = &rt
	case !current.IsAgent():
		// Solo el primer mensaje de una racha del cliente marca el inicio de la espera
		if p.prev == nil || p.prev.IsAgent() {
			customer := current
			p.lastCustomer = &customer
		}
	case p.prev == nil:
		p.log.WithField("email", current.Author().Email).
			Debug("La conversación empieza con un agente, no hay consulta que medir")
	}

	if p.prev != nil && current.RespondedAt().Before(p.prev.RespondedAt()) {
		p.log.WithFields(logrus.Fields{
			"previous": formatTimestamp(p.prev.RespondedAt()),
			"current":  formatTimestamp(current.RespondedAt()),
		}).Warn("Comentarios fuera de orden cronológico")
	}

	prev := current
	p.prev = &prev
	return Evaluation{Response: current, TimeTaken: taken}
}

// Pair evalúa una secuencia de respuestas. Cada recorrido usa un Pairer nuevo,
// así que la secuencia resultante se puede recorrer más de una vez si la de
// entrada también lo permite.
func Pair(responses iter.Seq[Response], log logrus.FieldLogger) iter.Seq[Evaluation] {
	return func(yield func(Evaluation) bool) {
		p := NewPairer(log)
		for r := range responses {
			if !yield(p.Next(r)) {
				return
			}
		}
	}
}

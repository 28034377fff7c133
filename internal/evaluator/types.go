package evaluator

import (
	"strings"
	"time"
)

// Fields columnas del reporte, en este orden
var Fields = []string{
	"email",
	"user type",
	"commented at",
	"formula",
	"weekends",
	"response time",
}

// Evaluation es una fila del reporte: la respuesta y, si cierra una espera
// del cliente, el tiempo de respuesta medido
type Evaluation struct {
	Response  Response
	TimeTaken *ResponseTime // nil salvo en la primera respuesta del agente tras el cliente
}

// Record devuelve la fila indexada por columna
func (e Evaluation) Record() map[string]string {
	record := map[string]string{
		"email":         e.Response.Author().Email,
		"user type":     e.Response.UserType(),
		"commented at":  formatTimestamp(e.Response.RespondedAt()),
		"formula":       "",
		"weekends":      "",
		"response time": "",
	}
	if e.TimeTaken != nil {
		record["formula"] = e.TimeTaken.Formula()
		record["weekends"] = strings.Join(e.TimeTaken.WeekendDates(), ",")
		record["response time"] = formatDuration(e.TimeTaken.Duration())
	}
	return record
}

// Row devuelve la fila en el orden de Fields
func (e Evaluation) Row() []string {
	record := e.Record()
	row := make([]string, len(Fields))
	for i, field := range Fields {
		row[i] = record[field]
	}
	return row
}

// Stats resumen de un ticket evaluado
type Stats struct {
	Responses int
	Measured  int
	Total     time.Duration
	Longest   *ResponseTime
}

// Average promedio de los tiempos medidos
func (s Stats) Average() time.Duration {
	if s.Measured == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Measured)
}

// Summarize calcula el resumen de las evaluaciones
func Summarize(evals []Evaluation) Stats {
	stats := Stats{Responses: len(evals)}
	for _, e := range evals {
		if e.TimeTaken == nil {
			continue
		}
		stats.Measured++
		stats.Total += e.TimeTaken.Duration()
		if stats.Longest == nil || e.TimeTaken.Duration() > stats.Longest.Duration() {
			stats.Longest = e.TimeTaken
		}
	}
	return stats
}

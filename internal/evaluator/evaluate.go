package evaluator

import (
	"context"
	"fmt"
	"iter"

	"github.com/sirupsen/logrus"

	"github.com/PhelGc/furina-latency/internal/zendesk"
)

// Source entrega los comentarios de un ticket en orden cronológico
type Source interface {
	Comments(ctx context.Context, ticketID int64) iter.Seq2[zendesk.Comment, error]
}

// Evaluate lee los comentarios públicos del ticket y los evalúa.
// Un comentario con fecha inválida invalida todo el ticket.
func Evaluate(ctx context.Context, src Source, ticket zendesk.Ticket, log logrus.FieldLogger) ([]Evaluation, error) {
	if log == nil {
		log = discardLogger()
	}

	var failed error
	skipped := 0
	responses := func(yield func(Response) bool) {
		for comment, err := range src.Comments(ctx, ticket.ID) {
			if err != nil {
				failed = err
				return
			}
			// Las notas internas no cuentan como respuesta
			if !comment.Public {
				skipped++
				continue
			}

			response, err := NewResponse(comment)
			if err != nil {
				failed = fmt.Errorf("comentario %d del ticket %d: %w", comment.ID, ticket.ID, err)
				return
			}
			if !yield(response) {
				return
			}
		}
	}

	var evals []Evaluation
	for e := range Pair(responses, log) {
		evals = append(evals, e)
	}
	if failed != nil {
		return nil, failed
	}

	log.WithFields(logrus.Fields{
		"ticket_id": ticket.ID,
		"public":    len(evals),
		"internal":  skipped,
	}).Debug("Comentarios evaluados")
	return evals, nil
}

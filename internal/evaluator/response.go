package evaluator

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/PhelGc/furina-latency/internal/zendesk"
)

// ErrParse fecha de comentario que no se pudo interpretar
var ErrParse = fmt.Errorf("%w: fecha inválida", zendesk.ErrMalformedInput)

// Roles de Zendesk que cuentan como agente, el resto es cliente
var agentRoles = map[string]struct{}{
	"agent": {},
	"admin": {},
}

var isoDateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[T ]\d{2}:\d{2}(:\d{2}(\.\d{1,9})?)?$`)

// Response es un comentario público ya normalizado. No se modifica tras crearse.
type Response struct {
	author      zendesk.User
	respondedAt time.Time
}

// NewResponse normaliza un comentario de Zendesk
func NewResponse(c zendesk.Comment) (Response, error) {
	respondedAt, err := parseTimestamp(c.CreatedAt)
	if err != nil {
		return Response{}, err
	}
	return Response{author: c.Author, respondedAt: respondedAt}, nil
}

// Author datos del autor tal como llegaron de Zendesk
func (r Response) Author() zendesk.User { return r.author }

// RespondedAt momento del comentario, sin zona horaria
func (r Response) RespondedAt() time.Time { return r.respondedAt }

// IsAgent indica si el autor tiene rol de agente o admin
func (r Response) IsAgent() bool {
	_, ok := agentRoles[r.author.Role]
	return ok
}

// UserType "agent" o "customer", tal como va en el reporte
func (r Response) UserType() string {
	if r.IsAgent() {
		return "agent"
	}
	return "customer"
}

// parseTimestamp quita la 'Z' final y parsea el resto como fecha local.
// El resultado se guarda en UTC solo como soporte, la hora no se convierte.
func parseTimestamp(s string) (time.Time, error) {
	if !strings.HasSuffix(s, "Z") && !strings.HasSuffix(s, "z") {
		return time.Time{}, fmt.Errorf("%w: %q no termina en 'Z'", ErrParse, s)
	}
	naive := s[:len(s)-1]
	if !isoDateTime.MatchString(naive) {
		return time.Time{}, fmt.Errorf("%w: %q no es ISO-8601 con fecha y hora", ErrParse, s)
	}

	t, err := dateparse.ParseIn(naive, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	// Una zona explícita mezclaría horas con y sin offset
	if t.Location() != time.UTC {
		return time.Time{}, fmt.Errorf("%w: %q trae zona horaria", ErrParse, s)
	}
	return t, nil
}

// formatTimestamp formato "2006-01-02 15:04:05", con microsegundos si los hay
func formatTimestamp(t time.Time) string {
	out := t.Format("2006-01-02 15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		out += fmt.Sprintf(".%06d", us)
	}
	return out
}

package zendesk

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
)

// ErrMalformedInput entrada con forma inesperada (URL del ticket, fechas)
var ErrMalformedInput = errors.New("entrada mal formada")

var ticketPath = regexp.MustCompile(`^/agent/tickets/(\d+)$`)

// Ticket identifica la conversación a evaluar
type Ticket struct {
	ID int64
}

// ParseTicketURL extrae el id de una URL como https://foo.zendesk.com/agent/tickets/123
func ParseTicketURL(raw string) (Ticket, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Ticket{}, fmt.Errorf("%w: no se pudo parsear la URL %q: %v", ErrMalformedInput, raw, err)
	}

	matched := ticketPath.FindStringSubmatch(u.Path)
	if matched == nil {
		return Ticket{}, fmt.Errorf("%w: la URL %q no corresponde a un ticket", ErrMalformedInput, raw)
	}

	id, err := strconv.ParseInt(matched[1], 10, 64)
	if err != nil {
		return Ticket{}, fmt.Errorf("%w: id de ticket inválido en %q: %v", ErrMalformedInput, raw, err)
	}
	return Ticket{ID: id}, nil
}

// DefaultOutput nombre del CSV cuando no se indica uno
func (t Ticket) DefaultOutput() string {
	return fmt.Sprintf("%d.csv", t.ID)
}

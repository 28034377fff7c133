package evaluator

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhelGc/furina-latency/internal/zendesk"
)

// fakeSource fuente en memoria para no depender de Zendesk
type fakeSource struct {
	comments []zendesk.Comment
	err      error
	gotID    int64
	served   int
}

func (f *fakeSource) Comments(_ context.Context, ticketID int64) iter.Seq2[zendesk.Comment, error] {
	f.gotID = ticketID
	return func(yield func(zendesk.Comment, error) bool) {
		for _, c := range f.comments {
			f.served++
			if !yield(c, nil) {
				return
			}
		}
		if f.err != nil {
			yield(zendesk.Comment{}, f.err)
		}
	}
}

func privateNote(c zendesk.Comment) zendesk.Comment {
	c.Public = false
	return c
}

func TestEvaluate(t *testing.T) {
	src := &fakeSource{comments: []zendesk.Comment{
		comment("end-user", "2023-01-02T09:00:00Z"),
		privateNote(comment("agent", "2023-01-02T09:01:00Z")),
		comment("end-user", "2023-01-02T09:05:00Z"),
		comment("agent", "2023-01-02T09:10:00Z"),
	}}
	log, _ := test.NewNullLogger()

	evals, err := Evaluate(context.Background(), src, zendesk.Ticket{ID: 123}, log)
	require.NoError(t, err)

	assert.Equal(t, int64(123), src.gotID)
	require.Len(t, evals, 3, "las notas internas no generan filas")
	require.NotNil(t, evals[2].TimeTaken)
	assert.WithinDuration(t, at(2, 9, 0), evals[2].TimeTaken.AskedAt(), 0)
}

func TestEvaluate_MalformedTimestamp(t *testing.T) {
	bad := comment("agent", "2023-01-02T09:10:00")
	bad.ID = 99
	src := &fakeSource{comments: []zendesk.Comment{
		comment("end-user", "2023-01-02T09:00:00Z"),
		bad,
	}}

	evals, err := Evaluate(context.Background(), src, zendesk.Ticket{ID: 1}, nil)
	require.Error(t, err)
	assert.Nil(t, evals)
	assert.True(t, errors.Is(err, ErrParse))
	assert.Contains(t, err.Error(), "comentario 99")
}

func TestEvaluate_MalformedInternalNoteIgnored(t *testing.T) {
	src := &fakeSource{comments: []zendesk.Comment{
		comment("end-user", "2023-01-02T09:00:00Z"),
		privateNote(comment("agent", "not a date")),
	}}

	evals, err := Evaluate(context.Background(), src, zendesk.Ticket{ID: 1}, nil)
	require.NoError(t, err)
	assert.Len(t, evals, 1)
}

func TestEvaluate_SourceError(t *testing.T) {
	boom := errors.New("status 500")
	src := &fakeSource{
		comments: []zendesk.Comment{comment("end-user", "2023-01-02T09:00:00Z")},
		err:      boom,
	}

	evals, err := Evaluate(context.Background(), src, zendesk.Ticket{ID: 1}, nil)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, evals)
}

func TestEvaluate_Empty(t *testing.T) {
	evals, err := Evaluate(context.Background(), &fakeSource{}, zendesk.Ticket{ID: 1}, nil)
	require.NoError(t, err)
	assert.Empty(t, evals)
}

func TestEvaluate_StopsReadingAtFirstBadComment(t *testing.T) {
	src := &fakeSource{comments: []zendesk.Comment{
		comment("end-user", "2023-01-02T09:00:00Z"),
		comment("agent", "2023-01-02T09Z"),
		comment("agent", "2023-01-02T10:00:00Z"),
	}}

	_, err := Evaluate(context.Background(), src, zendesk.Ticket{ID: 1}, nil)
	assert.ErrorIs(t, err, ErrParse)
	assert.Equal(t, 2, src.served)
}

func TestEvaluate_LogsPairerWarnings(t *testing.T) {
	src := &fakeSource{comments: []zendesk.Comment{
		comment("end-user", "2023-01-02T10:00:00Z"),
		comment("agent", "2023-01-02T09:00:00Z"),
	}}
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	evals, err := Evaluate(context.Background(), src, zendesk.Ticket{ID: 7}, log)
	require.NoError(t, err)
	require.Len(t, evals, 2)
	require.NotNil(t, evals[1].TimeTaken)
	assert.Empty(t, evals[1].TimeTaken.WeekendDates())

	var messages []string
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	assert.Contains(t, messages, "Tiempo de respuesta no positivo")
	assert.Contains(t, messages, "Comentarios fuera de orden cronológico")
	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "Comentarios evaluados", last.Message)
	assert.Equal(t, int64(7), last.Data["ticket_id"])
}

package evaluator

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhelGc/furina-latency/internal/zendesk"
)

func comment(role, createdAt string) zendesk.Comment {
	return zendesk.Comment{
		Public:    true,
		CreatedAt: createdAt,
		Author: zendesk.User{
			Name:  role + " user",
			Email: role + "@example.com",
			Role:  role,
		},
	}
}

func mustResponse(t *testing.T, role, createdAt string) Response {
	t.Helper()
	r, err := NewResponse(comment(role, createdAt))
	require.NoError(t, err)
	return r
}

func TestNewResponse(t *testing.T) {
	c := comment("end-user", "2023-01-02T09:00:00Z")
	c.Author.TimeZone = "America/Lima"
	c.Author.Locale = "es"
	c.Author.OrganizationID = 7

	r, err := NewResponse(c)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC), r.RespondedAt(), 0)
	assert.Equal(t, "end-user@example.com", r.Author().Email)
	assert.Equal(t, "America/Lima", r.Author().TimeZone)
	assert.Equal(t, "es", r.Author().Locale)
	assert.Equal(t, int64(7), r.Author().OrganizationID)
	assert.False(t, r.IsAgent())
	assert.Equal(t, "customer", r.UserType())
}

func TestNewResponse_FractionalSeconds(t *testing.T) {
	r := mustResponse(t, "agent", "2023-01-02T09:00:00.250000Z")
	assert.Equal(t, 250*time.Millisecond, time.Duration(r.RespondedAt().Nanosecond()))
	assert.Equal(t, "2023-01-02 09:00:00.250000", formatTimestamp(r.RespondedAt()))
}

func TestNewResponse_Malformed(t *testing.T) {
	for _, createdAt := range []string{
		"2023-01-02T09:00:00",
		"2023-01-02T09:00:00+00:00",
		"Z",
		"",
		"yesterdayZ",
		"2023-13-45T09:00:00Z",
		"1672650000Z",
		"2023-01-02T09:00:00+05:00Z",
		"2023-01-02T09Z",
		"2023-01-02Z",
	} {
		t.Run(createdAt, func(t *testing.T) {
			_, err := NewResponse(comment("agent", createdAt))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse))
			assert.True(t, errors.Is(err, zendesk.ErrMalformedInput))
		})
	}
}

func TestResponse_IsAgent(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"agent", true},
		{"admin", true},
		{"end-user", false},
		{"", false},
		{"Agent", false},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			r := mustResponse(t, tt.role, "2023-01-02T09:00:00Z")
			assert.Equal(t, tt.want, r.IsAgent())
			if tt.want {
				assert.Equal(t, "agent", r.UserType())
			} else {
				assert.Equal(t, "customer", r.UserType())
			}
		})
	}
}

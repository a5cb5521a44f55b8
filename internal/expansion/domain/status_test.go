package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	all := []Status{
		StatusPending, StatusEvaluating, StatusFollowing, StatusNegotiating,
		StatusContracted, StatusRejected, StatusSuspended,
	}

	allowed := map[Status][]Status{
		StatusPending:     {StatusEvaluating, StatusRejected, StatusSuspended},
		StatusEvaluating:  {StatusFollowing, StatusRejected, StatusSuspended},
		StatusFollowing:   {StatusNegotiating, StatusRejected, StatusSuspended},
		StatusNegotiating: {StatusContracted, StatusRejected, StatusSuspended},
		StatusContracted:  {},
		StatusRejected:    {},
		StatusSuspended:   {StatusPending, StatusEvaluating, StatusFollowing, StatusNegotiating, StatusRejected},
	}

	for from, targets := range allowed {
		permitted := make(map[Status]bool, len(targets))
		for _, target := range targets {
			permitted[target] = true
		}
		for _, to := range all {
			got := from.CanTransitionTo(to)
			assert.Equal(t, permitted[to], got, "%s -> %s", from, to)
		}
	}
}

func TestStatus_NoSelfTransitions(t *testing.T) {
	for _, s := range []Status{
		StatusPending, StatusEvaluating, StatusFollowing, StatusNegotiating,
		StatusContracted, StatusRejected, StatusSuspended,
	} {
		assert.False(t, s.CanTransitionTo(s), "%s -> %s must be refused", s, s)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusContracted.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusSuspended.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	t.Run("accepts known values", func(t *testing.T) {
		status, err := ParseStatus("NEGOTIATING")
		require.NoError(t, err)
		assert.Equal(t, StatusNegotiating, status)
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := ParseStatus("negotiating")
		assert.ErrorIs(t, err, ErrUnknownStatus)

		_, err = ParseStatus("")
		assert.ErrorIs(t, err, ErrUnknownStatus)
	})
}

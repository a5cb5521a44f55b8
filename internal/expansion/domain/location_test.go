package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocation(t *testing.T) *CandidateLocation {
	t.Helper()
	location, err := NewCandidateLocation("CL-042", "Harbor Plaza Unit 3", "3 Harbor Rd", uuid.New(), PriorityHigh)
	require.NoError(t, err)
	return location
}

func TestNewCandidateLocation(t *testing.T) {
	t.Run("starts pending with a creation event", func(t *testing.T) {
		location := newTestLocation(t)

		assert.Equal(t, StatusPending, location.Status())
		assert.Equal(t, PriorityHigh, location.Priority())
		require.Len(t, location.DomainEvents(), 1)
		assert.Equal(t, "expansion.location.created", location.DomainEvents()[0].RoutingKey())
	})

	t.Run("rejects empty identity fields", func(t *testing.T) {
		_, err := NewCandidateLocation("", "Name", "Addr", uuid.New(), PriorityLow)
		assert.ErrorIs(t, err, ErrEmptyCode)

		_, err = NewCandidateLocation("CL-1", "", "Addr", uuid.New(), PriorityLow)
		assert.ErrorIs(t, err, ErrEmptyName)

		_, err = NewCandidateLocation("CL-1", "Name", "", uuid.New(), PriorityLow)
		assert.ErrorIs(t, err, ErrEmptyAddress)
	})

	t.Run("unknown priority falls back to medium", func(t *testing.T) {
		location, err := NewCandidateLocation("CL-1", "Name", "Addr", uuid.New(), Priority("whenever"))
		require.NoError(t, err)
		assert.Equal(t, PriorityMedium, location.Priority())
	})
}

func TestCandidateLocation_ChangeStatus(t *testing.T) {
	t.Run("walks the full lifecycle to contract", func(t *testing.T) {
		location := newTestLocation(t)

		for _, target := range []Status{StatusEvaluating, StatusFollowing, StatusNegotiating, StatusContracted} {
			require.NoError(t, location.ChangeStatus(target))
			assert.Equal(t, target, location.Status())
		}
	})

	t.Run("illegal jump names both statuses", func(t *testing.T) {
		location := newTestLocation(t)

		err := location.ChangeStatus(StatusContracted)
		require.ErrorIs(t, err, ErrInvalidStatusTransition)
		assert.Contains(t, err.Error(), "PENDING")
		assert.Contains(t, err.Error(), "CONTRACTED")
		assert.Equal(t, StatusPending, location.Status())
	})

	t.Run("unknown status is rejected before the table", func(t *testing.T) {
		location := newTestLocation(t)
		assert.ErrorIs(t, location.ChangeStatus(Status("LIMBO")), ErrUnknownStatus)
	})

	t.Run("terminal statuses admit nothing", func(t *testing.T) {
		location := newTestLocation(t)
		require.NoError(t, location.ChangeStatus(StatusRejected))

		err := location.ChangeStatus(StatusPending)
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("suspension can resume anywhere pre-terminal", func(t *testing.T) {
		for _, resume := range []Status{StatusPending, StatusEvaluating, StatusFollowing, StatusNegotiating} {
			location := newTestLocation(t)
			require.NoError(t, location.ChangeStatus(StatusSuspended))
			require.NoError(t, location.ChangeStatus(resume))
			assert.Equal(t, resume, location.Status())
		}
	})

	t.Run("emits a status changed event", func(t *testing.T) {
		location := newTestLocation(t)
		location.ClearDomainEvents()

		require.NoError(t, location.ChangeStatus(StatusEvaluating))

		require.Len(t, location.DomainEvents(), 1)
		assert.Equal(t, "expansion.location.status_changed", location.DomainEvents()[0].RoutingKey())
	})

	t.Run("reaching contract switches the routing key", func(t *testing.T) {
		location := newTestLocation(t)
		require.NoError(t, location.ChangeStatus(StatusEvaluating))
		require.NoError(t, location.ChangeStatus(StatusFollowing))
		require.NoError(t, location.ChangeStatus(StatusNegotiating))
		location.ClearDomainEvents()

		require.NoError(t, location.ChangeStatus(StatusContracted))

		require.Len(t, location.DomainEvents(), 1)
		assert.Equal(t, "expansion.location.contracted", location.DomainEvents()[0].RoutingKey())
	})
}

func TestCandidateLocation_ForceReject(t *testing.T) {
	location := newTestLocation(t)
	require.NoError(t, location.ChangeStatus(StatusEvaluating))
	location.ClearDomainEvents()

	location.ForceReject()

	assert.Equal(t, StatusRejected, location.Status())
	require.Len(t, location.DomainEvents(), 1)

	// Idempotent on an already rejected location.
	location.ClearDomainEvents()
	location.ForceReject()
	assert.Empty(t, location.DomainEvents())
}

func TestCandidateLocation_UpdateDetails(t *testing.T) {
	t.Run("contracted locations are frozen", func(t *testing.T) {
		location := newTestLocation(t)
		require.NoError(t, location.ChangeStatus(StatusEvaluating))
		require.NoError(t, location.ChangeStatus(StatusFollowing))
		require.NoError(t, location.ChangeStatus(StatusNegotiating))
		require.NoError(t, location.ChangeStatus(StatusContracted))

		err := location.UpdateDetails("New Name", "New Addr", nil, RentTerms{}, Landlord{}, nil, nil, nil)
		assert.ErrorIs(t, err, ErrLocationContracted)
	})

	t.Run("replaces the descriptive fields", func(t *testing.T) {
		location := newTestLocation(t)
		area := 240.0

		err := location.UpdateDetails(
			"Harbor Plaza Unit 3B", "3B Harbor Rd", &area,
			RentTerms{MonthlyRent: 5200, DepositFee: 10400},
			Landlord{Name: "K. Osei", Phone: "555-0147"},
			&Coordinates{Latitude: 51.2, Longitude: 4.4},
			[]string{"front.jpg"}, []string{"corner", "transit"},
		)

		require.NoError(t, err)
		assert.Equal(t, "Harbor Plaza Unit 3B", location.Name())
		assert.Equal(t, 5200.0, location.Rent().MonthlyRent)
		assert.Equal(t, []string{"corner", "transit"}, location.Tags())
		require.NotNil(t, location.AreaSqm())
		assert.Equal(t, 240.0, *location.AreaSqm())
	})
}

func TestCandidateLocation_Scoring(t *testing.T) {
	t.Run("criteria derive the composite score", func(t *testing.T) {
		location := newTestLocation(t)

		location.ApplyCriteria(EvaluationCriteria{Location: 8, Traffic: 7, Competition: 6, Cost: 9, Potential: 8})

		require.NotNil(t, location.Score())
		assert.InDelta(t, 7.55, *location.Score(), 1e-9)
		require.NotNil(t, location.Criteria())
	})

	t.Run("raw score clears stale criteria", func(t *testing.T) {
		location := newTestLocation(t)
		location.ApplyCriteria(EvaluationCriteria{Location: 8})

		location.SetRawScore(6.2)

		require.NotNil(t, location.Score())
		assert.Equal(t, 6.2, *location.Score())
		assert.Nil(t, location.Criteria())
	})
}

func TestCandidateLocation_AppendNote(t *testing.T) {
	location := newTestLocation(t)

	location.AppendNote("begin evaluation")
	location.AppendNote("begin follow-up")

	stamp := time.Now().UTC().Format("2006-01-02")
	assert.Contains(t, location.Notes(), "["+stamp)
	assert.Contains(t, location.Notes(), "] begin evaluation")
	assert.Contains(t, location.Notes(), "\n")
}

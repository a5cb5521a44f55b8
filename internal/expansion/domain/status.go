package domain

import "fmt"

// Status represents the lifecycle status of a candidate location.
type Status string

const (
	// StatusPending is the initial state of a newly registered site.
	StatusPending Status = "PENDING"
	// StatusEvaluating indicates the site is being scored.
	StatusEvaluating Status = "EVALUATING"
	// StatusFollowing indicates the site is under active follow-up.
	StatusFollowing Status = "FOLLOWING"
	// StatusNegotiating indicates lease negotiation is in progress.
	StatusNegotiating Status = "NEGOTIATING"
	// StatusContracted indicates the lease was signed. Terminal.
	StatusContracted Status = "CONTRACTED"
	// StatusRejected indicates the site was dropped. Terminal; also the
	// target of soft deletion.
	StatusRejected Status = "REJECTED"
	// StatusSuspended parks a site; it can resume to any pre-terminal state.
	StatusSuspended Status = "SUSPENDED"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusEvaluating, StatusFollowing, StatusNegotiating,
		StatusContracted, StatusRejected, StatusSuspended:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusContracted || s == StatusRejected
}

// CanTransitionTo returns true if transitioning to the given status is valid.
// This is the single source of truth consulted before any status mutation.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusEvaluating || target == StatusRejected || target == StatusSuspended
	case StatusEvaluating:
		return target == StatusFollowing || target == StatusRejected || target == StatusSuspended
	case StatusFollowing:
		return target == StatusNegotiating || target == StatusRejected || target == StatusSuspended
	case StatusNegotiating:
		return target == StatusContracted || target == StatusRejected || target == StatusSuspended
	case StatusSuspended:
		return target == StatusPending || target == StatusEvaluating ||
			target == StatusFollowing || target == StatusNegotiating || target == StatusRejected
	case StatusContracted, StatusRejected:
		return false
	default:
		return false
	}
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

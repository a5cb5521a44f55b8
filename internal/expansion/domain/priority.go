package domain

import "fmt"

// Priority represents the business urgency of a candidate location or
// follow-up record.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// ParsePriority parses a string into a Priority.
func ParsePriority(s string) (Priority, error) {
	priority := Priority(s)
	if !priority.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, s)
	}
	return priority, nil
}

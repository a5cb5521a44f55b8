package domain

import "errors"

var (
	// ErrLocationNotFound indicates the requested candidate location was not found.
	ErrLocationNotFound = errors.New("candidate location not found")

	// ErrFollowUpNotFound indicates the requested follow-up record was not found.
	ErrFollowUpNotFound = errors.New("follow-up record not found")

	// ErrInvalidStatusTransition indicates an invalid lifecycle transition was attempted.
	ErrInvalidStatusTransition = errors.New("invalid status transition")

	// ErrUnknownStatus indicates an unrecognized status value.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrUnknownPriority indicates an unrecognized priority value.
	ErrUnknownPriority = errors.New("unknown priority")

	// ErrLocationContracted indicates the location is contracted and its
	// core fields can no longer be modified.
	ErrLocationContracted = errors.New("location is contracted")

	// ErrFollowUpCompleted indicates the follow-up record is completed and
	// can no longer be deleted.
	ErrFollowUpCompleted = errors.New("follow-up record is completed")

	// ErrEmptyCode indicates the business code cannot be empty.
	ErrEmptyCode = errors.New("code cannot be empty")

	// ErrEmptyName indicates the name cannot be empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyAddress indicates the address cannot be empty.
	ErrEmptyAddress = errors.New("address cannot be empty")
)

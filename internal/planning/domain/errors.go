package domain

import "errors"

var (
	// ErrPlanNotFound indicates the requested store plan was not found.
	ErrPlanNotFound = errors.New("store plan not found")

	// ErrInvalidPlanTransition indicates an invalid plan status transition.
	ErrInvalidPlanTransition = errors.New("invalid plan status transition")

	// ErrUnknownPlanStatus indicates an unrecognized plan status value.
	ErrUnknownPlanStatus = errors.New("unknown plan status")

	// ErrEmptyName indicates the name cannot be empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidTarget indicates the opening target must be positive.
	ErrInvalidTarget = errors.New("target count must be positive")
)

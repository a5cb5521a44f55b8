package application

import "context"

// Query represents a read-only request.
type Query interface {
	QueryName() string
}

// QueryHandler handles a specific query type and returns a result.
type QueryHandler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

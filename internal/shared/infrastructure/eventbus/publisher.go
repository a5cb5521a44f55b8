// Package eventbus publishes domain events drained from the outbox to a
// message broker.
package eventbus

import (
	"context"
	"sync"
)

// Publisher defines the interface for publishing events to a broker.
type Publisher interface {
	// Publish sends a payload under the given routing key.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// NopPublisher discards every message. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []byte) error { return nil }
func (NopPublisher) Close() error                                  { return nil }

// InProcessBus is an in-memory Publisher that fans messages out to
// subscribed handler functions. Used in local mode and tests.
type InProcessBus struct {
	mu       sync.RWMutex
	handlers map[string][]func(routingKey string, payload []byte)
}

// NewInProcessBus creates an empty in-process bus.
func NewInProcessBus() *InProcessBus {
	return &InProcessBus{
		handlers: make(map[string][]func(string, []byte)),
	}
}

// Subscribe registers a handler for a routing key. The empty key
// subscribes to all messages.
func (b *InProcessBus) Subscribe(routingKey string, fn func(routingKey string, payload []byte)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[routingKey] = append(b.handlers[routingKey], fn)
}

// Publish delivers the payload synchronously to matching handlers.
func (b *InProcessBus) Publish(_ context.Context, routingKey string, payload []byte) error {
	b.mu.RLock()
	handlers := make([]func(string, []byte), 0, len(b.handlers[routingKey])+len(b.handlers[""]))
	handlers = append(handlers, b.handlers[routingKey]...)
	handlers = append(handlers, b.handlers[""]...)
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(routingKey, payload)
	}
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessBus) Close() error { return nil }

package eventbus

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerPublisher wraps a Publisher with a circuit breaker so a broker
// outage sheds publish attempts fast instead of piling up timeouts. The
// outbox retries later, so tripped publishes are not lost.
type BreakerPublisher struct {
	inner   Publisher
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerPublisher wraps the given publisher.
func NewBreakerPublisher(inner Publisher) *BreakerPublisher {
	settings := gobreaker.Settings{
		Name:    "eventbus-publisher",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerPublisher{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// Publish forwards to the wrapped publisher through the breaker.
func (p *BreakerPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	_, err := p.breaker.Execute(func() (any, error) {
		return nil, p.inner.Publish(ctx, routingKey, payload)
	})
	return err
}

// Close closes the wrapped publisher.
func (p *BreakerPublisher) Close() error {
	return p.inner.Close()
}

package outbox

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/storeops/siteline/internal/shared/infrastructure/eventbus"
)

// ProcessorConfig holds configuration for the outbox processor.
type ProcessorConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxRetries   int
}

// DefaultProcessorConfig returns sensible defaults.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		PollInterval: 200 * time.Millisecond,
		BatchSize:    100,
		MaxRetries:   5,
	}
}

// Processor polls the outbox and publishes messages to the event bus.
type Processor struct {
	repo      Repository
	publisher eventbus.Publisher
	config    ProcessorConfig
	logger    *slog.Logger

	wg       sync.WaitGroup
	stopChan chan struct{}
	running  bool
	mu       sync.Mutex
}

// NewProcessor creates a new outbox processor.
func NewProcessor(repo Repository, publisher eventbus.Publisher, config ProcessorConfig, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		repo:      repo,
		publisher: publisher,
		config:    config,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the polling loop in a goroutine.
func (p *Processor) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopChan = make(chan struct{})
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(ctx)

	p.logger.Info("outbox processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize,
	)
}

// Stop gracefully stops the processor.
func (p *Processor) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	p.wg.Wait()
	p.logger.Info("outbox processor stopped")
}

func (p *Processor) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.stopChan:
			return
		case <-ticker.C:
			if err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error("failed to process outbox batch", "error", err)
			}
		}
	}
}

// ProcessBatch drains one batch of unpublished messages. Exported so tests
// and the CLI can pump the outbox without the polling loop.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	messages, err := p.repo.FetchUnpublished(ctx, p.config.BatchSize)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if !msg.CanRetry(p.config.MaxRetries) {
			continue
		}

		if err := p.publisher.Publish(ctx, msg.RoutingKey, msg.Payload); err != nil {
			p.logger.Warn("publish failed",
				"message_id", msg.ID,
				"routing_key", msg.RoutingKey,
				"retry_count", msg.RetryCount,
				"error", err,
			)
			if markErr := p.repo.MarkFailed(ctx, msg.ID, err.Error()); markErr != nil {
				p.logger.Error("failed to record publish failure", "message_id", msg.ID, "error", markErr)
			}
			continue
		}

		if err := p.repo.MarkPublished(ctx, msg.ID); err != nil {
			p.logger.Error("failed to mark message published", "message_id", msg.ID, "error", err)
		}
	}

	return nil
}

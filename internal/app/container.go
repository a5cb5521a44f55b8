// Package app wires the service together: connection, repositories,
// handlers and the background outbox processor.
package app

import (
	"context"
	"fmt"
	"log/slog"

	directoryCommands "github.com/storeops/siteline/internal/directory/application/commands"
	directoryQueries "github.com/storeops/siteline/internal/directory/application/queries"
	directoryPersistence "github.com/storeops/siteline/internal/directory/infrastructure/persistence"
	expansionCommands "github.com/storeops/siteline/internal/expansion/application/commands"
	expansionQueries "github.com/storeops/siteline/internal/expansion/application/queries"
	expansionPersistence "github.com/storeops/siteline/internal/expansion/infrastructure/persistence"
	planningCommands "github.com/storeops/siteline/internal/planning/application/commands"
	planningQueries "github.com/storeops/siteline/internal/planning/application/queries"
	planningPersistence "github.com/storeops/siteline/internal/planning/infrastructure/persistence"
	"github.com/storeops/siteline/internal/shared/infrastructure/cache"
	"github.com/storeops/siteline/internal/shared/infrastructure/database"
	"github.com/storeops/siteline/internal/shared/infrastructure/eventbus"
	"github.com/storeops/siteline/internal/shared/infrastructure/metrics"
	"github.com/storeops/siteline/internal/shared/infrastructure/migrations"
	"github.com/storeops/siteline/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/storeops/siteline/internal/shared/infrastructure/persistence"
	"github.com/storeops/siteline/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Conn    database.Connection
	Metrics *metrics.Metrics
	Cache   cache.Cache

	Publisher       eventbus.Publisher
	OutboxRepo      outbox.Repository
	OutboxProcessor *outbox.Processor

	// Expansion
	CreateLocation   *expansionCommands.CreateLocationHandler
	UpdateLocation   *expansionCommands.UpdateLocationHandler
	ChangeStatus     *expansionCommands.ChangeLocationStatusHandler
	ChangePriority   *expansionCommands.ChangeLocationPriorityHandler
	UpdateScore      *expansionCommands.UpdateScoreHandler
	DeleteLocation   *expansionCommands.DeleteLocationHandler
	CreateFollowUp   *expansionCommands.CreateFollowUpHandler
	CompleteFollowUp *expansionCommands.CompleteFollowUpHandler
	DeleteFollowUp   *expansionCommands.DeleteFollowUpHandler
	BatchOperate     *expansionCommands.BatchOperateHandler

	GetLocation     *expansionQueries.GetLocationHandler
	ListLocations   *expansionQueries.ListLocationsHandler
	ListFollowUps   *expansionQueries.ListFollowUpsHandler
	ListAuditTrail  *expansionQueries.ListAuditTrailHandler
	Statistics      *expansionQueries.StatisticsHandler
	ExportLocations *expansionQueries.ExportLocationsHandler

	// Planning
	CreatePlan       *planningCommands.CreatePlanHandler
	ChangePlanStatus *planningCommands.ChangePlanStatusHandler
	ListPlans        *planningQueries.ListPlansHandler
	GetPlan          *planningQueries.GetPlanHandler

	// Directory
	CreateRegion    *directoryCommands.CreateRegionHandler
	SetRegionActive *directoryCommands.SetRegionActiveHandler
	ListRegions     *directoryQueries.ListRegionsHandler
}

// New builds the container: connects to the database, runs migrations and
// wires every handler.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := database.Connect(ctx, database.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DatabaseMaxConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := migrations.Run(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger.Info("database ready", "driver", conn.Driver())

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Conn:    conn,
		Metrics: metrics.New(),
	}

	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.Cache = redisCache
		logger.Info("redis cache connected")
	} else {
		c.Cache = cache.NewMemory()
	}

	if cfg.RabbitMQURL != "" {
		rabbit, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("connect rabbitmq: %w", err)
		}
		c.Publisher = eventbus.NewBreakerPublisher(rabbit)
	} else {
		c.Publisher = eventbus.NopPublisher{}
	}

	uow := sharedPersistence.NewUnitOfWork(conn)
	c.OutboxRepo = outbox.NewSQLRepository(conn)
	c.OutboxProcessor = outbox.NewProcessor(c.OutboxRepo, c.Publisher, outbox.ProcessorConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxRetries:   cfg.OutboxMaxRetries,
	}, logger)

	locations := expansionPersistence.NewLocationRepository(conn)
	followUps := expansionPersistence.NewFollowUpRepository(conn)
	audits := expansionPersistence.NewAuditRepository(conn)
	plans := planningPersistence.NewPlanRepository(conn)
	regions := directoryPersistence.NewRegionRepository(conn)

	c.CreateLocation = expansionCommands.NewCreateLocationHandler(locations, followUps, audits, regions, plans, c.OutboxRepo, uow)
	c.UpdateLocation = expansionCommands.NewUpdateLocationHandler(locations, audits, uow)
	c.ChangeStatus = expansionCommands.NewChangeLocationStatusHandler(locations, followUps, audits, plans, c.OutboxRepo, uow)
	c.ChangePriority = expansionCommands.NewChangeLocationPriorityHandler(locations, audits, uow)
	c.UpdateScore = expansionCommands.NewUpdateScoreHandler(locations, audits, uow)
	c.DeleteLocation = expansionCommands.NewDeleteLocationHandler(locations, followUps, audits, c.OutboxRepo, uow)
	c.CreateFollowUp = expansionCommands.NewCreateFollowUpHandler(locations, followUps, uow)
	c.CompleteFollowUp = expansionCommands.NewCompleteFollowUpHandler(followUps, uow)
	c.DeleteFollowUp = expansionCommands.NewDeleteFollowUpHandler(followUps, uow)
	c.BatchOperate = expansionCommands.NewBatchOperateHandler(c.DeleteLocation, c.ChangeStatus, c.ChangePriority, c.CreateFollowUp)

	c.GetLocation = expansionQueries.NewGetLocationHandler(locations, followUps, regions, plans)
	c.ListLocations = expansionQueries.NewListLocationsHandler(locations)
	c.ListFollowUps = expansionQueries.NewListFollowUpsHandler(locations, followUps)
	c.ListAuditTrail = expansionQueries.NewListAuditTrailHandler(locations, audits)
	c.Statistics = expansionQueries.NewStatisticsHandler(locations, c.Cache)
	c.ExportLocations = expansionQueries.NewExportLocationsHandler(locations, regions)

	c.CreatePlan = planningCommands.NewCreatePlanHandler(plans, regions, uow)
	c.ChangePlanStatus = planningCommands.NewChangePlanStatusHandler(plans, uow)
	c.ListPlans = planningQueries.NewListPlansHandler(plans)
	c.GetPlan = planningQueries.NewGetPlanHandler(plans)

	c.CreateRegion = directoryCommands.NewCreateRegionHandler(regions, uow)
	c.SetRegionActive = directoryCommands.NewSetRegionActiveHandler(regions, uow)
	c.ListRegions = directoryQueries.NewListRegionsHandler(regions)

	return c, nil
}

// StartOutbox starts the background outbox processor when enabled.
func (c *Container) StartOutbox(ctx context.Context) {
	if c.Config.OutboxProcessorEnabled {
		c.OutboxProcessor.Start(ctx)
	}
}

// Close releases all held resources.
func (c *Container) Close() error {
	c.OutboxProcessor.Stop()
	if err := c.Publisher.Close(); err != nil {
		c.Logger.Warn("failed to close publisher", "error", err)
	}
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			c.Logger.Warn("failed to close cache", "error", err)
		}
	}
	return c.Conn.Close()
}

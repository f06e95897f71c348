package di

import (
	"go.uber.org/zap"

	"graphstore/application/commands/bus"
	commandhandlers "graphstore/application/commands/handlers"
	"graphstore/application/ports"
	querybus "graphstore/application/queries/bus"
	queryhandlers "graphstore/application/queries/handlers"
	"graphstore/application/services"
	"graphstore/application/transactions"
	"graphstore/domain/events"
	"graphstore/infrastructure/config"
	"graphstore/infrastructure/persistence"
	"graphstore/infrastructure/persistence/jsonl"
	"graphstore/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideEventChannel creates the in-process event channel
func ProvideEventChannel(logger *zap.Logger) *events.Channel {
	return events.NewChannel(logger)
}

// ProvideEventPublisher exposes the channel as the publishing port
func ProvideEventPublisher(ch *events.Channel) ports.EventPublisher {
	return ch
}

// ProvideGraphRepository creates the flat-file graph repository
func ProvideGraphRepository(cfg *config.Config, logger *zap.Logger) ports.GraphRepository {
	return jsonl.NewGraphRepository(cfg.StorePath, cfg.SupportedSchemaVersions, logger)
}

// ProvideTransactionManager creates the transaction manager
func ProvideTransactionManager(repo ports.GraphRepository, publisher ports.EventPublisher, logger *zap.Logger) ports.Transactor {
	return transactions.NewManager(repo, publisher, logger)
}

// ProvideGraphService creates the mutation and read service
func ProvideGraphService(
	repo ports.GraphRepository,
	tx ports.Transactor,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *services.GraphService {
	return services.NewGraphService(repo, tx, publisher, logger)
}

// ProvideCommandBus creates the command bus with all handlers registered
func ProvideCommandBus(svc *services.GraphService, tx ports.Transactor, logger *zap.Logger) (*bus.CommandBus, error) {
	b := bus.NewCommandBus()
	handlers := commandhandlers.NewGraphCommandHandlers(svc, tx)
	if err := handlers.RegisterAll(b, bus.LoggingMiddleware(logger)); err != nil {
		return nil, err
	}
	return b, nil
}

// ProvideQueryBus creates the query bus with all handlers registered
func ProvideQueryBus(svc *services.GraphService, tx ports.Transactor) (*querybus.QueryBus, error) {
	b := querybus.NewQueryBus()
	if err := queryhandlers.NewGraphQueryHandlers(svc, tx).RegisterAll(b); err != nil {
		return nil, err
	}
	return b, nil
}

// ProvideMetrics creates the Prometheus collectors and subscribes them to
// the event channel
func ProvideMetrics(ch *events.Channel) *observability.Metrics {
	m := observability.NewMetrics()
	m.RegisterSubscribers(ch)
	return m
}

// ProvideStoreWatcher creates the backing-store change watcher
func ProvideStoreWatcher(cfg *config.Config, tx ports.Transactor, logger *zap.Logger) *persistence.StoreWatcher {
	return persistence.NewStoreWatcher(cfg.StorePath, tx.IsInTransaction, logger)
}

package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"graphstore/application/commands/bus"
	"graphstore/application/ports"
	querybus "graphstore/application/queries/bus"
	"graphstore/application/services"
	"graphstore/domain/events"
	"graphstore/infrastructure/config"
	"graphstore/infrastructure/persistence"
	"graphstore/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	EventChannel *events.Channel
	GraphRepo    ports.GraphRepository
	Transactor   ports.Transactor
	GraphService *services.GraphService
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Metrics      *observability.Metrics
	StoreWatcher *persistence.StoreWatcher
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideEventChannel,
	ProvideEventPublisher,
	ProvideGraphRepository,
	ProvideTransactionManager,
	ProvideGraphService,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideMetrics,
	ProvideStoreWatcher,
	wire.Struct(new(Container), "*"),
)

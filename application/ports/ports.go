package ports

import (
	"context"

	"graphstore/domain/core/aggregates"
	"graphstore/domain/core/entities"
	"graphstore/domain/events"
)

// GraphRepository is the persistence collaborator contract. Every
// LoadGraph re-reads the backing store; the repository caches nothing, so
// storage stays the single source of truth and any in-memory graph is a
// snapshot, not a live view.
type GraphRepository interface {
	// LoadGraph reads the whole backing store into a graph with rebuilt
	// edge indices. A missing store yields an empty graph, not an error.
	LoadGraph(ctx context.Context) (*aggregates.Graph, error)

	// SaveGraph serializes the graph and overwrites the backing store in
	// full. Atomicity is only what the underlying write call provides.
	SaveGraph(ctx context.Context, graph *aggregates.Graph) error

	// LoadEdgesByIDs returns the edges matching the requested composite
	// ids, silently omitting unknown ids.
	LoadEdgesByIDs(ctx context.Context, ids []string) ([]entities.Edge, error)
}

// EventPublisher publishes domain events to the in-process channel
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent)
}

// GraphMutator is the node/edge/metadata CRUD capability
type GraphMutator interface {
	AddNodes(ctx context.Context, nodes []entities.Node) ([]entities.Node, error)
	UpdateNodes(ctx context.Context, updates []entities.NodeUpdate) ([]entities.Node, error)
	DeleteNodes(ctx context.Context, names []string) error
	AddEdges(ctx context.Context, edges []entities.Edge) ([]entities.Edge, error)
	UpdateEdges(ctx context.Context, updates []entities.EdgeUpdate) ([]entities.Edge, error)
	DeleteEdges(ctx context.Context, edges []entities.Edge) error
	AddMetadata(ctx context.Context, requests []entities.MetadataRequest) ([]entities.MetadataResult, error)
	DeleteMetadata(ctx context.Context, requests []entities.MetadataRequest) error
}

// Searcher is the read capability
type Searcher interface {
	ReadGraph(ctx context.Context) (*aggregates.Graph, error)
	GetEdges(ctx context.Context, filter *entities.EdgeFilter) ([]entities.Edge, error)
	SearchNodes(ctx context.Context, query string) ([]entities.Node, error)
	OpenNodes(ctx context.Context, names []string) (*aggregates.Graph, error)
}

// RollbackAction is a registered compensating operation executed in
// reverse-registration order when a transaction rolls back
type RollbackAction func(ctx context.Context) error

// Transactor is the transaction capability. Only one transaction may be
// active at a time.
type Transactor interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	AddRollbackAction(action RollbackAction, description string) error
	WithTransaction(ctx context.Context, operation func(ctx context.Context) error) error
	IsInTransaction() bool
	CurrentGraph() *aggregates.Graph
}

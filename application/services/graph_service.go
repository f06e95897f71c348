package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"graphstore/application/ports"
	"graphstore/domain/core/aggregates"
	"graphstore/domain/core/entities"
	"graphstore/domain/core/validators"
	"graphstore/domain/events"
	"graphstore/pkg/errors"
)

// GraphService is the node/edge/metadata CRUD and search layer. Every
// mutating call validates against the current snapshot first, publishes
// its before event, applies the change, persists, then publishes its
// after event with the actually-applied result.
//
// Inside an active transaction the service mutates the manager's working
// copy and persistence is deferred to commit; outside one, each call is
// its own load–mutate–save cycle against the backing store.
type GraphService struct {
	repo      ports.GraphRepository
	tx        ports.Transactor
	validator *validators.GraphValidator
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewGraphService creates a graph service
func NewGraphService(
	repo ports.GraphRepository,
	tx ports.Transactor,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *GraphService {
	return &GraphService{
		repo:      repo,
		tx:        tx,
		validator: validators.NewGraphValidator(),
		publisher: publisher,
		logger:    logger,
	}
}

// snapshot returns the graph a call operates on and whether the call
// must persist it itself
func (s *GraphService) snapshot(ctx context.Context) (*aggregates.Graph, bool, error) {
	if s.tx.IsInTransaction() {
		return s.tx.CurrentGraph(), false, nil
	}
	graph, err := s.repo.LoadGraph(ctx)
	if err != nil {
		return nil, false, err
	}
	return graph, true, nil
}

func (s *GraphService) persist(ctx context.Context, graph *aggregates.Graph, owned bool) error {
	if !owned {
		return nil
	}
	return s.repo.SaveGraph(ctx, graph)
}

// AddNodes appends the given nodes in input order. A node whose name
// already exists in the graph, or is repeated within the batch, fails
// the whole call with AlreadyExists before any mutation. Returns exactly
// the nodes that were added.
func (s *GraphService) AddNodes(ctx context.Context, nodes []entities.Node) ([]entities.Node, error) {
	graph, owned, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(nodes))
	for _, node := range nodes {
		if err := s.validator.ValidateNewNode(node); err != nil {
			return nil, err
		}
		if err := s.validator.EnsureNodeAbsent(graph, node.Name); err != nil {
			return nil, err
		}
		if _, dup := seen[node.Name]; dup {
			return nil, errors.NewAlreadyExistsError("node").WithDetail("name", node.Name)
		}
		seen[node.Name] = struct{}{}
	}

	s.publisher.Publish(ctx, events.NewNodesAdding(nodes))

	added := make([]entities.Node, 0, len(nodes))
	for _, node := range nodes {
		if node.Metadata == nil {
			node.Metadata = []string{}
		}
		graph.AppendNode(node)
		added = append(added, node)
	}

	if err := s.persist(ctx, graph, owned); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewNodesAdded(added))
	return added, nil
}

// UpdateNodes applies partial node updates identified by name. Only
// fields present in the update overwrite the stored node; metadata, if
// present, replaces the prior sequence wholesale. Updating a
// non-existent name fails the whole call with NotFound.
func (s *GraphService) UpdateNodes(ctx context.Context, updates []entities.NodeUpdate) ([]entities.Node, error) {
	graph, owned, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for _, update := range updates {
		if err := s.validator.ValidateNodeRef(update.Name); err != nil {
			return nil, err
		}
		if err := s.validator.EnsureNodeExists(graph, update.Name); err != nil {
			return nil, err
		}
	}

	s.publisher.Publish(ctx, events.NewNodesUpdating(updates))

	updated := make([]entities.Node, 0, len(updates))
	for _, update := range updates {
		node := graph.FindNode(update.Name)
		update.ApplyTo(node)
		updated = append(updated, node.Clone())
	}

	if err := s.persist(ctx, graph, owned); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewNodesUpdated(updated))
	return updated, nil
}

// DeleteNodes removes nodes by name, silently no-oping for names not
// present. Edges referencing a removed node are NOT cascade-deleted;
// dangling edges are the caller's responsibility.
func (s *GraphService) DeleteNodes(ctx context.Context, names []string) error {
	graph, owned, err := s.snapshot(ctx)
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.NewNodesDeleting(names))

	deleted := []string{}
	for _, name := range names {
		if graph.RemoveNode(name) {
			deleted = append(deleted, name)
		}
	}

	if err := s.persist(ctx, graph, owned); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.NewNodesDeleted(deleted))
	return nil
}

// AddEdges appends the given edges in input order. An edge whose
// composite key already exists in the graph, or is repeated within the
// batch, fails the whole call with AlreadyExists before any mutation.
// Endpoints are not checked against the node set: dangling edges are
// allowed.
func (s *GraphService) AddEdges(ctx context.Context, edges []entities.Edge) ([]entities.Edge, error) {
	graph, owned, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(edges))
	for _, edge := range edges {
		if err := s.validator.ValidateEdge(edge); err != nil {
			return nil, err
		}
		if err := s.validator.EnsureEdgeAbsent(graph, edge); err != nil {
			return nil, err
		}
		if _, dup := seen[edge.ID()]; dup {
			return nil, errors.NewAlreadyExistsError("edge").WithDetail("id", edge.ID())
		}
		seen[edge.ID()] = struct{}{}
	}

	s.publisher.Publish(ctx, events.NewEdgesAdding(edges))

	added := make([]entities.Edge, 0, len(edges))
	for _, edge := range edges {
		graph.AppendEdge(edge)
		added = append(added, edge)
	}

	if err := s.persist(ctx, graph, owned); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewEdgesAdded(added))
	return added, nil
}

// UpdateEdges rewrites edges identified by their original composite
// keys. A missing original fails with NotFound; a rewrite that would
// collide with a different existing edge's key fails with AlreadyExists
// rather than silently merging. The whole batch is probed against a
// throwaway copy before any real mutation.
func (s *GraphService) UpdateEdges(ctx context.Context, updates []entities.EdgeUpdate) ([]entities.Edge, error) {
	graph, owned, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	probe := graph.Clone()
	for _, update := range updates {
		target := update.Target()
		if err := s.validator.ValidateEdge(target); err != nil {
			return nil, err
		}
		if err := s.validator.EnsureEdgeExists(probe, update.From, update.To, update.EdgeType); err != nil {
			return nil, err
		}
		sameKey := target.Key(update.From, update.To, update.EdgeType)
		if !sameKey && probe.HasEdge(target.From, target.To, target.EdgeType) {
			return nil, errors.NewAlreadyExistsError("edge").WithDetail("id", target.ID())
		}
		probe.ReplaceEdge(update.From, update.To, update.EdgeType, target)
	}

	s.publisher.Publish(ctx, events.NewEdgesUpdating(updates))

	updated := make([]entities.Edge, 0, len(updates))
	for _, update := range updates {
		target := update.Target()
		graph.ReplaceEdge(update.From, update.To, update.EdgeType, target)
		updated = append(updated, target)
	}

	if err := s.persist(ctx, graph, owned); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewEdgesUpdated(updated))
	return updated, nil
}

// DeleteEdges removes edges by exact composite key, no-oping for
// non-matching edges. Removals are mirrored in all three indices.
func (s *GraphService) DeleteEdges(ctx context.Context, edges []entities.Edge) error {
	graph, owned, err := s.snapshot(ctx)
	if err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.NewEdgesDeleting(edges))

	deleted := []entities.Edge{}
	for _, edge := range edges {
		if graph.RemoveEdge(edge.From, edge.To, edge.EdgeType) {
			deleted = append(deleted, edge)
		}
	}

	if err := s.persist(ctx, graph, owned); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.NewEdgesDeleted(deleted))
	return nil
}

// AddMetadata appends, per node name, the strings not already present in
// that node's metadata sequence, preserving order and prior entries, and
// reports which strings were newly added. One unknown node name aborts
// the whole batch before any mutation.
func (s *GraphService) AddMetadata(ctx context.Context, requests []entities.MetadataRequest) ([]entities.MetadataResult, error) {
	graph, owned, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	for _, req := range requests {
		if err := s.validator.EnsureNodeExists(graph, req.NodeName); err != nil {
			return nil, err
		}
	}

	s.publisher.Publish(ctx, events.NewMetadataAdding(requests))

	results := make([]entities.MetadataResult, 0, len(requests))
	for _, req := range requests {
		node := graph.FindNode(req.NodeName)
		added := []string{}
		for _, entry := range req.Metadata {
			if node.HasMetadata(entry) {
				continue
			}
			node.Metadata = append(node.Metadata, entry)
			added = append(added, entry)
		}
		results = append(results, entities.MetadataResult{NodeName: req.NodeName, Added: added})
	}

	if err := s.persist(ctx, graph, owned); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, events.NewMetadataAdded(results))
	return results, nil
}

// DeleteMetadata removes exact string matches from each named node's
// metadata sequence, idempotently for absent strings. One unknown node
// name aborts the whole batch before any mutation.
func (s *GraphService) DeleteMetadata(ctx context.Context, requests []entities.MetadataRequest) error {
	graph, owned, err := s.snapshot(ctx)
	if err != nil {
		return err
	}

	for _, req := range requests {
		if err := s.validator.EnsureNodeExists(graph, req.NodeName); err != nil {
			return err
		}
	}

	s.publisher.Publish(ctx, events.NewMetadataDeleting(requests))

	for _, req := range requests {
		node := graph.FindNode(req.NodeName)
		remove := make(map[string]struct{}, len(req.Metadata))
		for _, entry := range req.Metadata {
			remove[entry] = struct{}{}
		}
		kept := node.Metadata[:0]
		for _, entry := range node.Metadata {
			if _, drop := remove[entry]; !drop {
				kept = append(kept, entry)
			}
		}
		node.Metadata = kept
	}

	if err := s.persist(ctx, graph, owned); err != nil {
		return err
	}

	s.publisher.Publish(ctx, events.NewMetadataDeleted(requests))
	return nil
}

// ReadGraph returns the full current graph. Inside a transaction it is a
// copy of the working snapshot, so no caller can alias the manager's
// authoritative graph.
func (s *GraphService) ReadGraph(ctx context.Context) (*aggregates.Graph, error) {
	if s.tx.IsInTransaction() {
		return s.tx.CurrentGraph().Clone(), nil
	}
	return s.repo.LoadGraph(ctx)
}

// GetEdges returns the edges matching the optional conjunctive filter,
// in sequence order. Omitting the filter returns all edges.
func (s *GraphService) GetEdges(ctx context.Context, filter *entities.EdgeFilter) ([]entities.Edge, error) {
	graph, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return graph.FilterEdges(filter), nil
}

// SearchNodes returns nodes whose name, nodeType, or any metadata entry
// contains the query as a case-insensitive substring
func (s *GraphService) SearchNodes(ctx context.Context, query string) ([]entities.Node, error) {
	graph, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := []entities.Node{}
	for _, node := range graph.Nodes {
		if nodeMatches(node, needle) {
			matched = append(matched, node.Clone())
		}
	}
	return matched, nil
}

func nodeMatches(node entities.Node, needle string) bool {
	if strings.Contains(strings.ToLower(node.Name), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(node.NodeType), needle) {
		return true
	}
	for _, entry := range node.Metadata {
		if strings.Contains(strings.ToLower(entry), needle) {
			return true
		}
	}
	return false
}

// OpenNodes returns the nodes matching the given names exactly, plus the
// edges whose both endpoints are in the returned set
func (s *GraphService) OpenNodes(ctx context.Context, names []string) (*aggregates.Graph, error) {
	if err := s.validator.ValidateNameList(names); err != nil {
		return nil, err
	}

	graph, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	subset := aggregates.NewGraph()
	opened := make(map[string]struct{}, len(names))
	for _, node := range graph.Nodes {
		if _, ok := wanted[node.Name]; ok {
			subset.Nodes = append(subset.Nodes, node.Clone())
			opened[node.Name] = struct{}{}
		}
	}
	for _, edge := range graph.Edges {
		if _, from := opened[edge.From]; !from {
			continue
		}
		if _, to := opened[edge.To]; to {
			subset.Edges = append(subset.Edges, edge)
		}
	}

	subset.RebuildIndex()
	return subset, nil
}

package handlers

import (
	"context"
	"fmt"

	"graphstore/application/commands"
	"graphstore/application/commands/bus"
	"graphstore/application/ports"
)

// GraphCommandHandlers routes every mutating command to the graph
// mutation layer and the transaction manager. Handlers are thin: shape
// validation happened on the command, graph invariants are checked by
// the service.
type GraphCommandHandlers struct {
	mutator ports.GraphMutator
	tx      ports.Transactor
}

// NewGraphCommandHandlers creates the command handler set
func NewGraphCommandHandlers(mutator ports.GraphMutator, tx ports.Transactor) *GraphCommandHandlers {
	return &GraphCommandHandlers{mutator: mutator, tx: tx}
}

// RegisterAll registers every command handler on the bus, wrapped with
// the given middleware
func (h *GraphCommandHandlers) RegisterAll(b *bus.CommandBus, middlewares ...bus.Middleware) error {
	registrations := []struct {
		cmd     bus.Command
		handler bus.CommandHandlerFunc
	}{
		{commands.AddNodesCommand{}, h.handleAddNodes},
		{commands.UpdateNodesCommand{}, h.handleUpdateNodes},
		{commands.DeleteNodesCommand{}, h.handleDeleteNodes},
		{commands.AddEdgesCommand{}, h.handleAddEdges},
		{commands.UpdateEdgesCommand{}, h.handleUpdateEdges},
		{commands.DeleteEdgesCommand{}, h.handleDeleteEdges},
		{commands.AddMetadataCommand{}, h.handleAddMetadata},
		{commands.DeleteMetadataCommand{}, h.handleDeleteMetadata},
		{commands.BeginTransactionCommand{}, h.handleBeginTransaction},
		{commands.CommitTransactionCommand{}, h.handleCommitTransaction},
		{commands.RollbackTransactionCommand{}, h.handleRollbackTransaction},
	}

	pipeline := bus.NewPipeline(middlewares...)
	for _, reg := range registrations {
		if err := b.Register(reg.cmd, pipeline.Execute(reg.handler)); err != nil {
			return err
		}
	}
	return nil
}

func (h *GraphCommandHandlers) handleAddNodes(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.AddNodesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type %T", cmd)
	}
	return h.mutator.AddNodes(ctx, c.Nodes)
}

func (h *GraphCommandHandlers) handleUpdateNodes(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.UpdateNodesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type %T", cmd)
	}
	return h.mutator.UpdateNodes(ctx, c.Updates)
}

func (h *GraphCommandHandlers) handleDeleteNodes(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DeleteNodesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type %T", cmd)
	}
	return nil, h.mutator.DeleteNodes(ctx, c.Names)
}

func (h *GraphCommandHandlers) handleAddEdges(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.AddEdgesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type %T", cmd)
	}
	return h.mutator.AddEdges(ctx, c.Edges)
}

func (h *GraphCommandHandlers) handleUpdateEdges(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.UpdateEdgesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type %T", cmd)
	}
	return h.mutator.UpdateEdges(ctx, c.Updates)
}

func (h *GraphCommandHandlers) handleDeleteEdges(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DeleteEdgesCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type %T", cmd)
	}
	return nil, h.mutator.DeleteEdges(ctx, c.Edges)
}

func (h *GraphCommandHandlers) handleAddMetadata(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.AddMetadataCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type %T", cmd)
	}
	return h.mutator.AddMetadata(ctx, c.Requests)
}

func (h *GraphCommandHandlers) handleDeleteMetadata(ctx context.Context, cmd bus.Command) (interface{}, error) {
	c, ok := cmd.(commands.DeleteMetadataCommand)
	if !ok {
		return nil, fmt.Errorf("invalid command type %T", cmd)
	}
	return nil, h.mutator.DeleteMetadata(ctx, c.Requests)
}

func (h *GraphCommandHandlers) handleBeginTransaction(ctx context.Context, cmd bus.Command) (interface{}, error) {
	return nil, h.tx.Begin(ctx)
}

func (h *GraphCommandHandlers) handleCommitTransaction(ctx context.Context, cmd bus.Command) (interface{}, error) {
	return nil, h.tx.Commit(ctx)
}

func (h *GraphCommandHandlers) handleRollbackTransaction(ctx context.Context, cmd bus.Command) (interface{}, error) {
	return nil, h.tx.Rollback(ctx)
}

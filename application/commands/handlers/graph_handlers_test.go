package handlers

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"graphstore/application/commands"
	"graphstore/application/commands/bus"
	"graphstore/application/services"
	"graphstore/application/transactions"
	"graphstore/domain/core/entities"
	"graphstore/domain/events"
	"graphstore/infrastructure/persistence/jsonl"
	"graphstore/pkg/errors"
)

func newTestBus(t *testing.T) (*bus.CommandBus, *jsonl.GraphRepository) {
	t.Helper()
	logger := zap.NewNop()
	repo := jsonl.NewGraphRepository(filepath.Join(t.TempDir(), "graph.jsonl"), []int{1}, logger)
	channel := events.NewChannel(logger)
	tx := transactions.NewManager(repo, channel, logger)
	svc := services.NewGraphService(repo, tx, channel, logger)

	b := bus.NewCommandBus()
	require.NoError(t, NewGraphCommandHandlers(svc, tx).RegisterAll(b, bus.LoggingMiddleware(logger)))
	return b, repo
}

func TestCommandBus_AddNodesEndToEnd(t *testing.T) {
	b, repo := newTestBus(t)
	ctx := context.Background()

	result, err := b.Send(ctx, commands.AddNodesCommand{Nodes: []entities.Node{
		{Name: "Alice", NodeType: "person"},
	}})
	require.NoError(t, err)

	added, ok := result.([]entities.Node)
	require.True(t, ok)
	require.Len(t, added, 1)
	assert.Equal(t, "Alice", added[0].Name)

	loaded, err := repo.LoadGraph(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.HasNode("Alice"))
}

func TestCommandBus_EmptyBatchRejectedByValidation(t *testing.T) {
	b, _ := newTestBus(t)

	_, err := b.Send(context.Background(), commands.AddNodesCommand{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestCommandBus_TransactionCommands(t *testing.T) {
	b, repo := newTestBus(t)
	ctx := context.Background()

	_, err := b.Send(ctx, commands.BeginTransactionCommand{})
	require.NoError(t, err)

	_, err = b.Send(ctx, commands.AddNodesCommand{Nodes: []entities.Node{
		{Name: "Alice", NodeType: "person"},
	}})
	require.NoError(t, err)

	onDisk, err := repo.LoadGraph(ctx)
	require.NoError(t, err)
	assert.False(t, onDisk.HasNode("Alice"))

	_, err = b.Send(ctx, commands.CommitTransactionCommand{})
	require.NoError(t, err)

	onDisk, err = repo.LoadGraph(ctx)
	require.NoError(t, err)
	assert.True(t, onDisk.HasNode("Alice"))

	_, err = b.Send(ctx, commands.RollbackTransactionCommand{})
	require.Error(t, err, "rollback outside a transaction is a state error")
	assert.True(t, errors.IsTransactionState(err))
}

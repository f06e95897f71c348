package events

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"graphstore/domain/core/entities"
)

func TestChannel_DispatchesByConcreteType(t *testing.T) {
	ch := NewChannel(zap.NewNop())
	ctx := context.Background()

	var added, deleted int
	ch.Subscribe(NodesAdded{}, func(ctx context.Context, evt DomainEvent) error {
		added++
		return nil
	})
	ch.Subscribe(NodesDeleted{}, func(ctx context.Context, evt DomainEvent) error {
		deleted++
		return nil
	})

	ch.Publish(ctx, NewNodesAdded([]entities.Node{{Name: "Alice", NodeType: "person"}}))
	ch.Publish(ctx, NewNodesAdded(nil))

	assert.Equal(t, 2, added)
	assert.Equal(t, 0, deleted, "handlers only receive their registered kind")
}

func TestChannel_HandlersRunInRegistrationOrder(t *testing.T) {
	ch := NewChannel(zap.NewNop())

	var order []string
	for _, name := range []string{"first", "second", "third"} {
		name := name
		ch.Subscribe(TransactionBegan{}, func(ctx context.Context, evt DomainEvent) error {
			order = append(order, name)
			return nil
		})
	}

	ch.Publish(context.Background(), NewTransactionBegan(0, 0))
	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestChannel_FailingHandlerDoesNotStopDelivery(t *testing.T) {
	ch := NewChannel(zap.NewNop())

	var reached bool
	ch.Subscribe(EdgesAdded{}, func(ctx context.Context, evt DomainEvent) error {
		return fmt.Errorf("handler exploded")
	})
	ch.Subscribe(EdgesAdded{}, func(ctx context.Context, evt DomainEvent) error {
		reached = true
		return nil
	})

	ch.Publish(context.Background(), NewEdgesAdded([]entities.Edge{{From: "a", To: "b", EdgeType: "t"}}))
	assert.True(t, reached, "a failing handler never aborts the publishing operation")
}

func TestEvents_CarryIdentityAndType(t *testing.T) {
	evt := NewNodesAdding([]entities.Node{{Name: "Alice", NodeType: "person"}})

	require.NotEmpty(t, evt.GetEventID())
	assert.Equal(t, "nodes.adding", evt.GetEventType())
	assert.False(t, evt.GetTimestamp().IsZero())

	other := NewNodesAdding(nil)
	assert.NotEqual(t, evt.GetEventID(), other.GetEventID())
}

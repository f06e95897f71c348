package observability

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"graphstore/domain/core/entities"
	"graphstore/domain/events"
)

func TestMetrics_CountsMutations(t *testing.T) {
	ch := events.NewChannel(zap.NewNop())
	m := NewMetrics()
	m.RegisterSubscribers(ch)
	ctx := context.Background()

	ch.Publish(ctx, events.NewNodesAdded([]entities.Node{{Name: "Alice", NodeType: "person"}}))
	ch.Publish(ctx, events.NewNodesAdded(nil))
	ch.Publish(ctx, events.NewEdgesDeleted(nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.mutations.WithLabelValues("nodes_added")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.mutations.WithLabelValues("edges_deleted")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.mutations.WithLabelValues("nodes_deleted")))
}

func TestMetrics_TracksTransactionBoundaries(t *testing.T) {
	ch := events.NewChannel(zap.NewNop())
	m := NewMetrics()
	m.RegisterSubscribers(ch)
	ctx := context.Background()

	ch.Publish(ctx, events.NewTransactionBegan(3, 2))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.nodeCount))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.edgeCount))

	ch.Publish(ctx, events.NewTransactionCommitted(5, 4))
	assert.Equal(t, float64(5), testutil.ToFloat64(m.nodeCount))
	assert.Equal(t, float64(4), testutil.ToFloat64(m.edgeCount))

	ch.Publish(ctx, events.NewTransactionRolledBack(0))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transactions.WithLabelValues("began")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transactions.WithLabelValues("committed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.transactions.WithLabelValues("rolled_back")))
}

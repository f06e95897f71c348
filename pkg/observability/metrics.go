package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"graphstore/domain/events"
)

// Metrics holds the Prometheus collectors for the graph store
type Metrics struct {
	registry *prometheus.Registry

	mutations    *prometheus.CounterVec
	transactions *prometheus.CounterVec
	nodeCount    prometheus.Gauge
	edgeCount    prometheus.Gauge
}

// NewMetrics creates and registers the collectors on a fresh registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphstore",
			Name:      "mutations_total",
			Help:      "Completed mutations by kind.",
		}, []string{"kind"}),
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphstore",
			Name:      "transactions_total",
			Help:      "Transaction lifecycle outcomes.",
		}, []string{"outcome"}),
		nodeCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "graphstore",
			Name:      "nodes",
			Help:      "Node count observed at the last transaction boundary.",
		}),
		edgeCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "graphstore",
			Name:      "edges",
			Help:      "Edge count observed at the last transaction boundary.",
		}),
	}

	m.registry.MustRegister(m.mutations, m.transactions, m.nodeCount, m.edgeCount)
	return m
}

// Registry exposes the registry for the /metrics handler
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterSubscribers attaches the collectors to the event channel so every
// completed mutation and transaction boundary is counted
func (m *Metrics) RegisterSubscribers(ch *events.Channel) {
	ch.Subscribe(events.NodesAdded{}, m.countMutation("nodes_added"))
	ch.Subscribe(events.NodesUpdated{}, m.countMutation("nodes_updated"))
	ch.Subscribe(events.NodesDeleted{}, m.countMutation("nodes_deleted"))
	ch.Subscribe(events.EdgesAdded{}, m.countMutation("edges_added"))
	ch.Subscribe(events.EdgesUpdated{}, m.countMutation("edges_updated"))
	ch.Subscribe(events.EdgesDeleted{}, m.countMutation("edges_deleted"))
	ch.Subscribe(events.MetadataAdded{}, m.countMutation("metadata_added"))
	ch.Subscribe(events.MetadataDeleted{}, m.countMutation("metadata_deleted"))

	ch.Subscribe(events.TransactionBegan{}, func(ctx context.Context, evt events.DomainEvent) error {
		m.transactions.WithLabelValues("began").Inc()
		if e, ok := evt.(events.TransactionBegan); ok {
			m.nodeCount.Set(float64(e.NodeCount))
			m.edgeCount.Set(float64(e.EdgeCount))
		}
		return nil
	})
	ch.Subscribe(events.TransactionCommitted{}, func(ctx context.Context, evt events.DomainEvent) error {
		m.transactions.WithLabelValues("committed").Inc()
		if e, ok := evt.(events.TransactionCommitted); ok {
			m.nodeCount.Set(float64(e.NodeCount))
			m.edgeCount.Set(float64(e.EdgeCount))
		}
		return nil
	})
	ch.Subscribe(events.TransactionRolledBack{}, func(ctx context.Context, evt events.DomainEvent) error {
		m.transactions.WithLabelValues("rolled_back").Inc()
		return nil
	})
}

func (m *Metrics) countMutation(kind string) events.Handler {
	return func(ctx context.Context, evt events.DomainEvent) error {
		m.mutations.WithLabelValues(kind).Inc()
		return nil
	}
}

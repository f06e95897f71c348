package transactions

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"graphstore/application/ports"
	"graphstore/domain/core/aggregates"
	"graphstore/domain/events"
	"graphstore/pkg/errors"
)

// rollbackAction pairs a compensating closure with a human-readable
// description for the rollback log
type rollbackAction struct {
	action      ports.RollbackAction
	description string
}

// Manager owns the authoritative in-memory graph snapshot for the
// duration of a transaction and sequences begin/commit/rollback.
//
// Lifecycle: Idle -> Active (begin) -> Idle (commit or rollback). Only
// one transaction may be active at a time; the mutex makes that
// invariant hold on a multi-threaded runtime. No other component holds a
// reference to the working graph: it is handed out through CurrentGraph
// and replaced wholesale on every transition.
type Manager struct {
	repo      ports.GraphRepository
	publisher ports.EventPublisher
	logger    *zap.Logger

	mu      sync.RWMutex
	active  bool
	working *aggregates.Graph
	actions []rollbackAction
}

// NewManager creates an idle transaction manager
func NewManager(repo ports.GraphRepository, publisher ports.EventPublisher, logger *zap.Logger) *Manager {
	return &Manager{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		working:   aggregates.NewGraph(),
	}
}

// Begin loads a fresh graph snapshot from the repository into the
// working copy, clears the rollback-action list, and marks the manager
// active. Fails if a transaction is already active; a load failure
// leaves the manager idle.
func (m *Manager) Begin(ctx context.Context) error {
	m.mu.Lock()

	if m.active {
		m.mu.Unlock()
		return errors.NewTransactionStateError("transaction already in progress")
	}

	pending := []events.DomainEvent{events.NewTransactionBeginning()}

	graph, err := m.repo.LoadGraph(ctx)
	if err != nil {
		m.mu.Unlock()
		m.publish(ctx, pending)
		return errors.Wrap(err, "failed to begin transaction")
	}

	m.working = graph
	m.actions = nil
	m.active = true
	m.mu.Unlock()

	pending = append(pending, events.NewTransactionBegan(graph.NodeCount(), graph.EdgeCount()))
	m.publish(ctx, pending)
	m.logger.Debug("transaction began",
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()),
	)
	return nil
}

// AddRollbackAction appends a compensating action. Only valid while a
// transaction is active.
func (m *Manager) AddRollbackAction(action ports.RollbackAction, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active {
		return errors.NewTransactionStateError("no transaction in progress")
	}
	m.actions = append(m.actions, rollbackAction{action: action, description: description})
	return nil
}

// Commit persists the working graph, clears the transaction state, and
// marks the manager idle
func (m *Manager) Commit(ctx context.Context) error {
	m.mu.Lock()

	if !m.active {
		m.mu.Unlock()
		return errors.NewTransactionStateError("no transaction in progress")
	}

	pending := []events.DomainEvent{events.NewTransactionCommitting()}

	if err := m.repo.SaveGraph(ctx, m.working); err != nil {
		m.mu.Unlock()
		m.publish(ctx, pending)
		return errors.Wrap(err, "failed to commit transaction")
	}

	committed := m.working
	m.clearLocked()
	m.mu.Unlock()

	pending = append(pending, events.NewTransactionCommitted(committed.NodeCount(), committed.EdgeCount()))
	m.publish(ctx, pending)
	m.logger.Debug("transaction committed",
		zap.Int("nodes", committed.NodeCount()),
		zap.Int("edges", committed.EdgeCount()),
	)
	return nil
}

// Rollback executes every registered rollback action in strict
// reverse-registration order. A failing action is logged and does not
// stop the sweep: compensation is best-effort, not guaranteed. The
// manager always ends up idle.
func (m *Manager) Rollback(ctx context.Context) error {
	m.mu.Lock()

	if !m.active {
		m.mu.Unlock()
		return errors.NewTransactionStateError("no transaction in progress")
	}

	pending := []events.DomainEvent{events.NewTransactionRollingBack(len(m.actions))}

	failed := 0
	for i := len(m.actions) - 1; i >= 0; i-- {
		entry := m.actions[i]
		if err := entry.action(ctx); err != nil {
			failed++
			m.logger.Error("rollback action failed",
				zap.String("description", entry.description),
				zap.Error(err),
			)
			continue
		}
		m.logger.Debug("rollback action executed", zap.String("description", entry.description))
	}

	m.clearLocked()
	m.mu.Unlock()

	pending = append(pending, events.NewTransactionRolledBack(failed))
	m.publish(ctx, pending)
	return nil
}

// WithTransaction begins, runs the operation, commits on success, or
// rolls back and re-returns the operation's failure. Callers should
// register a rollback action for every side effect inside operation that
// is not undone by discarding the working copy.
func (m *Manager) WithTransaction(ctx context.Context, operation func(ctx context.Context) error) error {
	if err := m.Begin(ctx); err != nil {
		return err
	}

	if err := operation(ctx); err != nil {
		if rbErr := m.Rollback(ctx); rbErr != nil {
			m.logger.Error("rollback failed after operation error", zap.Error(rbErr))
		}
		return err
	}

	return m.Commit(ctx)
}

// IsInTransaction reports whether a transaction is active
func (m *Manager) IsInTransaction() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// CurrentGraph returns the working copy. Only meaningful while active;
// before the first Begin it is an empty graph.
func (m *Manager) CurrentGraph() *aggregates.Graph {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.working
}

// publish delivers events collected during a state transition. Must be
// called with the lock released: subscribers may call back into
// IsInTransaction or CurrentGraph.
func (m *Manager) publish(ctx context.Context, pending []events.DomainEvent) {
	for _, evt := range pending {
		m.publisher.Publish(ctx, evt)
	}
}

// clearLocked destroys the transaction state. Caller holds the lock.
func (m *Manager) clearLocked() {
	m.working = aggregates.NewGraph()
	m.actions = nil
	m.active = false
}

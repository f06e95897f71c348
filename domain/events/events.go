package events

import (
	"time"

	"github.com/google/uuid"

	"graphstore/domain/core/entities"
)

// DomainEvent is the base interface for all domain events.
// Every mutating operation publishes a pair: the "-ing" event fires with
// the raw request payload before the mutation, the "-ed" event fires with
// the actually-applied result after it. Validation failures abort before
// either fires.
type DomainEvent interface {
	GetEventID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

func newBase(eventType string) BaseEvent {
	return BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// Node events

type NodesAdding struct {
	BaseEvent
	Requested []entities.Node `json:"requested"`
}

func NewNodesAdding(requested []entities.Node) NodesAdding {
	return NodesAdding{BaseEvent: newBase("nodes.adding"), Requested: requested}
}

type NodesAdded struct {
	BaseEvent
	Added []entities.Node `json:"added"`
}

func NewNodesAdded(added []entities.Node) NodesAdded {
	return NodesAdded{BaseEvent: newBase("nodes.added"), Added: added}
}

type NodesUpdating struct {
	BaseEvent
	Requested []entities.NodeUpdate `json:"requested"`
}

func NewNodesUpdating(requested []entities.NodeUpdate) NodesUpdating {
	return NodesUpdating{BaseEvent: newBase("nodes.updating"), Requested: requested}
}

type NodesUpdated struct {
	BaseEvent
	Updated []entities.Node `json:"updated"`
}

func NewNodesUpdated(updated []entities.Node) NodesUpdated {
	return NodesUpdated{BaseEvent: newBase("nodes.updated"), Updated: updated}
}

type NodesDeleting struct {
	BaseEvent
	Names []string `json:"names"`
}

func NewNodesDeleting(names []string) NodesDeleting {
	return NodesDeleting{BaseEvent: newBase("nodes.deleting"), Names: names}
}

type NodesDeleted struct {
	BaseEvent
	Deleted []string `json:"deleted"`
}

func NewNodesDeleted(deleted []string) NodesDeleted {
	return NodesDeleted{BaseEvent: newBase("nodes.deleted"), Deleted: deleted}
}

// Edge events

type EdgesAdding struct {
	BaseEvent
	Requested []entities.Edge `json:"requested"`
}

func NewEdgesAdding(requested []entities.Edge) EdgesAdding {
	return EdgesAdding{BaseEvent: newBase("edges.adding"), Requested: requested}
}

type EdgesAdded struct {
	BaseEvent
	Added []entities.Edge `json:"added"`
}

func NewEdgesAdded(added []entities.Edge) EdgesAdded {
	return EdgesAdded{BaseEvent: newBase("edges.added"), Added: added}
}

type EdgesUpdating struct {
	BaseEvent
	Requested []entities.EdgeUpdate `json:"requested"`
}

func NewEdgesUpdating(requested []entities.EdgeUpdate) EdgesUpdating {
	return EdgesUpdating{BaseEvent: newBase("edges.updating"), Requested: requested}
}

type EdgesUpdated struct {
	BaseEvent
	Updated []entities.Edge `json:"updated"`
}

func NewEdgesUpdated(updated []entities.Edge) EdgesUpdated {
	return EdgesUpdated{BaseEvent: newBase("edges.updated"), Updated: updated}
}

type EdgesDeleting struct {
	BaseEvent
	Requested []entities.Edge `json:"requested"`
}

func NewEdgesDeleting(requested []entities.Edge) EdgesDeleting {
	return EdgesDeleting{BaseEvent: newBase("edges.deleting"), Requested: requested}
}

type EdgesDeleted struct {
	BaseEvent
	Deleted []entities.Edge `json:"deleted"`
}

func NewEdgesDeleted(deleted []entities.Edge) EdgesDeleted {
	return EdgesDeleted{BaseEvent: newBase("edges.deleted"), Deleted: deleted}
}

// Metadata events

type MetadataAdding struct {
	BaseEvent
	Requested []entities.MetadataRequest `json:"requested"`
}

func NewMetadataAdding(requested []entities.MetadataRequest) MetadataAdding {
	return MetadataAdding{BaseEvent: newBase("metadata.adding"), Requested: requested}
}

type MetadataAdded struct {
	BaseEvent
	Results []entities.MetadataResult `json:"results"`
}

func NewMetadataAdded(results []entities.MetadataResult) MetadataAdded {
	return MetadataAdded{BaseEvent: newBase("metadata.added"), Results: results}
}

type MetadataDeleting struct {
	BaseEvent
	Requested []entities.MetadataRequest `json:"requested"`
}

func NewMetadataDeleting(requested []entities.MetadataRequest) MetadataDeleting {
	return MetadataDeleting{BaseEvent: newBase("metadata.deleting"), Requested: requested}
}

type MetadataDeleted struct {
	BaseEvent
	Requested []entities.MetadataRequest `json:"requested"`
}

func NewMetadataDeleted(requested []entities.MetadataRequest) MetadataDeleted {
	return MetadataDeleted{BaseEvent: newBase("metadata.deleted"), Requested: requested}
}

// Transaction events

type TransactionBeginning struct {
	BaseEvent
}

func NewTransactionBeginning() TransactionBeginning {
	return TransactionBeginning{BaseEvent: newBase("transaction.beginning")}
}

type TransactionBegan struct {
	BaseEvent
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

func NewTransactionBegan(nodeCount, edgeCount int) TransactionBegan {
	return TransactionBegan{
		BaseEvent: newBase("transaction.began"),
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}
}

type TransactionCommitting struct {
	BaseEvent
}

func NewTransactionCommitting() TransactionCommitting {
	return TransactionCommitting{BaseEvent: newBase("transaction.committing")}
}

type TransactionCommitted struct {
	BaseEvent
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

func NewTransactionCommitted(nodeCount, edgeCount int) TransactionCommitted {
	return TransactionCommitted{
		BaseEvent: newBase("transaction.committed"),
		NodeCount: nodeCount,
		EdgeCount: edgeCount,
	}
}

type TransactionRollingBack struct {
	BaseEvent
	ActionCount int `json:"action_count"`
}

func NewTransactionRollingBack(actionCount int) TransactionRollingBack {
	return TransactionRollingBack{
		BaseEvent:   newBase("transaction.rolling_back"),
		ActionCount: actionCount,
	}
}

type TransactionRolledBack struct {
	BaseEvent
	FailedActions int `json:"failed_actions"`
}

func NewTransactionRolledBack(failedActions int) TransactionRolledBack {
	return TransactionRolledBack{
		BaseEvent:     newBase("transaction.rolled_back"),
		FailedActions: failedActions,
	}
}

package entities

import (
	"fmt"
	"strings"

	pkgerrors "graphstore/pkg/errors"
)

// EdgeIDSeparator joins the composite key fields into an edge identifier
const EdgeIDSeparator = "|"

// Edge is a directed, typed relationship between two node names,
// identified by the composite key (from, to, edgeType). Endpoints are
// node names, not node references: referential integrity is deliberately
// not enforced by storage and edges may dangle.
type Edge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	EdgeType string `json:"edgeType"`
}

// NewEdge creates an edge, enforcing the shape invariants
func NewEdge(from, to, edgeType string) (Edge, error) {
	if from == "" {
		return Edge{}, pkgerrors.NewInvalidArgumentError("edge source cannot be empty")
	}
	if to == "" {
		return Edge{}, pkgerrors.NewInvalidArgumentError("edge target cannot be empty")
	}
	if edgeType == "" {
		return Edge{}, pkgerrors.NewInvalidArgumentError("edge type cannot be empty")
	}
	return Edge{From: from, To: to, EdgeType: edgeType}, nil
}

// ID returns the composite identifier "from|to|edgeType" used by the
// derived edge indices and by loadEdgesByIDs
func (e Edge) ID() string {
	return strings.Join([]string{e.From, e.To, e.EdgeType}, EdgeIDSeparator)
}

// Key reports whether the edge carries the given composite key
func (e Edge) Key(from, to, edgeType string) bool {
	return e.From == from && e.To == to && e.EdgeType == edgeType
}

// String implements fmt.Stringer
func (e Edge) String() string {
	return fmt.Sprintf("%s -[%s]-> %s", e.From, e.EdgeType, e.To)
}

// EdgeUpdate rewrites an edge identified by its original composite key.
// Only non-nil fields are rewritten. A rewrite that collides with an
// existing different edge's key fails rather than silently merging.
type EdgeUpdate struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	EdgeType string  `json:"edgeType"`
	NewFrom  *string `json:"newFrom,omitempty"`
	NewTo    *string `json:"newTo,omitempty"`
	NewType  *string `json:"newEdgeType,omitempty"`
}

// Target returns the edge key the update would produce
func (u EdgeUpdate) Target() Edge {
	target := Edge{From: u.From, To: u.To, EdgeType: u.EdgeType}
	if u.NewFrom != nil {
		target.From = *u.NewFrom
	}
	if u.NewTo != nil {
		target.To = *u.NewTo
	}
	if u.NewType != nil {
		target.EdgeType = *u.NewType
	}
	return target
}

// EdgeFilter is an optional conjunctive predicate over edges: every
// non-nil field must match. A nil filter matches all edges.
type EdgeFilter struct {
	From     *string `json:"from,omitempty"`
	To       *string `json:"to,omitempty"`
	EdgeType *string `json:"edgeType,omitempty"`
}

// Matches applies the predicate to an edge
func (f *EdgeFilter) Matches(e Edge) bool {
	if f == nil {
		return true
	}
	if f.From != nil && e.From != *f.From {
		return false
	}
	if f.To != nil && e.To != *f.To {
		return false
	}
	if f.EdgeType != nil && e.EdgeType != *f.EdgeType {
		return false
	}
	return true
}

// Empty reports whether the filter constrains nothing
func (f *EdgeFilter) Empty() bool {
	return f == nil || (f.From == nil && f.To == nil && f.EdgeType == nil)
}

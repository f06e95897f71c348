package validators

import (
	"graphstore/domain/core/aggregates"
	"graphstore/domain/core/entities"
	"graphstore/pkg/errors"
)

// GraphValidator holds the pure, side-effect-free predicate checks run
// before every mutation. Each check fails with a descriptive typed error
// and never touches the graph it is given.
type GraphValidator struct{}

// NewGraphValidator creates a new graph validator
func NewGraphValidator() *GraphValidator {
	return &GraphValidator{}
}

// EnsureNodeExists fails with NotFound unless a node with the exact name
// is present in the snapshot
func (v *GraphValidator) EnsureNodeExists(g *aggregates.Graph, name string) error {
	if name == "" {
		return errors.NewInvalidArgumentError("node name cannot be empty")
	}
	if !g.HasNode(name) {
		return errors.NewNotFoundError("node").WithDetail("name", name)
	}
	return nil
}

// EnsureNodeAbsent fails with AlreadyExists if a node with the exact name
// is present in the snapshot
func (v *GraphValidator) EnsureNodeAbsent(g *aggregates.Graph, name string) error {
	if g.HasNode(name) {
		return errors.NewAlreadyExistsError("node").WithDetail("name", name)
	}
	return nil
}

// ValidateNewNode checks the creation shape: non-empty name and nodeType
func (v *GraphValidator) ValidateNewNode(node entities.Node) error {
	if node.Name == "" {
		return errors.NewInvalidArgumentError("node name cannot be empty")
	}
	if node.NodeType == "" {
		return errors.NewInvalidArgumentError("node type cannot be empty").
			WithDetail("name", node.Name)
	}
	return nil
}

// ValidateNodeRef checks the identify shape: non-empty name
func (v *GraphValidator) ValidateNodeRef(name string) error {
	if name == "" {
		return errors.NewInvalidArgumentError("node name cannot be empty")
	}
	return nil
}

// EnsureEdgeAbsent fails with AlreadyExists if an edge with the same
// (from, to, edgeType) key is present in the snapshot
func (v *GraphValidator) EnsureEdgeAbsent(g *aggregates.Graph, e entities.Edge) error {
	if g.HasEdge(e.From, e.To, e.EdgeType) {
		return errors.NewAlreadyExistsError("edge").WithDetail("id", e.ID())
	}
	return nil
}

// EnsureEdgeExists fails with NotFound unless an edge with the exact
// composite key is present in the snapshot
func (v *GraphValidator) EnsureEdgeExists(g *aggregates.Graph, from, to, edgeType string) error {
	if !g.HasEdge(from, to, edgeType) {
		return errors.NewNotFoundError("edge").
			WithDetail("from", from).
			WithDetail("to", to).
			WithDetail("edgeType", edgeType)
	}
	return nil
}

// ValidateEdge checks the edge shape: no empty key field
func (v *GraphValidator) ValidateEdge(e entities.Edge) error {
	if e.From == "" || e.To == "" || e.EdgeType == "" {
		return errors.NewInvalidArgumentError("edge requires from, to, and edgeType")
	}
	return nil
}

// ValidateNameList checks that a name list is a non-empty ordered
// sequence of non-empty strings
func (v *GraphValidator) ValidateNameList(names []string) error {
	if len(names) == 0 {
		return errors.NewInvalidArgumentError("name list cannot be empty")
	}
	for i, name := range names {
		if name == "" {
			return errors.NewInvalidArgumentError("name list contains an empty name").
				WithDetail("index", i)
		}
	}
	return nil
}

package entities

import (
	pkgerrors "graphstore/pkg/errors"
)

// Node is the main entity: a uniquely named, typed knowledge unit with an
// ordered sequence of free-text metadata. Names are case-sensitive and
// unique across a graph; metadata order is insertion order.
type Node struct {
	Name     string   `json:"name"`
	NodeType string   `json:"nodeType"`
	Metadata []string `json:"metadata"`
}

// NewNode creates a node, enforcing the creation shape invariants
func NewNode(name, nodeType string, metadata []string) (Node, error) {
	if name == "" {
		return Node{}, pkgerrors.NewInvalidArgumentError("node name cannot be empty")
	}
	if nodeType == "" {
		return Node{}, pkgerrors.NewInvalidArgumentError("node type cannot be empty")
	}
	if metadata == nil {
		metadata = []string{}
	}
	return Node{Name: name, NodeType: nodeType, Metadata: metadata}, nil
}

// HasMetadata reports whether the exact string is already present
func (n Node) HasMetadata(entry string) bool {
	for _, m := range n.Metadata {
		if m == entry {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the node
func (n Node) Clone() Node {
	metadata := make([]string, len(n.Metadata))
	copy(metadata, n.Metadata)
	return Node{Name: n.Name, NodeType: n.NodeType, Metadata: metadata}
}

// NodeUpdate is a partial node identified by Name. Only non-nil fields
// overwrite the stored node; Metadata replaces the prior sequence
// wholesale, it is never merged.
type NodeUpdate struct {
	Name     string    `json:"name"`
	NodeType *string   `json:"nodeType,omitempty"`
	Metadata *[]string `json:"metadata,omitempty"`
}

// ApplyTo overwrites the stored node's fields from the update
func (u NodeUpdate) ApplyTo(node *Node) {
	if u.NodeType != nil {
		node.NodeType = *u.NodeType
	}
	if u.Metadata != nil {
		metadata := make([]string, len(*u.Metadata))
		copy(metadata, *u.Metadata)
		node.Metadata = metadata
	}
}

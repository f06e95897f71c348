package aggregates

import (
	"graphstore/domain/core/entities"
)

// Graph is the aggregate of an ordered node sequence and an ordered edge
// sequence. It is the unit of load and save. Ordering is insertion order
// and is preserved across persistence round-trips.
//
// The aggregate also owns the three derived edge indices (by source, by
// target, by edge type). They are rebuilt from the edge sequence on load,
// never persisted, and kept consistent with the edge sequence on every
// insert and removal.
type Graph struct {
	Nodes []entities.Node `json:"nodes"`
	Edges []entities.Edge `json:"edges"`

	index *EdgeIndex
}

// EdgeIndex maps node names and edge types to sets of composite edge ids
type EdgeIndex struct {
	BySource map[string]map[string]struct{}
	ByTarget map[string]map[string]struct{}
	ByType   map[string]map[string]struct{}
}

// NewEdgeIndex creates an empty index
func NewEdgeIndex() *EdgeIndex {
	return &EdgeIndex{
		BySource: make(map[string]map[string]struct{}),
		ByTarget: make(map[string]map[string]struct{}),
		ByType:   make(map[string]map[string]struct{}),
	}
}

// Add records an edge in all three mappings
func (idx *EdgeIndex) Add(e entities.Edge) {
	id := e.ID()
	addToIndex(idx.BySource, e.From, id)
	addToIndex(idx.ByTarget, e.To, id)
	addToIndex(idx.ByType, e.EdgeType, id)
}

// Remove mirrors a removal in all three mappings
func (idx *EdgeIndex) Remove(e entities.Edge) {
	id := e.ID()
	removeFromIndex(idx.BySource, e.From, id)
	removeFromIndex(idx.ByTarget, e.To, id)
	removeFromIndex(idx.ByType, e.EdgeType, id)
}

// Clear empties all three mappings
func (idx *EdgeIndex) Clear() {
	idx.BySource = make(map[string]map[string]struct{})
	idx.ByTarget = make(map[string]map[string]struct{})
	idx.ByType = make(map[string]map[string]struct{})
}

func addToIndex(m map[string]map[string]struct{}, key, id string) {
	if m[key] == nil {
		m[key] = make(map[string]struct{})
	}
	m[key][id] = struct{}{}
}

func removeFromIndex(m map[string]map[string]struct{}, key, id string) {
	if set, ok := m[key]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(m, key)
		}
	}
}

// NewGraph creates an empty graph with an empty index
func NewGraph() *Graph {
	return &Graph{
		Nodes: []entities.Node{},
		Edges: []entities.Edge{},
		index: NewEdgeIndex(),
	}
}

// RebuildIndex clears and rebuilds the edge indices from the edge
// sequence. Called after every load.
func (g *Graph) RebuildIndex() {
	if g.index == nil {
		g.index = NewEdgeIndex()
	}
	g.index.Clear()
	for _, e := range g.Edges {
		g.index.Add(e)
	}
}

// Index returns the derived edge index, building it on first use
func (g *Graph) Index() *EdgeIndex {
	if g.index == nil {
		g.RebuildIndex()
	}
	return g.index
}

// FindNode returns a pointer into the node sequence, or nil
func (g *Graph) FindNode(name string) *entities.Node {
	for i := range g.Nodes {
		if g.Nodes[i].Name == name {
			return &g.Nodes[i]
		}
	}
	return nil
}

// HasNode reports whether a node with the exact name exists
func (g *Graph) HasNode(name string) bool {
	return g.FindNode(name) != nil
}

// FindEdge returns a pointer into the edge sequence, or nil
func (g *Graph) FindEdge(from, to, edgeType string) *entities.Edge {
	for i := range g.Edges {
		if g.Edges[i].Key(from, to, edgeType) {
			return &g.Edges[i]
		}
	}
	return nil
}

// HasEdge reports whether an edge with the exact composite key exists
func (g *Graph) HasEdge(from, to, edgeType string) bool {
	return g.FindEdge(from, to, edgeType) != nil
}

// AppendNode appends a node in insertion order. The caller validates
// uniqueness first.
func (g *Graph) AppendNode(node entities.Node) {
	g.Nodes = append(g.Nodes, node)
}

// RemoveNode removes the node by name and reports whether it was present.
// Edges referencing the removed node are NOT cascade-deleted; dangling
// edges are the caller's responsibility.
func (g *Graph) RemoveNode(name string) bool {
	for i := range g.Nodes {
		if g.Nodes[i].Name == name {
			g.Nodes = append(g.Nodes[:i], g.Nodes[i+1:]...)
			return true
		}
	}
	return false
}

// AppendEdge appends an edge in insertion order and records it in the
// indices. The caller validates key uniqueness first.
func (g *Graph) AppendEdge(edge entities.Edge) {
	g.Edges = append(g.Edges, edge)
	g.Index().Add(edge)
}

// RemoveEdge removes the edge by exact composite key, mirroring the
// removal in all three indices, and reports whether it was present
func (g *Graph) RemoveEdge(from, to, edgeType string) bool {
	for i := range g.Edges {
		if g.Edges[i].Key(from, to, edgeType) {
			removed := g.Edges[i]
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			g.Index().Remove(removed)
			return true
		}
	}
	return false
}

// ReplaceEdge rewrites an edge in place, keeping its position in the
// sequence, and updates the indices
func (g *Graph) ReplaceEdge(from, to, edgeType string, replacement entities.Edge) bool {
	for i := range g.Edges {
		if g.Edges[i].Key(from, to, edgeType) {
			g.Index().Remove(g.Edges[i])
			g.Edges[i] = replacement
			g.Index().Add(replacement)
			return true
		}
	}
	return false
}

// FilterEdges returns the edges matching the conjunctive filter, in
// sequence order. When the filter constrains at least one field the
// candidate set comes from the narrowest index and is verified against
// the full predicate; the unfiltered path returns the sequence directly.
func (g *Graph) FilterEdges(filter *entities.EdgeFilter) []entities.Edge {
	matched := []entities.Edge{}
	if filter.Empty() {
		matched = append(matched, g.Edges...)
		return matched
	}

	candidates := g.indexCandidates(filter)
	for _, e := range g.Edges {
		if _, ok := candidates[e.ID()]; !ok {
			continue
		}
		if filter.Matches(e) {
			matched = append(matched, e)
		}
	}
	return matched
}

// indexCandidates picks the smallest id set among the indices covering
// the filter's populated fields
func (g *Graph) indexCandidates(filter *entities.EdgeFilter) map[string]struct{} {
	idx := g.Index()
	var narrowest map[string]struct{}

	consider := func(set map[string]struct{}) {
		if narrowest == nil || len(set) < len(narrowest) {
			narrowest = set
		}
	}
	if filter.From != nil {
		consider(idx.BySource[*filter.From])
	}
	if filter.To != nil {
		consider(idx.ByTarget[*filter.To])
	}
	if filter.EdgeType != nil {
		consider(idx.ByType[*filter.EdgeType])
	}
	if narrowest == nil {
		return map[string]struct{}{}
	}
	return narrowest
}

// NodeCount returns the number of nodes
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges
func (g *Graph) EdgeCount() int {
	return len(g.Edges)
}

// Clone returns a deep copy of the graph with a freshly built index.
// The transaction manager clones the loaded snapshot so that no other
// component can alias its working copy.
func (g *Graph) Clone() *Graph {
	clone := NewGraph()
	clone.Nodes = make([]entities.Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		clone.Nodes = append(clone.Nodes, n.Clone())
	}
	clone.Edges = make([]entities.Edge, len(g.Edges))
	copy(clone.Edges, g.Edges)
	clone.RebuildIndex()
	return clone
}

package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEdge_RequiresAllKeyFields(t *testing.T) {
	for _, tc := range []struct{ from, to, edgeType string }{
		{"", "Bob", "knows"},
		{"Alice", "", "knows"},
		{"Alice", "Bob", ""},
	} {
		_, err := NewEdge(tc.from, tc.to, tc.edgeType)
		assert.Error(t, err)
	}

	edge, err := NewEdge("Alice", "Bob", "knows")
	require.NoError(t, err)
	assert.Equal(t, "Alice|Bob|knows", edge.ID())
	assert.Equal(t, "Alice -[knows]-> Bob", edge.String())
}

func TestEdge_Key(t *testing.T) {
	edge := Edge{From: "Alice", To: "Bob", EdgeType: "knows"}

	assert.True(t, edge.Key("Alice", "Bob", "knows"))
	assert.False(t, edge.Key("Bob", "Alice", "knows"), "direction is part of the key")
	assert.False(t, edge.Key("Alice", "Bob", "likes"))
}

func TestEdgeUpdate_Target(t *testing.T) {
	newTo := "Carol"
	update := EdgeUpdate{From: "Alice", To: "Bob", EdgeType: "knows", NewTo: &newTo}

	target := update.Target()
	assert.Equal(t, Edge{From: "Alice", To: "Carol", EdgeType: "knows"}, target)

	noop := EdgeUpdate{From: "Alice", To: "Bob", EdgeType: "knows"}
	assert.Equal(t, Edge{From: "Alice", To: "Bob", EdgeType: "knows"}, noop.Target())
}

func TestEdgeFilter_Matches(t *testing.T) {
	edge := Edge{From: "Alice", To: "Bob", EdgeType: "knows"}

	var none *EdgeFilter
	assert.True(t, none.Matches(edge), "nil filter matches everything")
	assert.True(t, none.Empty())

	from := "Alice"
	to := "Bob"
	other := "Carol"
	assert.True(t, (&EdgeFilter{From: &from}).Matches(edge))
	assert.True(t, (&EdgeFilter{From: &from, To: &to}).Matches(edge))
	assert.False(t, (&EdgeFilter{From: &from, To: &other}).Matches(edge), "fields are conjunctive")
	assert.False(t, (&EdgeFilter{From: &other}).Matches(edge))
}

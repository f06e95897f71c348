package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstore/domain/core/aggregates"
	"graphstore/domain/core/entities"
	"graphstore/pkg/errors"
)

func validatorGraph() *aggregates.Graph {
	g := aggregates.NewGraph()
	g.AppendNode(entities.Node{Name: "Alice", NodeType: "person", Metadata: []string{}})
	g.AppendEdge(entities.Edge{From: "Alice", To: "Bob", EdgeType: "knows"})
	return g
}

func TestEnsureNodeExists(t *testing.T) {
	v := NewGraphValidator()
	g := validatorGraph()

	assert.NoError(t, v.EnsureNodeExists(g, "Alice"))

	err := v.EnsureNodeExists(g, "alice")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err), "lookup is case-sensitive")

	err = v.EnsureNodeExists(g, "")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestEnsureNodeAbsent(t *testing.T) {
	v := NewGraphValidator()
	g := validatorGraph()

	assert.NoError(t, v.EnsureNodeAbsent(g, "Bob"))

	err := v.EnsureNodeAbsent(g, "Alice")
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestEnsureEdgeChecks(t *testing.T) {
	v := NewGraphValidator()
	g := validatorGraph()

	assert.NoError(t, v.EnsureEdgeExists(g, "Alice", "Bob", "knows"))

	err := v.EnsureEdgeExists(g, "Bob", "Alice", "knows")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err), "the composite key is directional")

	err = v.EnsureEdgeAbsent(g, entities.Edge{From: "Alice", To: "Bob", EdgeType: "knows"})
	require.Error(t, err)
	assert.True(t, errors.IsAlreadyExists(err))

	assert.NoError(t, v.EnsureEdgeAbsent(g, entities.Edge{From: "Alice", To: "Bob", EdgeType: "likes"}))
}

func TestValidateEdge(t *testing.T) {
	v := NewGraphValidator()

	assert.NoError(t, v.ValidateEdge(entities.Edge{From: "a", To: "b", EdgeType: "t"}))
	assert.Error(t, v.ValidateEdge(entities.Edge{From: "", To: "b", EdgeType: "t"}))
	assert.Error(t, v.ValidateEdge(entities.Edge{From: "a", To: "b", EdgeType: ""}))
}

func TestValidateNameList(t *testing.T) {
	v := NewGraphValidator()

	assert.Error(t, v.ValidateNameList(nil))
	assert.Error(t, v.ValidateNameList([]string{"Alice", ""}))
	assert.NoError(t, v.ValidateNameList([]string{"Alice", "Bob"}))
}

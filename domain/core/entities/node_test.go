package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"graphstore/pkg/errors"
)

func TestNewNode_RequiresNameAndType(t *testing.T) {
	_, err := NewNode("", "person", nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewNode("Alice", "", nil)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	node, err := NewNode("Alice", "person", nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice", node.Name)
	assert.NotNil(t, node.Metadata, "metadata should never be nil")
	assert.Empty(t, node.Metadata)
}

func TestNode_HasMetadata_ExactMatch(t *testing.T) {
	node, err := NewNode("Alice", "person", []string{"likes pizza"})
	require.NoError(t, err)

	assert.True(t, node.HasMetadata("likes pizza"))
	assert.False(t, node.HasMetadata("likes Pizza"), "matching is exact, not case-insensitive")
	assert.False(t, node.HasMetadata("likes"))
}

func TestNode_Clone_Independent(t *testing.T) {
	node, err := NewNode("Alice", "person", []string{"a", "b"})
	require.NoError(t, err)

	clone := node.Clone()
	clone.Metadata[0] = "changed"

	assert.Equal(t, "a", node.Metadata[0], "mutating a clone must not touch the original")
}

func TestNodeUpdate_ApplyTo(t *testing.T) {
	node, err := NewNode("Alice", "person", []string{"a", "b"})
	require.NoError(t, err)

	newType := "robot"
	update := NodeUpdate{Name: "Alice", NodeType: &newType}
	update.ApplyTo(&node)

	assert.Equal(t, "robot", node.NodeType)
	assert.Equal(t, []string{"a", "b"}, node.Metadata, "absent fields stay untouched")

	replacement := []string{"c"}
	update = NodeUpdate{Name: "Alice", Metadata: &replacement}
	update.ApplyTo(&node)

	assert.Equal(t, []string{"c"}, node.Metadata, "metadata replaces wholesale, never merges")
	assert.Equal(t, "robot", node.NodeType)
}

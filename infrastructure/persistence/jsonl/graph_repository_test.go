package jsonl

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"graphstore/domain/core/aggregates"
	"graphstore/domain/core/entities"
)

func newTestRepo(t *testing.T) *GraphRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.jsonl")
	return NewGraphRepository(path, []int{1}, zap.NewNop())
}

func TestLoadGraph_MissingStoreYieldsEmptyGraph(t *testing.T) {
	repo := newTestRepo(t)

	graph, err := repo.LoadGraph(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, graph.NodeCount())
	assert.Equal(t, 0, graph.EdgeCount())
}

func TestSaveAndLoad_PreservesOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	graph := aggregates.NewGraph()
	graph.AppendNode(entities.Node{Name: "Alice", NodeType: "person", Metadata: []string{"m1"}})
	graph.AppendNode(entities.Node{Name: "Bob", NodeType: "person", Metadata: []string{}})
	graph.AppendEdge(entities.Edge{From: "Alice", To: "Bob", EdgeType: "knows"})
	graph.AppendEdge(entities.Edge{From: "Bob", To: "Alice", EdgeType: "knows"})

	require.NoError(t, repo.SaveGraph(ctx, graph))

	loaded, err := repo.LoadGraph(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.NodeCount())
	require.Equal(t, 2, loaded.EdgeCount())
	assert.Equal(t, "Alice", loaded.Nodes[0].Name)
	assert.Equal(t, "Bob", loaded.Nodes[1].Name)
	assert.Equal(t, "Alice|Bob|knows", loaded.Edges[0].ID())
	assert.Equal(t, []string{"m1"}, loaded.Nodes[0].Metadata)
	assert.True(t, loaded.HasEdge("Bob", "Alice", "knows"), "indices are rebuilt on load")
}

func TestSaveGraph_OverwritesInFull(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := aggregates.NewGraph()
	first.AppendNode(entities.Node{Name: "Alice", NodeType: "person", Metadata: []string{}})
	first.AppendNode(entities.Node{Name: "Bob", NodeType: "person", Metadata: []string{}})
	require.NoError(t, repo.SaveGraph(ctx, first))

	second := aggregates.NewGraph()
	second.AppendNode(entities.Node{Name: "Carol", NodeType: "person", Metadata: []string{}})
	require.NoError(t, repo.SaveGraph(ctx, second))

	loaded, err := repo.LoadGraph(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.NodeCount())
	assert.Equal(t, "Carol", loaded.Nodes[0].Name)
}

func TestLoadGraph_SkipsUnparseableRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	content := `{"type":"node","schemaVersion":1,"name":"Alice","nodeType":"person"}
this line is not json
{"type":"mystery"}
{"type":"node","schemaVersion":99,"name":"Future","nodeType":"person"}

{"type":"edge","schemaVersion":1,"from":"Alice","to":"Bob","edgeType":"knows"}
`
	require.NoError(t, os.WriteFile(repo.Path(), []byte(content), 0o644))

	graph, err := repo.LoadGraph(ctx)
	require.NoError(t, err, "bad records never abort the load")
	assert.Equal(t, 1, graph.NodeCount())
	assert.Equal(t, 1, graph.EdgeCount())
	assert.True(t, graph.HasNode("Alice"))
	assert.False(t, graph.HasNode("Future"))
}

func TestLoadGraph_SkipsOversizedRecords(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	var content bytes.Buffer
	content.WriteString(`{"type":"node","schemaVersion":1,"name":"Alice","nodeType":"person"}` + "\n")
	content.WriteString(`{"type":"node","schemaVersion":1,"name":"Huge","nodeType":"person","metadata":["`)
	content.Write(bytes.Repeat([]byte("x"), 2<<20))
	content.WriteString(`"]}` + "\n")
	content.WriteString(`{"type":"node","schemaVersion":1,"name":"Bob","nodeType":"person"}` + "\n")
	require.NoError(t, os.WriteFile(repo.Path(), content.Bytes(), 0o644))

	graph, err := repo.LoadGraph(ctx)
	require.NoError(t, err, "an oversized record never aborts the load")
	assert.Equal(t, 2, graph.NodeCount())
	assert.True(t, graph.HasNode("Alice"))
	assert.True(t, graph.HasNode("Bob"), "records after the oversized one still load")
	assert.False(t, graph.HasNode("Huge"))
}

func TestLoadEdgesByIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	graph := aggregates.NewGraph()
	graph.AppendEdge(entities.Edge{From: "a", To: "b", EdgeType: "x"})
	graph.AppendEdge(entities.Edge{From: "b", To: "c", EdgeType: "y"})
	require.NoError(t, repo.SaveGraph(ctx, graph))

	edges, err := repo.LoadEdgesByIDs(ctx, []string{"b|c|y", "missing|id|z", "a|b|x"})
	require.NoError(t, err)
	require.Len(t, edges, 2, "unknown ids are silently omitted")
	assert.Equal(t, "b|c|y", edges[0].ID(), "results come back in request order")
	assert.Equal(t, "a|b|x", edges[1].ID())
}

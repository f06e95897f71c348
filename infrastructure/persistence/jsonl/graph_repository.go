package jsonl

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"graphstore/domain/core/aggregates"
	"graphstore/domain/core/entities"
	"graphstore/infrastructure/persistence/schema"
	"graphstore/pkg/errors"
)

// maxRecordSize bounds a single line record during load. A longer line
// is treated like any other unparseable record: skipped with a warning.
const maxRecordSize = 1 << 20

// GraphRepository persists the whole graph as line-delimited JSON
// records in a single flat file. Saving is a full-file overwrite with no
// journaling: a crash mid-write can corrupt the file. That is an
// accepted limitation of this store, not a guarantee it tries to paper
// over.
type GraphRepository struct {
	path              string
	supportedVersions []int
	logger            *zap.Logger

	initOnce sync.Once
	initErr  error
}

// NewGraphRepository creates a repository over the given file path
func NewGraphRepository(path string, supportedVersions []int, logger *zap.Logger) *GraphRepository {
	return &GraphRepository{
		path:              path,
		supportedVersions: supportedVersions,
		logger:            logger,
	}
}

// Path returns the backing file path
func (r *GraphRepository) Path() string {
	return r.path
}

// ensureStore lazily creates the containing directory and the backing
// file. Memoized: runs at most once per process lifetime.
func (r *GraphRepository) ensureStore() error {
	r.initOnce.Do(func() {
		if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
			r.initErr = err
			return
		}
		f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			r.initErr = err
			return
		}
		r.initErr = f.Close()
	})
	return r.initErr
}

// LoadGraph reads the backing store and accumulates every parseable
// record into a graph. A record that fails to parse is skipped with a
// logged warning and never aborts the load. A missing store yields an
// empty graph. The edge indices are rebuilt before returning.
func (r *GraphRepository) LoadGraph(ctx context.Context) (*aggregates.Graph, error) {
	if err := r.ensureStore(); err != nil {
		return nil, errors.NewStorageError("loadGraph", err)
	}

	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return aggregates.NewGraph(), nil
		}
		return nil, errors.NewStorageError("loadGraph", err)
	}
	defer f.Close()

	graph := aggregates.NewGraph()
	reader := bufio.NewReaderSize(f, maxRecordSize)

	lineNo := 0
	for {
		line, readErr := reader.ReadSlice('\n')
		lineNo++

		if readErr == bufio.ErrBufferFull {
			r.logger.Warn("skipping oversized record",
				zap.String("path", r.path),
				zap.Int("line", lineNo),
			)
			// drain the remainder of the line
			for readErr == bufio.ErrBufferFull {
				_, readErr = reader.ReadSlice('\n')
			}
			line = nil
		}

		if line = bytes.TrimSpace(line); len(line) > 0 {
			rec, err := schema.DecodeLine(line, r.supportedVersions)
			if err != nil {
				r.logger.Warn("skipping unparseable record",
					zap.String("path", r.path),
					zap.Int("line", lineNo),
					zap.Error(err),
				)
			} else {
				switch rec.Type {
				case schema.RecordTypeNode:
					graph.Nodes = append(graph.Nodes, rec.ToNode())
				case schema.RecordTypeEdge:
					graph.Edges = append(graph.Edges, rec.ToEdge())
				}
			}
		}

		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, errors.NewStorageError("loadGraph", readErr)
		}
	}

	graph.RebuildIndex()
	return graph, nil
}

// SaveGraph serializes nodes then edges, one record per line, and
// overwrites the backing file in full
func (r *GraphRepository) SaveGraph(ctx context.Context, graph *aggregates.Graph) error {
	if err := r.ensureStore(); err != nil {
		return errors.NewStorageError("saveGraph", err)
	}

	var buf bytes.Buffer
	for _, node := range graph.Nodes {
		line, err := schema.EncodeNode(node)
		if err != nil {
			return errors.NewStorageError("saveGraph", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	for _, edge := range graph.Edges {
		line, err := schema.EncodeEdge(edge)
		if err != nil {
			return errors.NewStorageError("saveGraph", err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		return errors.NewStorageError("saveGraph", err)
	}

	r.logger.Debug("graph saved",
		zap.String("path", r.path),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()),
	)
	return nil
}

// LoadEdgesByIDs loads the full graph, builds a lookup keyed by the
// composite edge id, and returns the subset matching the requested ids
// in request order. Unknown ids are silently omitted.
func (r *GraphRepository) LoadEdgesByIDs(ctx context.Context, ids []string) ([]entities.Edge, error) {
	graph, err := r.LoadGraph(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]entities.Edge, len(graph.Edges))
	for _, e := range graph.Edges {
		byID[e.ID()] = e
	}

	edges := []entities.Edge{}
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			edges = append(edges, e)
		}
	}
	return edges, nil
}

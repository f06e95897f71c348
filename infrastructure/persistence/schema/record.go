package schema

import (
	"encoding/json"
	"fmt"

	"graphstore/domain/core/entities"
)

// Record discriminator values
const (
	RecordTypeNode = "node"
	RecordTypeEdge = "edge"
)

// CurrentVersion is the schema version written to new records
const CurrentVersion = 1

// Record is the persisted line format: one JSON object per line, with a
// discriminator distinguishing node records from edge records. Records
// may omit schemaVersion; such records are read as version 1.
type Record struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion,omitempty"`

	// Node fields
	Name     string   `json:"name,omitempty"`
	NodeType string   `json:"nodeType,omitempty"`
	Metadata []string `json:"metadata,omitempty"`

	// Edge fields
	From     string `json:"from,omitempty"`
	To       string `json:"to,omitempty"`
	EdgeType string `json:"edgeType,omitempty"`
}

// EncodeNode serializes a node as a line record
func EncodeNode(n entities.Node) ([]byte, error) {
	return json.Marshal(Record{
		Type:          RecordTypeNode,
		SchemaVersion: CurrentVersion,
		Name:          n.Name,
		NodeType:      n.NodeType,
		Metadata:      n.Metadata,
	})
}

// EncodeEdge serializes an edge as a line record
func EncodeEdge(e entities.Edge) ([]byte, error) {
	return json.Marshal(Record{
		Type:          RecordTypeEdge,
		SchemaVersion: CurrentVersion,
		From:          e.From,
		To:            e.To,
		EdgeType:      e.EdgeType,
	})
}

// DecodeLine parses a single line record and checks its schema version
// against the supported list. Any failure here is a per-record failure:
// the caller skips the record and continues the load.
func DecodeLine(line []byte, supportedVersions []int) (Record, error) {
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return Record{}, fmt.Errorf("malformed record: %w", err)
	}

	if rec.Type != RecordTypeNode && rec.Type != RecordTypeEdge {
		return Record{}, fmt.Errorf("unknown record type %q", rec.Type)
	}

	version := rec.SchemaVersion
	if version == 0 {
		version = 1
	}
	if !versionSupported(version, supportedVersions) {
		return Record{}, fmt.Errorf("unsupported schema version %d", version)
	}

	return rec, nil
}

// ToNode converts a node record to its entity
func (r Record) ToNode() entities.Node {
	metadata := r.Metadata
	if metadata == nil {
		metadata = []string{}
	}
	return entities.Node{Name: r.Name, NodeType: r.NodeType, Metadata: metadata}
}

// ToEdge converts an edge record to its entity
func (r Record) ToEdge() entities.Edge {
	return entities.Edge{From: r.From, To: r.To, EdgeType: r.EdgeType}
}

func versionSupported(version int, supported []int) bool {
	for _, v := range supported {
		if v == version {
			return true
		}
	}
	return false
}

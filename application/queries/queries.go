package queries

import (
	"graphstore/domain/core/entities"
	"graphstore/pkg/errors"
)

// ReadGraphQuery returns the full current graph
type ReadGraphQuery struct{}

func (q ReadGraphQuery) Validate() error { return nil }

// GetEdgesQuery returns edges matching the optional conjunctive filter;
// a nil filter returns all edges
type GetEdgesQuery struct {
	Filter *entities.EdgeFilter `json:"filter,omitempty"`
}

func (q GetEdgesQuery) Validate() error { return nil }

// SearchNodesQuery matches a case-insensitive substring over node name,
// type, and metadata entries
type SearchNodesQuery struct {
	Query string `json:"query"`
}

func (q SearchNodesQuery) Validate() error {
	if q.Query == "" {
		return errors.NewInvalidArgumentError("query cannot be empty")
	}
	return nil
}

// OpenNodesQuery returns nodes by exact name, plus the edges between them
type OpenNodesQuery struct {
	Names []string `json:"names"`
}

func (q OpenNodesQuery) Validate() error {
	if len(q.Names) == 0 {
		return errors.NewInvalidArgumentError("names cannot be empty")
	}
	return nil
}

// TransactionStatusQuery reports whether a transaction is active
type TransactionStatusQuery struct{}

func (q TransactionStatusQuery) Validate() error { return nil }

// TransactionStatus is the result of TransactionStatusQuery
type TransactionStatus struct {
	Active    bool `json:"active"`
	NodeCount int  `json:"nodeCount"`
	EdgeCount int  `json:"edgeCount"`
}

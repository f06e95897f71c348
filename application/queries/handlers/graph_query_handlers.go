package handlers

import (
	"context"
	"fmt"

	"graphstore/application/ports"
	"graphstore/application/queries"
	"graphstore/application/queries/bus"
)

// GraphQueryHandlers routes every read operation to the search capability
type GraphQueryHandlers struct {
	searcher ports.Searcher
	tx       ports.Transactor
}

// NewGraphQueryHandlers creates the query handler set
func NewGraphQueryHandlers(searcher ports.Searcher, tx ports.Transactor) *GraphQueryHandlers {
	return &GraphQueryHandlers{searcher: searcher, tx: tx}
}

// RegisterAll registers every query handler on the bus
func (h *GraphQueryHandlers) RegisterAll(b *bus.QueryBus) error {
	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandlerFunc
	}{
		{queries.ReadGraphQuery{}, h.handleReadGraph},
		{queries.GetEdgesQuery{}, h.handleGetEdges},
		{queries.SearchNodesQuery{}, h.handleSearchNodes},
		{queries.OpenNodesQuery{}, h.handleOpenNodes},
		{queries.TransactionStatusQuery{}, h.handleTransactionStatus},
	}

	for _, reg := range registrations {
		if err := b.Register(reg.query, reg.handler); err != nil {
			return err
		}
	}
	return nil
}

func (h *GraphQueryHandlers) handleReadGraph(ctx context.Context, query bus.Query) (interface{}, error) {
	return h.searcher.ReadGraph(ctx)
}

func (h *GraphQueryHandlers) handleGetEdges(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetEdgesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}
	return h.searcher.GetEdges(ctx, q.Filter)
}

func (h *GraphQueryHandlers) handleSearchNodes(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.SearchNodesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}
	return h.searcher.SearchNodes(ctx, q.Query)
}

func (h *GraphQueryHandlers) handleOpenNodes(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.OpenNodesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid query type %T", query)
	}
	return h.searcher.OpenNodes(ctx, q.Names)
}

func (h *GraphQueryHandlers) handleTransactionStatus(ctx context.Context, query bus.Query) (interface{}, error) {
	status := queries.TransactionStatus{Active: h.tx.IsInTransaction()}
	if status.Active {
		working := h.tx.CurrentGraph()
		status.NodeCount = working.NodeCount()
		status.EdgeCount = working.EdgeCount()
	}
	return status, nil
}

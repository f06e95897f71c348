package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"graphstore/application/commands"
	"graphstore/application/commands/bus"
	"graphstore/application/queries"
	querybus "graphstore/application/queries/bus"
	"graphstore/domain/core/entities"
	"graphstore/pkg/common"
	"graphstore/pkg/validation"
)

// EdgeHandler handles edge-related HTTP requests
type EdgeHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	validator  *validation.Validator
	logger     *zap.Logger
}

// NewEdgeHandler creates a new edge handler
func NewEdgeHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *EdgeHandler {
	return &EdgeHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		validator:  validation.New(),
		logger:     logger,
	}
}

// EdgeInput represents one edge in an add or delete request
type EdgeInput struct {
	From     string `json:"from" validate:"required"`
	To       string `json:"to" validate:"required"`
	EdgeType string `json:"edgeType" validate:"required"`
}

// AddEdgesRequest represents the request body for adding edges
type AddEdgesRequest struct {
	Edges []EdgeInput `json:"edges" validate:"required,min=1,dive"`
}

// UpdateEdgeInput identifies an edge by its original key and carries the
// replacement fields
type UpdateEdgeInput struct {
	From     string  `json:"from" validate:"required"`
	To       string  `json:"to" validate:"required"`
	EdgeType string  `json:"edgeType" validate:"required"`
	NewFrom  *string `json:"newFrom,omitempty"`
	NewTo    *string `json:"newTo,omitempty"`
	NewType  *string `json:"newEdgeType,omitempty"`
}

// UpdateEdgesRequest represents the request body for updating edges
type UpdateEdgesRequest struct {
	Updates []UpdateEdgeInput `json:"updates" validate:"required,min=1,dive"`
}

// DeleteEdgesRequest represents the request body for deleting edges
type DeleteEdgesRequest struct {
	Edges []EdgeInput `json:"edges" validate:"required,min=1,dive"`
}

// AddEdges handles POST /edges
func (h *EdgeHandler) AddEdges(w http.ResponseWriter, r *http.Request) {
	var req AddEdgesRequest
	if err := common.ParseJSONBody(r, &req); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.AddEdgesCommand{Edges: toEdges(req.Edges)})
	if err != nil {
		h.logger.Warn("add edges failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}

// UpdateEdges handles PATCH /edges
func (h *EdgeHandler) UpdateEdges(w http.ResponseWriter, r *http.Request) {
	var req UpdateEdgesRequest
	if err := common.ParseJSONBody(r, &req); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	updates := make([]entities.EdgeUpdate, len(req.Updates))
	for i, in := range req.Updates {
		updates[i] = entities.EdgeUpdate{
			From:     in.From,
			To:       in.To,
			EdgeType: in.EdgeType,
			NewFrom:  in.NewFrom,
			NewTo:    in.NewTo,
			NewType:  in.NewType,
		}
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateEdgesCommand{Updates: updates})
	if err != nil {
		h.logger.Warn("update edges failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteEdges handles DELETE /edges
func (h *EdgeHandler) DeleteEdges(w http.ResponseWriter, r *http.Request) {
	var req DeleteEdgesRequest
	if err := common.ParseJSONBody(r, &req); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.DeleteEdgesCommand{Edges: toEdges(req.Edges)})
	if err != nil {
		h.logger.Warn("delete edges failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetEdges handles GET /edges with optional from/to/type query filters
func (h *EdgeHandler) GetEdges(w http.ResponseWriter, r *http.Request) {
	var filter *entities.EdgeFilter

	q := r.URL.Query()
	if q.Has("from") || q.Has("to") || q.Has("type") {
		filter = &entities.EdgeFilter{}
		if q.Has("from") {
			from := q.Get("from")
			filter.From = &from
		}
		if q.Has("to") {
			to := q.Get("to")
			filter.To = &to
		}
		if q.Has("type") {
			edgeType := q.Get("type")
			filter.EdgeType = &edgeType
		}
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetEdgesQuery{Filter: filter})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

func toEdges(inputs []EdgeInput) []entities.Edge {
	edges := make([]entities.Edge, len(inputs))
	for i, in := range inputs {
		edges[i] = entities.Edge{From: in.From, To: in.To, EdgeType: in.EdgeType}
	}
	return edges
}

package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"graphstore/application/queries"
	querybus "graphstore/application/queries/bus"
	"graphstore/pkg/common"
	"graphstore/pkg/validation"
)

// GraphHandler handles whole-graph and lookup HTTP requests
type GraphHandler struct {
	queryBus  *querybus.QueryBus
	validator *validation.Validator
	logger    *zap.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *GraphHandler {
	return &GraphHandler{
		queryBus:  queryBus,
		validator: validation.New(),
		logger:    logger,
	}
}

// OpenNodesRequest represents the request body for opening nodes by name
type OpenNodesRequest struct {
	Names []string `json:"names" validate:"required,min=1"`
}

// ReadGraph handles GET /graph
func (h *GraphHandler) ReadGraph(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ReadGraphQuery{})
	if err != nil {
		h.logger.Warn("read graph failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// SearchNodes handles GET /search?q=
func (h *GraphHandler) SearchNodes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	result, err := h.queryBus.Ask(r.Context(), queries.SearchNodesQuery{Query: query})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// OpenNodes handles POST /open
func (h *GraphHandler) OpenNodes(w http.ResponseWriter, r *http.Request) {
	var req OpenNodesRequest
	if err := common.ParseJSONBody(r, &req); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.OpenNodesQuery{Names: req.Names})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

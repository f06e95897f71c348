package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"graphstore/application/commands"
	"graphstore/application/commands/bus"
	"graphstore/domain/core/entities"
	"graphstore/pkg/common"
	"graphstore/pkg/validation"
)

// NodeHandler handles node-related HTTP requests
type NodeHandler struct {
	commandBus *bus.CommandBus
	validator  *validation.Validator
	logger     *zap.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(commandBus *bus.CommandBus, logger *zap.Logger) *NodeHandler {
	return &NodeHandler{
		commandBus: commandBus,
		validator:  validation.New(),
		logger:     logger,
	}
}

// NodeInput represents one node in an add request
type NodeInput struct {
	Name     string   `json:"name" validate:"required"`
	NodeType string   `json:"nodeType" validate:"required"`
	Metadata []string `json:"metadata,omitempty"`
}

// AddNodesRequest represents the request body for adding nodes
type AddNodesRequest struct {
	Nodes []NodeInput `json:"nodes" validate:"required,min=1,dive"`
}

// UpdateNodeInput represents one partial node update
type UpdateNodeInput struct {
	Name     string    `json:"name" validate:"required"`
	NodeType *string   `json:"nodeType,omitempty"`
	Metadata *[]string `json:"metadata,omitempty"`
}

// UpdateNodesRequest represents the request body for updating nodes
type UpdateNodesRequest struct {
	Updates []UpdateNodeInput `json:"updates" validate:"required,min=1,dive"`
}

// DeleteNodesRequest represents the request body for deleting nodes
type DeleteNodesRequest struct {
	Names []string `json:"names" validate:"required,min=1"`
}

// AddNodes handles POST /nodes
func (h *NodeHandler) AddNodes(w http.ResponseWriter, r *http.Request) {
	var req AddNodesRequest
	if err := common.ParseJSONBody(r, &req); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	nodes := make([]entities.Node, len(req.Nodes))
	for i, in := range req.Nodes {
		nodes[i] = entities.Node{Name: in.Name, NodeType: in.NodeType, Metadata: in.Metadata}
	}

	result, err := h.commandBus.Send(r.Context(), commands.AddNodesCommand{Nodes: nodes})
	if err != nil {
		h.logger.Warn("add nodes failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}

// UpdateNodes handles PATCH /nodes
func (h *NodeHandler) UpdateNodes(w http.ResponseWriter, r *http.Request) {
	var req UpdateNodesRequest
	if err := common.ParseJSONBody(r, &req); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	updates := make([]entities.NodeUpdate, len(req.Updates))
	for i, in := range req.Updates {
		updates[i] = entities.NodeUpdate{Name: in.Name, NodeType: in.NodeType, Metadata: in.Metadata}
	}

	result, err := h.commandBus.Send(r.Context(), commands.UpdateNodesCommand{Updates: updates})
	if err != nil {
		h.logger.Warn("update nodes failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteNodes handles DELETE /nodes
func (h *NodeHandler) DeleteNodes(w http.ResponseWriter, r *http.Request) {
	var req DeleteNodesRequest
	if err := common.ParseJSONBody(r, &req); err != nil {
		common.RespondAppError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.DeleteNodesCommand{Names: req.Names})
	if err != nil {
		h.logger.Warn("delete nodes failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

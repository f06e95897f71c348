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

// MetadataHandler handles node metadata HTTP requests
type MetadataHandler struct {
	commandBus *bus.CommandBus
	validator  *validation.Validator
	logger     *zap.Logger
}

// NewMetadataHandler creates a new metadata handler
func NewMetadataHandler(commandBus *bus.CommandBus, logger *zap.Logger) *MetadataHandler {
	return &MetadataHandler{
		commandBus: commandBus,
		validator:  validation.New(),
		logger:     logger,
	}
}

// MetadataInput represents metadata strings targeted at one node
type MetadataInput struct {
	NodeName string   `json:"nodeName" validate:"required"`
	Metadata []string `json:"metadata" validate:"required,min=1"`
}

// MetadataRequestBody represents the request body for metadata mutations
type MetadataRequestBody struct {
	Requests []MetadataInput `json:"requests" validate:"required,min=1,dive"`
}

// AddMetadata handles POST /metadata
func (h *MetadataHandler) AddMetadata(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parse(w, r)
	if !ok {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.AddMetadataCommand{Requests: req})
	if err != nil {
		h.logger.Warn("add metadata failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteMetadata handles DELETE /metadata
func (h *MetadataHandler) DeleteMetadata(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parse(w, r)
	if !ok {
		return
	}

	result, err := h.commandBus.Send(r.Context(), commands.DeleteMetadataCommand{Requests: req})
	if err != nil {
		h.logger.Warn("delete metadata failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

func (h *MetadataHandler) parse(w http.ResponseWriter, r *http.Request) ([]entities.MetadataRequest, bool) {
	var body MetadataRequestBody
	if err := common.ParseJSONBody(r, &body); err != nil {
		common.RespondAppError(w, err)
		return nil, false
	}
	if err := h.validator.Struct(body); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
		return nil, false
	}

	requests := make([]entities.MetadataRequest, len(body.Requests))
	for i, in := range body.Requests {
		requests[i] = entities.MetadataRequest{NodeName: in.NodeName, Metadata: in.Metadata}
	}
	return requests, true
}

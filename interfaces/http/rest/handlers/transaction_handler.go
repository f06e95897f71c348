package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"graphstore/application/commands"
	"graphstore/application/commands/bus"
	"graphstore/application/queries"
	querybus "graphstore/application/queries/bus"
	"graphstore/pkg/common"
)

// TransactionHandler handles transaction lifecycle HTTP requests
type TransactionHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	logger     *zap.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(commandBus *bus.CommandBus, queryBus *querybus.QueryBus, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		logger:     logger,
	}
}

// Begin handles POST /transactions/begin
func (h *TransactionHandler) Begin(w http.ResponseWriter, r *http.Request) {
	if _, err := h.commandBus.Send(r.Context(), commands.BeginTransactionCommand{}); err != nil {
		h.logger.Warn("begin transaction failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "began"})
}

// Commit handles POST /transactions/commit
func (h *TransactionHandler) Commit(w http.ResponseWriter, r *http.Request) {
	if _, err := h.commandBus.Send(r.Context(), commands.CommitTransactionCommand{}); err != nil {
		h.logger.Warn("commit transaction failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "committed"})
}

// Rollback handles POST /transactions/rollback
func (h *TransactionHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	if _, err := h.commandBus.Send(r.Context(), commands.RollbackTransactionCommand{}); err != nil {
		h.logger.Warn("rollback transaction failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "rolledBack"})
}

// Status handles GET /transactions/status
func (h *TransactionHandler) Status(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.TransactionStatusQuery{})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

package advance_refund

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	refundsService "github.com/BlackLex29/RLfursure-sub000/internal/service/refunds"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/refunds/models"
)

const (
	msgInvalidID          = "invalid refund id"
	msgInvalidRequestBody = "invalid request body"
	msgRefundNotFound     = "refund request not found"
	msgInvalidTransition  = "refund status can only move forward"
	msgStatusConflict     = "refund was advanced concurrently, retry with fresh state"
)

type Handler struct {
	service RefundsService
	logger  Logger
}

func NewHandler(service RefundsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/refunds/{refundId}/advance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["refundId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req models.AdvanceRefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /refunds/{id}/advance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.service.Advance(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, refundsService.ErrRefundNotFound):
			h.logger.Warn("PATCH /refunds/{id}/advance - Not found: refund_id=%d", id)
			handlers.RespondNotFound(w, msgRefundNotFound)

		case errors.Is(err, refundsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /refunds/{id}/advance - Invalid transition: refund_id=%d, target=%s", id, req.Target)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, refundsService.ErrStatusConflict):
			h.logger.Warn("PATCH /refunds/{id}/advance - Concurrent advance: refund_id=%d", id)
			handlers.RespondConflict(w, msgStatusConflict)

		case errors.Is(err, refundsService.ErrInvalidInput):
			h.logger.Warn("PATCH /refunds/{id}/advance - Invalid target: refund_id=%d, target=%s", id, req.Target)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /refunds/{id}/advance - Failed: refund_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /refunds/{id}/advance - Advanced: refund_id=%d, status=%s", id, resp.Status)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

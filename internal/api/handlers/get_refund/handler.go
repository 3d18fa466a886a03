package get_refund

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	refundsService "github.com/BlackLex29/RLfursure-sub000/internal/service/refunds"
)

const (
	msgInvalidID      = "invalid refund id"
	msgRefundNotFound = "refund request not found"
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

// Handle GET /api/v1/refunds/{refundId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["refundId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	resp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, refundsService.ErrRefundNotFound) {
			h.logger.Warn("GET /refunds/{id} - Not found: refund_id=%d", id)
			handlers.RespondNotFound(w, msgRefundNotFound)
			return
		}
		h.logger.Error("GET /refunds/{id} - Failed: refund_id=%d, error=%v", id, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

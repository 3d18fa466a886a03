package list_refunds

import (
	"errors"
	"net/http"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	refundsService "github.com/BlackLex29/RLfursure-sub000/internal/service/refunds"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/refunds/models"
)

const (
	msgInvalidStatus = "invalid status, expected pending, processing or completed"
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

// Handle GET /api/v1/refunds?status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListRefundsRequest{}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	resp, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, refundsService.ErrInvalidInput):
			h.logger.Warn("GET /refunds - Invalid status filter: %v", req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /refunds - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /refunds - Fetched %d refunds", len(resp.Refunds))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

package list_unavailability_days

import (
	"errors"
	"net/http"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	unavailabilityService "github.com/BlackLex29/RLfursure-sub000/internal/service/unavailability"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/unavailability/models"
)

const (
	msgInvalidFrom  = "invalid from, expected YYYY-MM-DD"
	msgInvalidTo    = "invalid to, expected YYYY-MM-DD"
	msgInvalidRange = "to must not be before from"
)

type Handler struct {
	service UnavailabilityService
	logger  Logger
}

func NewHandler(service UnavailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/unavailability?from=2026-09-15&to=2026-09-30
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, err := time.Parse(domain.DateFormat, query.Get("from"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}

	to, err := time.Parse(domain.DateFormat, query.Get("to"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}

	resp, err := h.service.ListDays(r.Context(), &models.ListDaysRequest{
		From: from,
		To:   to,
	})
	if err != nil {
		switch {
		case errors.Is(err, unavailabilityService.ErrInvalidInput):
			h.logger.Warn("GET /unavailability - Invalid range: from=%s, to=%s", query.Get("from"), query.Get("to"))
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /unavailability - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /unavailability - Fetched %d days: from=%s, to=%s",
		len(resp.Days), query.Get("from"), query.Get("to"))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

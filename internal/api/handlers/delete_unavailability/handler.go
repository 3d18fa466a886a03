package delete_unavailability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	unavailabilityService "github.com/BlackLex29/RLfursure-sub000/internal/service/unavailability"
)

const (
	msgInvalidID      = "invalid record id"
	msgRecordNotFound = "unavailability record not found"
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

// Handle DELETE /api/v1/unavailability/{recordId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["recordId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.DeleteRecord(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, unavailabilityService.ErrRecordNotFound):
			h.logger.Warn("DELETE /unavailability/{id} - Not found: record_id=%d", id)
			handlers.RespondNotFound(w, msgRecordNotFound)

		default:
			h.logger.Error("DELETE /unavailability/{id} - Failed: record_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /unavailability/{id} - Deleted: record_id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}

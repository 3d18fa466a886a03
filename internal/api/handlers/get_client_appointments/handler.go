package get_client_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	"github.com/BlackLex29/RLfursure-sub000/internal/api/middleware"
	appointmentsService "github.com/BlackLex29/RLfursure-sub000/internal/service/appointments"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/appointments/models"
)

const (
	msgInvalidClientID = "invalid client id"
	msgInvalidStatus   = "invalid status filter"
	msgAccessDenied    = "access denied"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clients/{clientId}/appointments?status=
// Клиент видит только свою историю, персонал - любую
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	vars := mux.Vars(r)
	clientID, err := strconv.ParseInt(vars["clientId"], 10, 64)
	if err != nil || clientID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	if clientID != userID && !middleware.IsStaff(r.Context()) {
		h.logger.Warn("GET /clients/{id}/appointments - Access denied: user_id=%d, client_id=%d", userID, clientID)
		handlers.RespondForbidden(w, msgAccessDenied)
		return
	}

	req := &models.GetClientAppointmentsRequest{ClientID: clientID}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetClientAppointments(r.Context(), req)
	if err != nil {
		if errors.Is(err, appointmentsService.ErrInvalidInput) {
			h.logger.Warn("GET /clients/{id}/appointments - Invalid status: client_id=%d", clientID)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /clients/{id}/appointments - Failed: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

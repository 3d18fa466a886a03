package cancel_appointment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	"github.com/BlackLex29/RLfursure-sub000/internal/api/middleware"
	appointmentsService "github.com/BlackLex29/RLfursure-sub000/internal/service/appointments"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/appointments/models"
)

const (
	msgInvalidID           = "invalid appointment id"
	msgInvalidRequestBody  = "invalid request body"
	msgAppointmentNotFound = "appointment not found"
	msgAccessDenied        = "access denied"
	msgCannotCancel        = "appointment is already done or cancelled"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	// Тело опционально: отмена без причины допустима
	var req CancelAppointmentRequest
	if decodeErr := handlers.DecodeJSON(r, &req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid request body: %v", decodeErr)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.CancelAppointmentRequest{
		UserID:             userID,
		IsStaff:            middleware.IsStaff(r.Context()),
		CancellationReason: req.CancellationReason,
		RefundContactPhone: req.RefundContactPhone,
	}

	if err := h.service.Cancel(r.Context(), id, serviceReq); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Access denied: appointment_id=%d, user_id=%d", id, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointmentsService.ErrCannotCancel):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Cannot cancel: appointment_id=%d", id)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/cancel - Invalid input: appointment_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /appointments/{id}/cancel - Failed: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/cancel - Cancelled: appointment_id=%d, user_id=%d", id, userID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

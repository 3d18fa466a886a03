package submit_payment_reference

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
	msgInvalidID           = "invalid appointment id"
	msgInvalidRequestBody  = "invalid request body"
	msgAppointmentNotFound = "appointment not found"
	msgAccessDenied        = "access denied"
	msgWrongPaymentMethod  = "payment reference applies to gcash appointments only"
	msgInvalidTransition   = "appointment is not awaiting payment"
	msgInvalidReference    = "invalid payment reference"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/payment/reference
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

	var req SubmitReferenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/payment/reference - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := &models.SubmitReferenceRequest{
		UserID:    userID,
		Reference: req.Reference,
	}

	if err := h.service.SubmitPaymentReference(r.Context(), id, serviceReq); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/payment/reference - Not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/payment/reference - Access denied: appointment_id=%d, user_id=%d", id, userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointmentsService.ErrWrongPaymentMethod):
			h.logger.Warn("PATCH /appointments/{id}/payment/reference - Wrong method: appointment_id=%d", id)
			handlers.RespondBadRequest(w, msgWrongPaymentMethod)

		case errors.Is(err, appointmentsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/payment/reference - Invalid transition: appointment_id=%d", id)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/payment/reference - Invalid reference: appointment_id=%d", id)
			handlers.RespondBadRequest(w, msgInvalidReference)

		default:
			h.logger.Error("PATCH /appointments/{id}/payment/reference - Failed: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/payment/reference - Submitted: appointment_id=%d, user_id=%d", id, userID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "awaiting_verification"})
}

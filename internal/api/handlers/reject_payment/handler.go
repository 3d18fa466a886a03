package reject_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	appointmentsService "github.com/BlackLex29/RLfursure-sub000/internal/service/appointments"
)

const (
	msgInvalidID           = "invalid appointment id"
	msgAppointmentNotFound = "appointment not found"
	msgWrongPaymentMethod  = "payment rejection applies to gcash appointments only"
	msgInvalidTransition   = "appointment is not awaiting payment verification"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/payment/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.RejectPayment(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/payment/reject - Not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrWrongPaymentMethod):
			h.logger.Warn("PATCH /appointments/{id}/payment/reject - Wrong method: appointment_id=%d", id)
			handlers.RespondBadRequest(w, msgWrongPaymentMethod)

		case errors.Is(err, appointmentsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/payment/reject - Invalid transition: appointment_id=%d", id)
			handlers.RespondConflict(w, msgInvalidTransition)

		default:
			h.logger.Error("PATCH /appointments/{id}/payment/reject - Failed: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/payment/reject - Rejected: appointment_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "awaiting_payment"})
}

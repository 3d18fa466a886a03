package confirm_payment

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	appointmentsService "github.com/BlackLex29/RLfursure-sub000/internal/service/appointments"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/appointments/models"
)

const (
	msgInvalidID           = "invalid appointment id"
	msgInvalidRequestBody  = "invalid request body"
	msgAppointmentNotFound = "appointment not found"
	msgWrongPaymentMethod  = "payment confirmation applies to gcash appointments only"
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

// Handle PATCH /api/v1/appointments/{appointmentId}/payment/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["appointmentId"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	// Тело опционально: номер перевода может быть внесён при подтверждении
	var req models.ConfirmPaymentRequest
	if decodeErr := handlers.DecodeJSON(r, &req); decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		h.logger.Warn("PATCH /appointments/{id}/payment/confirm - Invalid request body: %v", decodeErr)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.ConfirmPayment(r.Context(), id, &req); err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/payment/confirm - Not found: appointment_id=%d", id)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointmentsService.ErrWrongPaymentMethod):
			h.logger.Warn("PATCH /appointments/{id}/payment/confirm - Wrong method: appointment_id=%d", id)
			handlers.RespondBadRequest(w, msgWrongPaymentMethod)

		case errors.Is(err, appointmentsService.ErrInvalidTransition):
			h.logger.Warn("PATCH /appointments/{id}/payment/confirm - Invalid transition: appointment_id=%d", id)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/payment/confirm - Invalid input: appointment_id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /appointments/{id}/payment/confirm - Failed: appointment_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/payment/confirm - Confirmed: appointment_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "confirmed"})
}

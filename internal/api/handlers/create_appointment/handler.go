package create_appointment

import (
	"errors"
	"net/http"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	"github.com/BlackLex29/RLfursure-sub000/internal/api/middleware"
	reserveAppointment "github.com/BlackLex29/RLfursure-sub000/internal/usecase/reserve_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid visit date, expected YYYY-MM-DD"
	msgInvalidInput       = "invalid appointment data"
	msgPetNotFound        = "pet not found"
	msgPetNotOwned        = "pet belongs to another client"
	msgDateInPast         = "visit date is in the past"
	msgSlotTaken          = "time slot is already taken"
	msgSlotBlocked        = "time slot is blocked by veterinarian unavailability"
)

type Handler struct {
	useCase ReserveAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ReserveAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, reserveAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: client_id=%d, date=%s, slot=%s", clientID, req.VisitDate, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, reserveAppointment.ErrSlotBlockedByLeave):
			h.logger.Warn("POST /appointments - Slot blocked by leave: client_id=%d, date=%s, slot=%s", clientID, req.VisitDate, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotBlocked)

		case errors.Is(err, reserveAppointment.ErrPetNotFound):
			h.logger.Warn("POST /appointments - Pet not found: client_id=%d, pet_id=%d", clientID, req.PetID)
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, reserveAppointment.ErrPetNotOwned):
			h.logger.Warn("POST /appointments - Pet not owned: client_id=%d, pet_id=%d", clientID, req.PetID)
			handlers.RespondForbidden(w, msgPetNotOwned)

		case errors.Is(err, reserveAppointment.ErrDateInPast):
			h.logger.Warn("POST /appointments - Date in past: client_id=%d, date=%s", clientID, req.VisitDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, reserveAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: appointment_id=%d, client_id=%d", result.ID, clientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

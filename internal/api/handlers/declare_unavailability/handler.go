package declare_unavailability

import (
	"errors"
	"net/http"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	declareUC "github.com/BlackLex29/RLfursure-sub000/internal/usecase/declare_unavailability"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateRange   = "end date must not be before start date"
	msgInvalidTimeWindow  = "start time must be before end time"
)

type Handler struct {
	useCase DeclareUnavailabilityUseCase
	logger  Logger
}

func NewHandler(useCase DeclareUnavailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/unavailability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DeclareUnavailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /unavailability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /unavailability - Invalid request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	resp, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, declareUC.ErrInvalidDateRange):
			h.logger.Warn("POST /unavailability - Invalid date range: vet=%d", req.VeterinarianID)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, declareUC.ErrInvalidTimeWindow):
			h.logger.Warn("POST /unavailability - Invalid time window: vet=%d", req.VeterinarianID)
			handlers.RespondBadRequest(w, msgInvalidTimeWindow)

		case errors.Is(err, declareUC.ErrInvalidInput):
			h.logger.Warn("POST /unavailability - Invalid input: vet=%d, error=%v", req.VeterinarianID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /unavailability - Failed: vet=%d, error=%v", req.VeterinarianID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /unavailability - Created: record_id=%d, days=%d", resp.Record.ID, len(resp.Days))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}

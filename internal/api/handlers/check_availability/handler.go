package check_availability

import (
	"net/http"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	checkAvailability "github.com/BlackLex29/RLfursure-sub000/internal/usecase/check_availability"
)

const (
	msgMissingDate = "date query parameter is required, format YYYY-MM-DD"
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
	msgUnknownSlot = "unknown time slot"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&slot=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	rawDate := r.URL.Query().Get("date")
	if rawDate == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date %q: %v", rawDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	slotFilter := r.URL.Query().Get("slot")
	if slotFilter != "" && !domain.TimeSlot(slotFilter).IsValid() {
		h.logger.Warn("GET /availability - Unknown slot %q", slotFilter)
		handlers.RespondBadRequest(w, msgUnknownSlot)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{Date: date})
	if err != nil {
		h.logger.Error("GET /availability - Failed to resolve slots for date=%s: %v", rawDate, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, slotFilter))
}

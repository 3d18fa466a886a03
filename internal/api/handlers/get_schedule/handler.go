package get_schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/api/handlers"
	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	appointmentsService "github.com/BlackLex29/RLfursure-sub000/internal/service/appointments"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/appointments/models"
)

const (
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgInvalidFilter = "invalid schedule filter"
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

// Handle GET /api/v1/schedule?date=&from=&to=&status=&includeCancelled=
// Дневное расписание персонала: date задаёт один день, from/to - период
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.GetScheduleRequest{
		IncludeCancelled: query.Get("includeCancelled") == "true",
	}

	if rawDate := query.Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /schedule - Invalid date %q: %v", rawDate, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if rawFrom := query.Get("from"); rawFrom != "" {
			from, err := time.Parse(domain.DateFormat, rawFrom)
			if err != nil {
				handlers.RespondBadRequest(w, msgInvalidDate)
				return
			}
			req.StartDate = &from
		}
		if rawTo := query.Get("to"); rawTo != "" {
			to, err := time.Parse(domain.DateFormat, rawTo)
			if err != nil {
				handlers.RespondBadRequest(w, msgInvalidDate)
				return
			}
			req.EndDate = &to
		}
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetSchedule(r.Context(), req)
	if err != nil {
		if errors.Is(err, appointmentsService.ErrInvalidInput) {
			h.logger.Warn("GET /schedule - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /schedule - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

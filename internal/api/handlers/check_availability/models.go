package check_availability

import (
	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	checkAvailability "github.com/BlackLex29/RLfursure-sub000/internal/usecase/check_availability"
)

// SlotStateResponse HTTP модель состояния слота
type SlotStateResponse struct {
	TimeSlot       string  `json:"timeSlot"`
	Status         string  `json:"status"` // available | blocked_by_leave | taken
	Reason         *string `json:"reason,omitempty"`
	VeterinarianID *int64  `json:"veterinarianId,omitempty"`
}

// AvailabilityResponse HTTP модель расписания на день
type AvailabilityResponse struct {
	Date  string              `json:"date"`
	Slots []SlotStateResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Опциональный фильтр по слоту сужает выдачу до одного состояния
func FromUseCaseResponse(resp *checkAvailability.Response, slotFilter string) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: make([]SlotStateResponse, 0, len(resp.Slots)),
	}

	for _, state := range resp.Slots {
		if slotFilter != "" && string(state.TimeSlot) != slotFilter {
			continue
		}
		out.Slots = append(out.Slots, SlotStateResponse{
			TimeSlot:       string(state.TimeSlot),
			Status:         state.Status,
			Reason:         state.Reason,
			VeterinarianID: state.VeterinarianID,
		})
	}

	return out
}

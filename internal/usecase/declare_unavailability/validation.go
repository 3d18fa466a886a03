package declare_unavailability

import (
	"fmt"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.VeterinarianID <= 0 {
		return fmt.Errorf("%w: veterinarianID must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if req.EndDate.IsZero() {
		return fmt.Errorf("%w: endDate is required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return ErrInvalidDateRange
	}

	if len(req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	// Для частичной недоступности окно времени обязательно и должно быть корректным
	if !req.IsAllDay {
		if req.StartTime == nil || req.EndTime == nil {
			return fmt.Errorf("%w: startTime and endTime are required when isAllDay is false", ErrInvalidTimeWindow)
		}
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidTimeWindow, err)
		}
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidTimeWindow, err)
		}
		if !req.StartTime.IsBefore(*req.EndTime) {
			return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidTimeWindow)
		}
	}

	return nil
}

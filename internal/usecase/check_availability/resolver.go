package check_availability

import (
	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// resolveSlots вычисляет состояние каждого слота каталога на день
// Недоступность ветеринара имеет приоритет над занятостью записью:
// если слот перекрыт и тем и другим, он считается blocked_by_leave
func resolveSlots(
	days []*domain.UnavailabilityDay,
	appointments []*domain.Appointment,
) ([]SlotState, error) {
	// Индексируем активные записи по слоту
	taken := make(map[domain.TimeSlot]bool, len(appointments))
	for _, appt := range appointments {
		if appt.IsActive() {
			taken[appt.TimeSlot] = true
		}
	}

	catalog := domain.Slots()
	states := make([]SlotState, 0, len(catalog))

	for _, slot := range catalog {
		window, err := slot.Window()
		if err != nil {
			return nil, err
		}

		state := SlotState{
			TimeSlot: slot,
			Status:   SlotAvailable,
		}

		if day := blockingDay(days, window); day != nil {
			state.Status = SlotBlockedByLeave
			if day.Reason != "" {
				reason := day.Reason
				state.Reason = &reason
			}
			vet := day.VeterinarianID
			state.VeterinarianID = &vet
		} else if taken[slot] {
			state.Status = SlotTaken
		}

		states = append(states, state)
	}

	return states, nil
}

// blockingDay возвращает первый день недоступности, перекрывающий окно слота
func blockingDay(days []*domain.UnavailabilityDay, window domain.SlotWindow) *domain.UnavailabilityDay {
	for _, day := range days {
		if day.Blocks(window) {
			return day
		}
	}
	return nil
}

package reserve_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reserve_appointment: invalid input data")

	// ErrPetNotFound возвращается, когда питомец не найден в реестре
	ErrPetNotFound = errors.New("reserve_appointment: pet not found")

	// ErrPetNotOwned возвращается, когда питомец принадлежит другому клиенту
	ErrPetNotOwned = errors.New("reserve_appointment: pet belongs to another client")

	// ErrDateInPast возвращается при попытке бронирования на прошедшую дату
	ErrDateInPast = errors.New("reserve_appointment: visit date is in the past")

	// ErrSlotTaken возвращается, когда слот уже занят активной записью
	ErrSlotTaken = errors.New("reserve_appointment: slot is already taken")

	// ErrSlotBlockedByLeave возвращается, когда слот перекрыт недоступностью ветеринара
	ErrSlotBlockedByLeave = errors.New("reserve_appointment: slot is blocked by veterinarian unavailability")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reserve_appointment: internal error")
)

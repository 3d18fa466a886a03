package check_availability

import (
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// Статусы слота в расписании на день
const (
	SlotAvailable      = "available"       // Слот свободен
	SlotBlockedByLeave = "blocked_by_leave" // Слот перекрыт недоступностью ветеринара
	SlotTaken          = "taken"           // Слот занят активной записью
)

// Request модель запроса проверки доступности
type Request struct {
	Date time.Time // Дата, на которую запрашивается расписание
}

// SlotState состояние одного слота
type SlotState struct {
	TimeSlot       domain.TimeSlot // Метка слота (например, "8:00 AM - 8:30 AM")
	Status         string          // available | blocked_by_leave | taken
	Reason         *string         // Причина недоступности (только для blocked_by_leave)
	VeterinarianID *int64          // Ветеринар, объявивший недоступность
}

// Response модель ответа с расписанием на день
type Response struct {
	Date  time.Time   // Запрошенная дата
	Slots []SlotState // Состояние каждого слота каталога по порядку
}

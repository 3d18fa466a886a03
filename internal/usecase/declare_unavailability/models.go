package declare_unavailability

import (
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/pkg/types"
)

// Request модель запроса на объявление недоступности
type Request struct {
	VeterinarianID int64     // Ветеринар, объявляющий недоступность
	StartDate      time.Time // Первый день интервала
	EndDate        time.Time // Последний день интервала, включительно
	IsAllDay       bool      // Блокировать весь рабочий день
	// Окно времени для каждого дня интервала, когда IsAllDay=false
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    string
}

// Response модель ответа с созданной записью и развёрнутыми днями
type Response struct {
	Record *domain.UnavailabilityRecord
	Days   []domain.UnavailabilityDay
}

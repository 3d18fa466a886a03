package declare_unavailability

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// nsLeaveDay пространство имён для детерминированных ID дней недоступности
var nsLeaveDay = uuid.MustParse("8f3c1a9e-5b7d-4e26-9c41-d0a4f6e2b813")

// expandRecord разворачивает запись о недоступности в набор дней, по одному
// на каждый календарный день интервала [StartDate, EndDate] включительно.
// Развёртка чистая и детерминированная: ID дня выводится из пары
// (ID записи, порядковый номер), поэтому повторная развёртка той же записи
// порождает те же дни
func expandRecord(record *domain.UnavailabilityRecord) []domain.UnavailabilityDay {
	count := record.DayCount()
	if count <= 0 {
		return nil
	}

	start := time.Date(
		record.StartDate.Year(), record.StartDate.Month(), record.StartDate.Day(),
		0, 0, 0, 0, record.StartDate.Location(),
	)

	days := make([]domain.UnavailabilityDay, 0, count)
	for ordinal := 0; ordinal < count; ordinal++ {
		days = append(days, domain.UnavailabilityDay{
			ID:             dayID(record.ID, ordinal),
			RecordID:       record.ID,
			Ordinal:        ordinal,
			VeterinarianID: record.VeterinarianID,
			Date:           start.AddDate(0, 0, ordinal),
			IsAllDay:       record.IsAllDay,
			StartTime:      record.StartTime,
			EndTime:        record.EndTime,
			Reason:         record.Reason,
		})
	}

	return days
}

// dayID вычисляет детерминированный ID дня от записи и порядкового номера
func dayID(recordID int64, ordinal int) string {
	return uuid.NewSHA1(nsLeaveDay, []byte(fmt.Sprintf("%d:%d", recordID, ordinal))).String()
}

package domain

import (
	"time"

	"github.com/BlackLex29/RLfursure-sub000/pkg/types"
)

// UnavailabilityRecord is a staff-declared leave or blackout,
// possibly spanning several days
type UnavailabilityRecord struct {
	ID             int64
	VeterinarianID int64
	StartDate      time.Time
	EndDate        time.Time
	IsAllDay       bool
	// Окно времени действует для каждого дня интервала, когда IsAllDay=false
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DayCount returns the number of calendar days the record covers, inclusive.
// Counts via AddDate so DST transitions do not shift the result
func (r *UnavailabilityRecord) DayCount() int {
	start := truncateToDay(r.StartDate)
	end := truncateToDay(r.EndDate)

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		count++
	}
	return count
}

// UnavailabilityDay is one derived per-day blocking entry.
// Immutable once expanded; regenerated only when the source record changes
type UnavailabilityDay struct {
	ID             string // детерминированный uuid от (record id, ordinal)
	RecordID       int64
	Ordinal        int // позиция дня в интервале записи, с нуля
	VeterinarianID int64
	Date           time.Time
	IsAllDay       bool
	StartTime      *types.TimeString
	EndTime        *types.TimeString
	Reason         string
}

// Blocks reports whether this leave day blocks the given slot window
func (d *UnavailabilityDay) Blocks(w SlotWindow) bool {
	if d.IsAllDay {
		return true
	}
	if d.StartTime == nil || d.EndTime == nil {
		// Запись без окна трактуется как блокировка всего дня
		return true
	}
	return w.Intersects(*d.StartTime, *d.EndTime)
}

// truncateToDay обнуляет время, оставляя только дату
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package declare_unavailability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandRecord_MultiDay(t *testing.T) {
	record := &domain.UnavailabilityRecord{
		ID:             42,
		VeterinarianID: 7,
		StartDate:      date(2026, 9, 15),
		EndDate:        date(2026, 9, 19),
		IsAllDay:       true,
		Reason:         "conference",
	}

	days := expandRecord(record)
	require.Len(t, days, 5)

	for i, day := range days {
		assert.Equal(t, int64(42), day.RecordID)
		assert.Equal(t, i, day.Ordinal)
		assert.Equal(t, int64(7), day.VeterinarianID)
		assert.Equal(t, date(2026, 9, 15+i), day.Date)
		assert.True(t, day.IsAllDay)
		assert.Equal(t, "conference", day.Reason)
		assert.NotEmpty(t, day.ID)
	}

	// Все ID уникальны
	seen := make(map[string]bool)
	for _, day := range days {
		assert.False(t, seen[day.ID], "duplicate day id %s", day.ID)
		seen[day.ID] = true
	}
}

func TestExpandRecord_Deterministic(t *testing.T) {
	record := &domain.UnavailabilityRecord{
		ID:             42,
		VeterinarianID: 7,
		StartDate:      date(2026, 9, 15),
		EndDate:        date(2026, 9, 17),
		IsAllDay:       true,
	}

	first := expandRecord(record)
	second := expandRecord(record)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, "ordinal %d", i)
	}

	// Дни другой записи получают другие ID
	other := *record
	other.ID = 43
	otherDays := expandRecord(&other)
	assert.NotEqual(t, first[0].ID, otherDays[0].ID)
}

func TestExpandRecord_SingleDayWithWindow(t *testing.T) {
	start := types.TimeString("1:00 PM")
	end := types.TimeString("3:00 PM")

	record := &domain.UnavailabilityRecord{
		ID:             10,
		VeterinarianID: 3,
		StartDate:      date(2026, 10, 1),
		EndDate:        date(2026, 10, 1),
		IsAllDay:       false,
		StartTime:      &start,
		EndTime:        &end,
	}

	days := expandRecord(record)
	require.Len(t, days, 1)
	assert.False(t, days[0].IsAllDay)
	require.NotNil(t, days[0].StartTime)
	require.NotNil(t, days[0].EndTime)
	assert.Equal(t, start, *days[0].StartTime)
	assert.Equal(t, end, *days[0].EndTime)
}

func TestValidateRequest(t *testing.T) {
	base := func() *Request {
		return &Request{
			VeterinarianID: 1,
			StartDate:      date(2026, 9, 15),
			EndDate:        date(2026, 9, 16),
			IsAllDay:       true,
		}
	}

	assert.NoError(t, validateRequest(base()))

	req := base()
	req.EndDate = date(2026, 9, 14)
	assert.ErrorIs(t, validateRequest(req), ErrInvalidDateRange)

	req = base()
	req.VeterinarianID = 0
	assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)

	req = base()
	req.IsAllDay = false
	assert.ErrorIs(t, validateRequest(req), ErrInvalidTimeWindow)

	req = base()
	req.IsAllDay = false
	start := types.TimeString("3:00 PM")
	end := types.TimeString("1:00 PM")
	req.StartTime = &start
	req.EndTime = &end
	assert.ErrorIs(t, validateRequest(req), ErrInvalidTimeWindow)
}

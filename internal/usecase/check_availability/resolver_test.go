package check_availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/pkg/types"
)

func TestResolveSlots_AllAvailable(t *testing.T) {
	states, err := resolveSlots(nil, nil)
	require.NoError(t, err)
	require.Len(t, states, len(domain.Slots()))

	for _, state := range states {
		assert.Equal(t, SlotAvailable, state.Status, state.TimeSlot)
	}
}

func TestResolveSlots_AllDayLeaveBlocksEverything(t *testing.T) {
	days := []*domain.UnavailabilityDay{
		{RecordID: 1, VeterinarianID: 7, IsAllDay: true, Reason: "sick leave"},
	}

	states, err := resolveSlots(days, nil)
	require.NoError(t, err)

	for _, state := range states {
		assert.Equal(t, SlotBlockedByLeave, state.Status, state.TimeSlot)
		require.NotNil(t, state.Reason)
		assert.Equal(t, "sick leave", *state.Reason)
		require.NotNil(t, state.VeterinarianID)
		assert.Equal(t, int64(7), *state.VeterinarianID)
	}
}

func TestResolveSlots_PartialWindow(t *testing.T) {
	start := types.TimeString("1:00 PM")
	end := types.TimeString("3:00 PM")
	days := []*domain.UnavailabilityDay{
		{RecordID: 1, VeterinarianID: 7, IsAllDay: false, StartTime: &start, EndTime: &end},
	}

	states, err := resolveSlots(days, nil)
	require.NoError(t, err)

	blocked := map[domain.TimeSlot]bool{}
	for _, state := range states {
		if state.Status == SlotBlockedByLeave {
			blocked[state.TimeSlot] = true
		}
	}

	// Перекрыты ровно четыре дневных слота 1:00-3:00
	assert.Len(t, blocked, 4)
	assert.True(t, blocked["1:00 PM - 1:30 PM"])
	assert.True(t, blocked["2:30 PM - 3:00 PM"])
	assert.False(t, blocked["8:00 AM - 8:30 AM"])
	assert.False(t, blocked["3:00 PM - 3:30 PM"])
}

func TestResolveSlots_TakenByActiveAppointment(t *testing.T) {
	appointments := []*domain.Appointment{
		{ID: 1, TimeSlot: "8:00 AM - 8:30 AM", Status: domain.StatusConfirmed},
		{ID: 2, TimeSlot: "9:00 AM - 9:30 AM", Status: domain.StatusCancelled}, // слот освобождён
	}

	states, err := resolveSlots(nil, appointments)
	require.NoError(t, err)

	bys := map[domain.TimeSlot]string{}
	for _, state := range states {
		bys[state.TimeSlot] = state.Status
	}

	assert.Equal(t, SlotTaken, bys["8:00 AM - 8:30 AM"])
	assert.Equal(t, SlotAvailable, bys["9:00 AM - 9:30 AM"])
}

func TestResolveSlots_LeaveWinsOverBooking(t *testing.T) {
	days := []*domain.UnavailabilityDay{
		{RecordID: 1, VeterinarianID: 7, IsAllDay: true},
	}
	appointments := []*domain.Appointment{
		{ID: 1, TimeSlot: "8:00 AM - 8:30 AM", Status: domain.StatusConfirmed},
	}

	states, err := resolveSlots(days, appointments)
	require.NoError(t, err)

	for _, state := range states {
		if state.TimeSlot == "8:00 AM - 8:30 AM" {
			assert.Equal(t, SlotBlockedByLeave, state.Status)
		}
	}
}

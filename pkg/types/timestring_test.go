package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("8:00 AM")
	require.NoError(t, err)
	assert.Equal(t, "8:00 AM", ts.String())

	// Нормализация ведущего нуля
	ts, err = NewTimeStringFromString("08:00 AM")
	require.NoError(t, err)
	assert.Equal(t, "8:00 AM", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)

	_, err = NewTimeStringFromString("")
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestTimeString_MinutesOfDay(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
	}{
		{"12:00 AM", 0},
		{"8:00 AM", 480},
		{"12:00 PM", 720},
		{"1:30 PM", 810},
		{"11:59 PM", 1439},
	}

	for _, tc := range cases {
		got, err := TimeString(tc.in).MinutesOfDay()
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.minutes, got, tc.in)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("8:00 AM")

	next, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("8:30 AM"), next)

	// Переход через полдень
	noon := TimeString("11:30 AM")
	next, err = noon.AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:30 PM"), next)

	// Выход за пределы суток
	late := TimeString("11:59 PM")
	_, err = late.AddMinutes(30)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)
}

func TestTimeString_Comparison(t *testing.T) {
	morning := TimeString("8:00 AM")
	afternoon := TimeString("1:00 PM")

	assert.True(t, morning.IsBefore(afternoon))
	assert.False(t, afternoon.IsBefore(morning))
	assert.True(t, afternoon.IsAfter(morning))
	assert.False(t, morning.IsBefore(morning))
	assert.False(t, morning.IsAfter(morning))
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("5:00 PM").Validate())
	assert.Error(t, TimeString("17:00").Validate())
	assert.Error(t, TimeString("whenever").Validate())
}

package types

import (
	"errors"
	"fmt"
	"time"
)

// ClockFormat формат времени в 12-часовом представлении (например, "8:00 AM")
// Используется во всём сервисе: слоты расписания и окна недоступности
// хранятся и передаются в этом формате
const ClockFormat = "3:04 PM"

var (
	// ErrInvalidTimeFormat возвращается при некорректном формате времени
	ErrInvalidTimeFormat = errors.New("types: invalid time string format, expected h:MM AM/PM")

	// ErrTimeOutOfRange возвращается, когда результат арифметики выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time out of day range")
)

// TimeString строковое представление времени суток в формате "3:04 PM"
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(ClockFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(ClockFormat, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	// Нормализуем представление ("08:00 AM" -> "8:00 AM")
	return TimeString(t.Format(ClockFormat)), nil
}

// String возвращает строковое представление
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero возвращает true, если значение не задано
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate проверяет корректность формата
func (ts TimeString) Validate() error {
	_, err := time.Parse(ClockFormat, string(ts))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, ts)
	}
	return nil
}

// MinutesOfDay возвращает количество минут с начала суток
func (ts TimeString) MinutesOfDay() (int, error) {
	t, err := time.Parse(ClockFormat, string(ts))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, ts)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// AddMinutes возвращает новое время, сдвинутое на minutes минут вперёд
// Переход через полночь считается ошибкой - рабочий день клиники не пересекает сутки
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := ts.MinutesOfDay()
	if err != nil {
		return "", err
	}

	total += minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %q + %d min", ErrTimeOutOfRange, ts, minutes)
	}

	t := time.Date(0, 1, 1, total/60, total%60, 0, 0, time.UTC)
	return TimeString(t.Format(ClockFormat)), nil
}

// IsBefore возвращает true, если ts строго раньше other
// Некорректные значения считаются равными (сравнение не паникует)
func (ts TimeString) IsBefore(other TimeString) bool {
	a, errA := ts.MinutesOfDay()
	b, errB := other.MinutesOfDay()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter возвращает true, если ts строго позже other
func (ts TimeString) IsAfter(other TimeString) bool {
	a, errA := ts.MinutesOfDay()
	b, errB := other.MinutesOfDay()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

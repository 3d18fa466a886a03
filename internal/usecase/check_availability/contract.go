package check_availability

import (
	"context"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	GetWithFilter(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Appointment, error)
}

// UnavailabilityRepository интерфейс репозитория недоступности
type UnavailabilityRepository interface {
	GetDaysByDate(ctx context.Context, date time.Time) ([]*domain.UnavailabilityDay, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

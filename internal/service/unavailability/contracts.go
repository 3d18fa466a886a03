package unavailability

import (
	"context"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// UnavailabilityRepository интерфейс репозитория недоступности
type UnavailabilityRepository interface {
	GetDaysInRange(ctx context.Context, from, to time.Time) ([]*domain.UnavailabilityDay, error)
	GetRecordByID(ctx context.Context, id int64) (*domain.UnavailabilityRecord, error)
	DeleteRecord(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

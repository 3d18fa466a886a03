package declare_unavailability

import (
	"context"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// UnavailabilityRepository интерфейс репозитория недоступности
type UnavailabilityRepository interface {
	CreateRecord(ctx context.Context, record *domain.UnavailabilityRecord) (*domain.UnavailabilityRecord, error)
	ReplaceDays(ctx context.Context, recordID int64, days []domain.UnavailabilityDay) error
}

// EventPublisher интерфейс издателя уведомлений персонала
type EventPublisher interface {
	PublishStaffNotification(ctx context.Context, eventType, format string, v ...interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

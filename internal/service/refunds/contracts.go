package refunds

import (
	"context"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// RefundRepository интерфейс репозитория возвратов
type RefundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.RefundRequest, error)
	List(ctx context.Context, status *domain.RefundStatus) ([]*domain.RefundRequest, error)
	UpdateStatus(ctx context.Context, id int64, from, to domain.RefundStatus, processedAt *time.Time) error
}

// EventPublisher интерфейс издателя уведомлений персонала
type EventPublisher interface {
	PublishStaffNotification(ctx context.Context, eventType, format string, v ...interface{})
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

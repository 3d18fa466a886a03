package reserve_appointment

import (
	"context"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/internal/infra/events"
	"github.com/BlackLex29/RLfursure-sub000/internal/integrations/petregistry"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetActiveBySlot(ctx context.Context, date time.Time, slot domain.TimeSlot) ([]*domain.Appointment, error)
}

// UnavailabilityRepository интерфейс репозитория недоступности
type UnavailabilityRepository interface {
	GetDaysByDate(ctx context.Context, date time.Time) ([]*domain.UnavailabilityDay, error)
}

// PetRegistryClient интерфейс клиента реестра питомцев
type PetRegistryClient interface {
	GetPetWithGracefulDegradation(ctx context.Context, petID int64) (*petregistry.Pet, error)
}

// EventPublisher интерфейс издателя событий
type EventPublisher interface {
	PublishAppointmentEvent(ctx context.Context, event events.AppointmentEvent)
	PublishStaffNotification(ctx context.Context, eventType, format string, v ...interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

package appointments

import (
	"context"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/internal/infra/events"
	"github.com/BlackLex29/RLfursure-sub000/internal/integrations/medicalrecords"
)

// AppointmentRepository интерфейс репозитория записей на приём
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, paymentStatus domain.PaymentStatus) error
	SetPaymentReference(ctx context.Context, id int64, reference string) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// RefundRepository интерфейс репозитория возвратов
type RefundRepository interface {
	Create(ctx context.Context, req *domain.RefundRequest) (*domain.RefundRequest, error)
	GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.RefundRequest, error)
}

// MedicalRecordsClient интерфейс клиента сервиса медицинских карт
type MedicalRecordsClient interface {
	CreateRecord(ctx context.Context, record medicalrecords.CreateRecordRequest) error
}

// EventPublisher интерфейс издателя событий
type EventPublisher interface {
	PublishAppointmentEvent(ctx context.Context, event events.AppointmentEvent)
	PublishStaffNotification(ctx context.Context, eventType, format string, v ...interface{})
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

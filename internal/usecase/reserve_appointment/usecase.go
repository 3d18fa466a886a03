package reserve_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/internal/infra/events"
	appointmentRepo "github.com/BlackLex29/RLfursure-sub000/internal/infra/storage/appointment"
	petClient "github.com/BlackLex29/RLfursure-sub000/internal/integrations/petregistry"
)

// UseCase use case бронирования приёма
type UseCase struct {
	appointmentRepo    AppointmentRepository
	unavailabilityRepo UnavailabilityRepository
	petClient          PetRegistryClient
	publisher          EventPublisher
	txManager          TransactionManager
	timeProvider       TimeProvider
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	unavailabilityRepo UnavailabilityRepository,
	petClient PetRegistryClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		unavailabilityRepo: unavailabilityRepo,
		petClient:          petClient,
		publisher:          publisher,
		txManager:          txManager,
		timeProvider:       &RealTimeProvider{},
		logger:             logger,
	}
}

// Execute выполняет бронирование приёма
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// повторная проверка недоступности и занятости слота выполняется внутри
// транзакции, частичный уникальный индекс страхует от двойной записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveAppointment: client=%d, pet=%d, date=%s, slot=%s, service=%s, method=%s",
		req.ClientID, req.PetID, req.VisitDate.Format(domain.DateFormat), req.TimeSlot, req.Service, req.PaymentMethod)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.VisitDate, now); err != nil {
		uc.logger.Warn("ReserveAppointment: date validation failed: %v", err)
		return nil, err
	}

	// 3. Снапшот питомца из реестра
	// При недоступности реестра запись создаётся без вида и породы
	var petName string
	var petSpecies, petBreed *string

	pet, err := uc.petClient.GetPetWithGracefulDegradation(ctx, req.PetID)
	switch {
	case err == nil:
		if pet.OwnerID != req.ClientID {
			uc.logger.Warn("ReserveAppointment: pet id=%d belongs to client=%d, not client=%d",
				req.PetID, pet.OwnerID, req.ClientID)
			return nil, ErrPetNotOwned
		}
		petName = pet.Name
		petSpecies = pet.Species
		petBreed = pet.Breed
	case errors.Is(err, petClient.ErrPetNotFound):
		uc.logger.Warn("ReserveAppointment: pet id=%d not found", req.PetID)
		return nil, ErrPetNotFound
	case errors.Is(err, petClient.ErrServiceDegraded):
		uc.logger.Warn("ReserveAppointment: pet registry degraded, booking without pet snapshot: %v", err)
	default:
		uc.logger.Error("ReserveAppointment: failed to get pet id=%d: %v", req.PetID, err)
		return nil, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}

	// 4. Цена фиксируется из каталога услуг на момент бронирования
	price, ok := req.Service.Price()
	if !ok {
		return nil, fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, req.Service)
	}

	status, paymentStatus := initialStates(req.PaymentMethod)

	var result *domain.Appointment

	// 5. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Недоступность ветеринара имеет приоритет над бронированием
		days, err := uc.unavailabilityRepo.GetDaysByDate(txCtx, req.VisitDate)
		if err != nil {
			uc.logger.Error("ReserveAppointment: failed to get unavailability days: %v", err)
			return fmt.Errorf("%w: failed to get unavailability days: %v", ErrInternal, err)
		}

		window, err := req.TimeSlot.Window()
		if err != nil {
			return fmt.Errorf("%w: failed to parse slot window: %v", ErrInternal, err)
		}

		for _, day := range days {
			if day.Blocks(window) {
				uc.logger.Warn("ReserveAppointment: slot %s on %s blocked by unavailability record=%d",
					req.TimeSlot, req.VisitDate.Format(domain.DateFormat), day.RecordID)
				return ErrSlotBlockedByLeave
			}
		}

		// 5.2. Повторная проверка занятости с блокировкой (FOR UPDATE)
		existing, err := uc.appointmentRepo.GetActiveBySlot(txCtx, req.VisitDate, req.TimeSlot)
		if err != nil {
			uc.logger.Error("ReserveAppointment: failed to get active appointments: %v", err)
			return fmt.Errorf("%w: failed to get active appointments: %v", ErrInternal, err)
		}

		if len(existing) > 0 {
			uc.logger.Warn("ReserveAppointment: slot %s on %s already taken by appointment=%d",
				req.TimeSlot, req.VisitDate.Format(domain.DateFormat), existing[0].ID)
			return ErrSlotTaken
		}

		// 5.3. Создаем запись с денормализацией данных питомца и цены
		appt := &domain.Appointment{
			PetID:            req.PetID,
			ClientID:         req.ClientID,
			VisitDate:        req.VisitDate,
			TimeSlot:         req.TimeSlot,
			Service:          req.Service,
			PaymentMethod:    req.PaymentMethod,
			Status:           status,
			PaymentStatus:    paymentStatus,
			PaymentReference: req.PaymentReference,
			PetName:          petName,
			PetSpecies:       petSpecies,
			PetBreed:         petBreed,
			ServicePrice:     price,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			// Страховка на уровне индекса: гонку, прошедшую мимо проверки выше,
			// ловит частичный уникальный индекс
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				uc.logger.Warn("ReserveAppointment: unique index rejected slot %s on %s",
					req.TimeSlot, req.VisitDate.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			uc.logger.Error("ReserveAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReserveAppointment: successfully created appointment id=%d", result.ID)

	// 6. Публикация событий best-effort, после коммита
	uc.publisher.PublishAppointmentEvent(ctx, events.AppointmentEvent{
		Type:          events.EventAppointmentCreated,
		AppointmentID: result.ID,
		ClientID:      result.ClientID,
		Status:        string(result.Status),
		PaymentStatus: string(result.EffectivePaymentStatus()),
		VisitDate:     result.VisitDate.Format(domain.DateFormat),
		TimeSlot:      string(result.TimeSlot),
	})
	uc.publisher.PublishStaffNotification(ctx, events.EventAppointmentCreated,
		"New %s appointment for %s on %s (%s)", result.Service, result.PetName,
		result.VisitDate.Format(domain.DateFormat), result.TimeSlot)

	return &Response{
		ID:            result.ID,
		PetID:         result.PetID,
		ClientID:      result.ClientID,
		VisitDate:     result.VisitDate,
		TimeSlot:      result.TimeSlot,
		Service:       result.Service,
		PaymentMethod: result.PaymentMethod,
		Status:        string(result.Status),
		PaymentStatus: string(result.EffectivePaymentStatus()),
		PetName:       result.PetName,
		PetSpecies:    result.PetSpecies,
		PetBreed:      result.PetBreed,
		ServicePrice:  result.ServicePrice,
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

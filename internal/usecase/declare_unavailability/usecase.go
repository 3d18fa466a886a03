package declare_unavailability

import (
	"context"
	"fmt"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// UseCase use case объявления недоступности ветеринара
type UseCase struct {
	unavailabilityRepo UnavailabilityRepository
	publisher          EventPublisher
	txManager          TransactionManager
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	unavailabilityRepo UnavailabilityRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		unavailabilityRepo: unavailabilityRepo,
		publisher:          publisher,
		txManager:          txManager,
		logger:             logger,
	}
}

// Execute создает запись о недоступности и разворачивает её в дни
// Запись и её дни сохраняются в одной транзакции: частично развёрнутая
// недоступность не должна быть видна резолверу доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DeclareUnavailability: vet=%d, start=%s, end=%s, allDay=%t",
		req.VeterinarianID, req.StartDate.Format(domain.DateFormat),
		req.EndDate.Format(domain.DateFormat), req.IsAllDay)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DeclareUnavailability: validation failed: %v", err)
		return nil, err
	}

	record := &domain.UnavailabilityRecord{
		VeterinarianID: req.VeterinarianID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsAllDay:       req.IsAllDay,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Reason:         req.Reason,
	}

	var days []domain.UnavailabilityDay

	// 2. Создаем запись и дни атомарно
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := uc.unavailabilityRepo.CreateRecord(txCtx, record)
		if err != nil {
			uc.logger.Error("DeclareUnavailability: failed to create record: %v", err)
			return fmt.Errorf("%w: failed to create record: %v", ErrInternal, err)
		}

		// 2.1. Развёртка в дни после вставки: ID дней зависят от ID записи
		days = expandRecord(created)

		if err := uc.unavailabilityRepo.ReplaceDays(txCtx, created.ID, days); err != nil {
			uc.logger.Error("DeclareUnavailability: failed to persist days: %v", err)
			return fmt.Errorf("%w: failed to persist days: %v", ErrInternal, err)
		}

		record = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("DeclareUnavailability: created record id=%d with %d days", record.ID, len(days))

	// 3. Уведомление персонала best-effort, после коммита
	uc.publisher.PublishStaffNotification(ctx, "unavailability.declared",
		"Veterinarian %d unavailable %s - %s (%d days)", record.VeterinarianID,
		record.StartDate.Format(domain.DateFormat), record.EndDate.Format(domain.DateFormat), len(days))

	return &Response{
		Record: record,
		Days:   days,
	}, nil
}

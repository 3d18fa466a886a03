package unavailability

import (
	"context"
	"errors"
	"fmt"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	unavailabilityRepo "github.com/BlackLex29/RLfursure-sub000/internal/infra/storage/unavailability"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/unavailability/models"
)

// Service сервис чтения и удаления записей о недоступности
// Создание идёт через usecase объявления недоступности
type Service struct {
	unavailabilityRepo UnavailabilityRepository
	logger             Logger
}

// NewService создает новый экземпляр сервиса недоступности
func NewService(unavailabilityRepo UnavailabilityRepository, logger Logger) *Service {
	return &Service{
		unavailabilityRepo: unavailabilityRepo,
		logger:             logger,
	}
}

// ListDays получает дни недоступности за период [from, to] включительно
// Используется публичным календарём для затенения недоступных дней
func (s *Service) ListDays(ctx context.Context, req *models.ListDaysRequest) (*models.UnavailabilityDayListResponse, error) {
	s.logger.Info("ListDays: from=%s, to=%s", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidInput)
	}

	days, err := s.unavailabilityRepo.GetDaysInRange(ctx, req.From, req.To)
	if err != nil {
		s.logger.Error("ListDays: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListDays - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListDays: successfully fetched %d days", len(days))
	return models.FromDomainDayList(days), nil
}

// DeleteRecord удаляет запись о недоступности вместе с производными днями
// Доступно только персоналу
func (s *Service) DeleteRecord(ctx context.Context, id int64) error {
	s.logger.Info("DeleteRecord: record id=%d", id)

	if err := s.unavailabilityRepo.DeleteRecord(ctx, id); err != nil {
		if errors.Is(err, unavailabilityRepo.ErrRecordNotFound) {
			s.logger.Warn("DeleteRecord: record id=%d not found", id)
			return ErrRecordNotFound
		}
		s.logger.Error("DeleteRecord: repository error for record id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteRecord - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteRecord: successfully deleted record id=%d", id)
	return nil
}

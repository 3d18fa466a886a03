package refunds

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	refundRepo "github.com/BlackLex29/RLfursure-sub000/internal/infra/storage/refund"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/refunds/models"
)

// Service сервис обработки заявок на возврат
type Service struct {
	refundRepo RefundRepository
	publisher  EventPublisher
	logger     Logger
}

// NewService создает новый экземпляр сервиса возвратов
func NewService(
	refundRepo RefundRepository,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		refundRepo: refundRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

// GetByID получает заявку на возврат по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.RefundResponse, error) {
	s.logger.Info("GetByID: fetching refund id=%d", id)

	refund, err := s.refundRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, refundRepo.ErrRefundNotFound) {
			s.logger.Warn("GetByID: refund id=%d not found", id)
			return nil, ErrRefundNotFound
		}
		s.logger.Error("GetByID: repository error for refund id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRefund(refund), nil
}

// List получает заявки на возврат, опционально фильтруя по статусу
// Доступно только персоналу
func (s *Service) List(ctx context.Context, req *models.ListRefundsRequest) (*models.RefundListResponse, error) {
	s.logger.Info("List: fetching refunds, status=%v", req.Status)

	var domainStatus *domain.RefundStatus
	if req.Status != nil {
		status, err := models.ToDomainRefundStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	refunds, err := s.refundRepo.List(ctx, domainStatus)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d refunds", len(refunds))
	return models.FromDomainRefundList(refunds), nil
}

// Advance продвигает заявку на один шаг по лестнице статусов
// Переходы строго однонаправленные: pending -> processing -> completed.
// CAS-условие в репозитории защищает от одновременного продвижения
func (s *Service) Advance(ctx context.Context, id int64, req *models.AdvanceRefundRequest) (*models.RefundResponse, error) {
	s.logger.Info("Advance: refund id=%d to target=%s", id, req.Target)

	target, err := models.ToDomainRefundStatus(req.Target)
	if err != nil {
		s.logger.Warn("Advance: invalid target status=%s for refund id=%d", req.Target, id)
		return nil, fmt.Errorf("%w: invalid target status", ErrInvalidInput)
	}

	refund, err := s.refundRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, refundRepo.ErrRefundNotFound) {
			s.logger.Warn("Advance: refund id=%d not found", id)
			return nil, ErrRefundNotFound
		}
		s.logger.Error("Advance: repository error for refund id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Advance - repository error: %v", ErrInternal, err)
	}

	if !refund.Status.CanTransitionTo(target) {
		s.logger.Warn("Advance: refund id=%d cannot move %s -> %s", id, refund.Status, target)
		return nil, ErrInvalidTransition
	}

	var processedAt *time.Time
	if target == domain.RefundCompleted {
		now := time.Now().UTC()
		processedAt = &now
	}

	if err := s.refundRepo.UpdateStatus(ctx, id, refund.Status, target, processedAt); err != nil {
		switch {
		case errors.Is(err, refundRepo.ErrRefundNotFound):
			return nil, ErrRefundNotFound
		case errors.Is(err, refundRepo.ErrStatusConflict):
			s.logger.Warn("Advance: refund id=%d advanced concurrently", id)
			return nil, ErrStatusConflict
		default:
			s.logger.Error("Advance: repository error for refund id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Advance - repository error: %v", ErrInternal, err)
		}
	}

	refund.Status = target
	refund.ProcessedAt = processedAt

	if target == domain.RefundCompleted {
		s.publisher.PublishStaffNotification(ctx, "refund.advanced",
			"Refund %d for appointment %d completed, %.2f paid out", refund.ID, refund.AppointmentID, refund.Amount)
	}

	s.logger.Info("Advance: refund id=%d moved to status=%s", id, target)
	return models.FromDomainRefund(refund), nil
}

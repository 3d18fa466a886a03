package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/internal/infra/events"
	appointmentRepo "github.com/BlackLex29/RLfursure-sub000/internal/infra/storage/appointment"
	refundRepo "github.com/BlackLex29/RLfursure-sub000/internal/infra/storage/refund"
	"github.com/BlackLex29/RLfursure-sub000/internal/integrations/medicalrecords"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей на приём
// Все переходы статусов проходят через него; терминальные статусы необратимы
type Service struct {
	appointmentRepo AppointmentRepository
	refundRepo      RefundRepository
	medClient       MedicalRecordsClient
	publisher       EventPublisher
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	refundRepo RefundRepository,
	medClient MedicalRecordsClient,
	publisher EventPublisher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		refundRepo:      refundRepo,
		medClient:       medClient,
		publisher:       publisher,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Клиент видит только свои записи, персонал - любые
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isStaff bool) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for user=%d", id, userID)

	appt, err := s.getAppointment(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if !isStaff && appt.ClientID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainAppointment(appt)

	// У отменённой записи показываем состояние возврата, если он был оформлен
	if appt.Status == domain.StatusCancelled {
		refund, err := s.refundRepo.GetByAppointmentID(ctx, appt.ID)
		switch {
		case err == nil:
			resp.Refund = models.FromDomainRefundSummary(refund)
		case errors.Is(err, refundRepo.ErrRefundNotFound):
			// Отмена без возврата
		default:
			s.logger.Warn("GetByID: refund lookup failed for appointment id=%d: %v", id, err)
		}
	}

	return resp, nil
}

// GetClientAppointments получает историю записей клиента
// Опционально фильтрует по статусу
func (s *Service) GetClientAppointments(ctx context.Context, req *models.GetClientAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetClientAppointments: fetching appointments for client=%d, status=%v", req.ClientID, req.Status)

	var domainStatus *domain.AppointmentStatus
	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetClientAppointments: invalid status=%s for client=%d", *req.Status, req.ClientID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	appointments, err := s.appointmentRepo.GetByClientID(ctx, req.ClientID, domainStatus)
	if err != nil {
		s.logger.Error("GetClientAppointments: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetClientAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetClientAppointments: successfully fetched %d appointments for client=%d", len(appointments), req.ClientID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetSchedule получает расписание клиники с гибкой фильтрацией
// Доступно только персоналу
func (s *Service) GetSchedule(ctx context.Context, req *models.GetScheduleRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule, includeCancelled=%t", req.IncludeCancelled)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSchedule: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSchedule: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSchedule: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// SubmitPaymentReference сохраняет клиентский номер GCash-перевода
// Запись переходит в ожидание проверки персоналом
func (s *Service) SubmitPaymentReference(ctx context.Context, id int64, req *models.SubmitReferenceRequest) error {
	s.logger.Info("SubmitPaymentReference: appointment id=%d, user=%d", id, req.UserID)

	if req.Reference == "" {
		return fmt.Errorf("%w: reference must not be empty", ErrInvalidInput)
	}
	if len(req.Reference) > domain.MaxPaymentReferenceLength {
		return fmt.Errorf("%w: reference exceeds %d characters", ErrInvalidInput, domain.MaxPaymentReferenceLength)
	}

	appt, err := s.getAppointment(ctx, id, "SubmitPaymentReference")
	if err != nil {
		return err
	}

	if appt.ClientID != req.UserID {
		s.logger.Warn("SubmitPaymentReference: access denied for user=%d to appointment id=%d", req.UserID, id)
		return ErrAccessDenied
	}

	if appt.PaymentMethod != domain.PaymentGCash {
		s.logger.Warn("SubmitPaymentReference: appointment id=%d is paid by %s", id, appt.PaymentMethod)
		return ErrWrongPaymentMethod
	}

	// Номер принимается до подтверждения оплаты; повторная отправка
	// после отклонения перезапускает проверку
	if appt.Status != domain.StatusAwaitingPayment && appt.Status != domain.StatusAwaitingVerification {
		s.logger.Warn("SubmitPaymentReference: appointment id=%d in status=%s", id, appt.Status)
		return ErrInvalidTransition
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.appointmentRepo.SetPaymentReference(txCtx, id, req.Reference); err != nil {
			return err
		}
		return s.appointmentRepo.UpdateStatus(txCtx, id, domain.StatusAwaitingVerification, domain.PaymentAwaitingVerification)
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("SubmitPaymentReference: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: SubmitPaymentReference - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SubmitPaymentReference: appointment id=%d awaiting verification", id)
	return nil
}

// ConfirmPayment подтверждает GCash-оплату после проверки персоналом
// Персонал может передать номер перевода, если клиент сообщил его напрямую
func (s *Service) ConfirmPayment(ctx context.Context, id int64, req *models.ConfirmPaymentRequest) error {
	s.logger.Info("ConfirmPayment: appointment id=%d", id)

	if req.Reference != nil && len(*req.Reference) > domain.MaxPaymentReferenceLength {
		return fmt.Errorf("%w: reference exceeds %d characters", ErrInvalidInput, domain.MaxPaymentReferenceLength)
	}

	appt, err := s.getAppointment(ctx, id, "ConfirmPayment")
	if err != nil {
		return err
	}

	if appt.PaymentMethod != domain.PaymentGCash {
		s.logger.Warn("ConfirmPayment: appointment id=%d is paid by %s", id, appt.PaymentMethod)
		return ErrWrongPaymentMethod
	}

	if appt.Status != domain.StatusAwaitingVerification && appt.Status != domain.StatusAwaitingPayment {
		s.logger.Warn("ConfirmPayment: appointment id=%d in status=%s", id, appt.Status)
		return ErrInvalidTransition
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if req.Reference != nil {
			if err := s.appointmentRepo.SetPaymentReference(txCtx, id, *req.Reference); err != nil {
				return err
			}
		}
		return s.appointmentRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed, domain.PaymentPaid)
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("ConfirmPayment: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: ConfirmPayment - repository error: %v", ErrInternal, err)
	}

	s.publishEvent(ctx, events.EventAppointmentConfirmed, appt, domain.StatusConfirmed, domain.PaymentPaid)
	s.logger.Info("ConfirmPayment: appointment id=%d confirmed", id)
	return nil
}

// RejectPayment отклоняет GCash-оплату после проверки персоналом
// Запись возвращается в ожидание оплаты, клиент может прислать другой номер
func (s *Service) RejectPayment(ctx context.Context, id int64) error {
	s.logger.Info("RejectPayment: appointment id=%d", id)

	appt, err := s.getAppointment(ctx, id, "RejectPayment")
	if err != nil {
		return err
	}

	if appt.PaymentMethod != domain.PaymentGCash {
		s.logger.Warn("RejectPayment: appointment id=%d is paid by %s", id, appt.PaymentMethod)
		return ErrWrongPaymentMethod
	}

	if appt.Status != domain.StatusAwaitingVerification {
		s.logger.Warn("RejectPayment: appointment id=%d in status=%s", id, appt.Status)
		return ErrInvalidTransition
	}

	if err := s.updateStatus(ctx, id, domain.StatusAwaitingPayment, domain.PaymentFailed, "RejectPayment"); err != nil {
		return err
	}

	s.publishEvent(ctx, events.EventAppointmentRejected, appt, domain.StatusAwaitingPayment, domain.PaymentFailed)
	s.logger.Info("RejectPayment: appointment id=%d returned to awaiting payment", id)
	return nil
}

// Complete завершает приём
// Карточка визита создается до смены статуса: если сервис медкарт недоступен,
// приём остаётся подтверждённым и завершение можно повторить.
// Завершённый визит всегда считается оплаченным
func (s *Service) Complete(ctx context.Context, id int64) error {
	s.logger.Info("Complete: appointment id=%d", id)

	appt, err := s.getAppointment(ctx, id, "Complete")
	if err != nil {
		return err
	}

	if appt.Status != domain.StatusConfirmed {
		s.logger.Warn("Complete: appointment id=%d in status=%s", id, appt.Status)
		return ErrInvalidTransition
	}

	err = s.medClient.CreateRecord(ctx, medicalrecords.CreateRecordRequest{
		AppointmentID: appt.ID,
		PetID:         appt.PetID,
		PetName:       appt.PetName,
		ClientID:      appt.ClientID,
		ServiceType:   string(appt.Service),
		ServicePrice:  appt.ServicePrice,
		VisitDate:     appt.VisitDate,
		CompletedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Complete: failed to create medical record for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Complete - failed to create medical record: %v", ErrInternal, err)
	}

	if err := s.updateStatus(ctx, id, domain.StatusDone, domain.PaymentPaid, "Complete"); err != nil {
		return err
	}

	s.publishEvent(ctx, events.EventAppointmentCompleted, appt, domain.StatusDone, domain.PaymentPaid)
	s.logger.Info("Complete: appointment id=%d done", id)
	return nil
}

// Cancel отменяет запись
// Клиент может отменить только свою запись, персонал - любую.
// Если по записи уже прошла (или ожидает проверки) GCash-оплата, в той же
// транзакции создается заявка на возврат
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d by user=%d", id, req.UserID)

	if len(req.CancellationReason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: cancellation reason exceeds %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}

	appt, err := s.getAppointment(ctx, id, "Cancel")
	if err != nil {
		return err
	}

	if !req.IsStaff && appt.ClientID != req.UserID {
		s.logger.Warn("Cancel: access denied for user=%d to appointment id=%d", req.UserID, id)
		return ErrAccessDenied
	}

	// Предварительная проверка по прочитанному снапшоту; решающее слово
	// за условным UPDATE внутри транзакции
	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
		return ErrCannotCancel
	}

	// Возврат обязателен при уже прошедшей (или ожидающей проверки) GCash-оплате;
	// для оплаты наличными на месте - только по явной просьбе клиента
	refundOwed := appt.RefundOwedOnCancel()
	if !refundOwed && appt.PaymentMethod == domain.PaymentCash &&
		appt.EffectivePaymentStatus() == domain.PaymentPaid && req.RefundContactPhone != nil {
		refundOwed = true
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.appointmentRepo.Cancel(txCtx, id, req.CancellationReason); err != nil {
			return err
		}

		if !refundOwed {
			return nil
		}

		// Сумма возврата фиксируется из цены услуги на момент отмены
		_, err := s.refundRepo.Create(txCtx, &domain.RefundRequest{
			AppointmentID: appt.ID,
			ClientID:      appt.ClientID,
			Amount:        appt.ServicePrice,
			PaymentMethod: appt.PaymentMethod,
			ContactPhone:  req.RefundContactPhone,
			Reason:        req.CancellationReason,
			Status:        domain.RefundPending,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotCancellable) || errors.Is(err, refundRepo.ErrRefundAlreadyExists) {
			// Параллельная отмена или завершение выиграли гонку
			s.logger.Warn("Cancel: appointment id=%d lost the race, already terminal", id)
			return ErrCannotCancel
		}
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.publishEvent(ctx, events.EventAppointmentCancelled, appt, domain.StatusCancelled, appt.EffectivePaymentStatus())
	if refundOwed {
		s.publisher.PublishStaffNotification(ctx, events.EventAppointmentCancelled,
			"Appointment %d cancelled, refund of %.2f owed to client %d", appt.ID, appt.ServicePrice, appt.ClientID)
	}

	s.logger.Info("Cancel: successfully cancelled appointment id=%d, refundOwed=%t", id, refundOwed)
	return nil
}

// Вспомогательные методы

// getAppointment получает запись, маппя ошибки репозитория в ошибки сервиса
func (s *Service) getAppointment(ctx context.Context, id int64, op string) (*domain.Appointment, error) {
	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

// updateStatus обновляет статус, маппя ошибки репозитория в ошибки сервиса
func (s *Service) updateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, paymentStatus domain.PaymentStatus, op string) error {
	if err := s.appointmentRepo.UpdateStatus(ctx, id, status, paymentStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found during update", op, id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}

// publishEvent публикует событие изменения записи best-effort
func (s *Service) publishEvent(ctx context.Context, eventType string, appt *domain.Appointment, status domain.AppointmentStatus, paymentStatus domain.PaymentStatus) {
	s.publisher.PublishAppointmentEvent(ctx, events.AppointmentEvent{
		Type:          eventType,
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		Status:        string(status),
		PaymentStatus: string(paymentStatus),
		VisitDate:     appt.VisitDate.Format(domain.DateFormat),
		TimeSlot:      string(appt.TimeSlot),
	})
}

package reserve_appointment

import (
	"fmt"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.PetID <= 0 {
		return fmt.Errorf("%w: petID must be positive", ErrInvalidInput)
	}

	if req.VisitDate.IsZero() {
		return fmt.Errorf("%w: visitDate is required", ErrInvalidInput)
	}

	// Слот обязан принадлежать каталогу, произвольное время не принимается
	if !req.TimeSlot.IsValid() {
		return fmt.Errorf("%w: unknown time slot %q", ErrInvalidInput, req.TimeSlot)
	}

	if !req.Service.IsValid() {
		return fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, req.Service)
	}

	if req.PaymentMethod != domain.PaymentCash && req.PaymentMethod != domain.PaymentGCash {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.PaymentReference != nil {
		if req.PaymentMethod != domain.PaymentGCash {
			return fmt.Errorf("%w: payment reference is only accepted for gcash", ErrInvalidInput)
		}
		if *req.PaymentReference == "" {
			return fmt.Errorf("%w: payment reference must not be empty", ErrInvalidInput)
		}
		if len(*req.PaymentReference) > domain.MaxPaymentReferenceLength {
			return fmt.Errorf("%w: payment reference exceeds %d characters", ErrInvalidInput, domain.MaxPaymentReferenceLength)
		}
	}

	return nil
}

// validateDate проверяет, что дата визита не в прошлом
func validateDate(visitDate, now time.Time) error {
	dateOnly := time.Date(visitDate.Year(), visitDate.Month(), visitDate.Day(), 0, 0, 0, 0, visitDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrDateInPast
	}
	return nil
}

// initialStates вычисляет стартовую пару статусов по методу оплаты
// Наличные считаются оплаченными на месте, запись подтверждается сразу.
// GCash всегда стартует в ожидании проверки персоналом: номер перевода
// клиент может приложить сразу или прислать позже отдельным запросом
func initialStates(method domain.PaymentMethod) (domain.AppointmentStatus, domain.PaymentStatus) {
	if method == domain.PaymentCash {
		return domain.StatusConfirmed, domain.PaymentPaid
	}
	return domain.StatusAwaitingVerification, domain.PaymentAwaitingVerification
}

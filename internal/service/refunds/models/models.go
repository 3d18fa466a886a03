package models

import (
	"errors"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid refund status")
)

// Request модели

// AdvanceRefundRequest запрос на продвижение заявки по лестнице статусов
type AdvanceRefundRequest struct {
	Target string `json:"target"` // processing | completed
}

// ListRefundsRequest запрос списка заявок на возврат
type ListRefundsRequest struct {
	Status *string `json:"status,omitempty"`
}

// Response модели

// RefundResponse ответ с данными заявки на возврат
type RefundResponse struct {
	ID            int64     `json:"id"`
	AppointmentID int64     `json:"appointmentId"`
	ClientID      int64     `json:"clientId"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	ContactPhone  *string   `json:"contactPhone,omitempty"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status"`
	RequestedAt   time.Time `json:"requestedAt"`
	ProcessedAt   *string   `json:"processedAt,omitempty"` // ISO 8601 format
}

// RefundListResponse ответ со списком заявок
type RefundListResponse struct {
	Refunds []RefundResponse `json:"refunds"`
}

// Методы конвертации

// FromDomainRefund конвертирует domain модель в DTO
func FromDomainRefund(r *domain.RefundRequest) *RefundResponse {
	if r == nil {
		return nil
	}

	resp := &RefundResponse{
		ID:            r.ID,
		AppointmentID: r.AppointmentID,
		ClientID:      r.ClientID,
		Amount:        r.Amount,
		PaymentMethod: string(r.PaymentMethod),
		ContactPhone:  r.ContactPhone,
		Reason:        r.Reason,
		Status:        string(r.Status),
		RequestedAt:   r.RequestedAt,
	}

	if r.ProcessedAt != nil {
		processedStr := r.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedStr
	}

	return resp
}

// FromDomainRefundList конвертирует список domain моделей в DTO
func FromDomainRefundList(refunds []*domain.RefundRequest) *RefundListResponse {
	if refunds == nil {
		return &RefundListResponse{
			Refunds: []RefundResponse{},
		}
	}

	resp := &RefundListResponse{
		Refunds: make([]RefundResponse, len(refunds)),
	}

	for i, refund := range refunds {
		if refundResp := FromDomainRefund(refund); refundResp != nil {
			resp.Refunds[i] = *refundResp
		}
	}

	return resp
}

// ToDomainRefundStatus конвертирует строку в domain.RefundStatus с валидацией
func ToDomainRefundStatus(status string) (domain.RefundStatus, error) {
	s := domain.RefundStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

package models

import (
	"errors"
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// SubmitReferenceRequest запрос на передачу номера GCash-перевода
type SubmitReferenceRequest struct {
	UserID    int64  `json:"userId"`
	Reference string `json:"reference"`
}

// ConfirmPaymentRequest запрос на подтверждение GCash-оплаты персоналом
// Номер перевода опционален: персонал может внести его при подтверждении,
// если клиент сообщил номер напрямую
type ConfirmPaymentRequest struct {
	Reference *string `json:"reference,omitempty"`
}

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             int64   `json:"userId"`
	IsStaff            bool    `json:"-"`
	CancellationReason string  `json:"cancellationReason"`
	RefundContactPhone *string `json:"refundContactPhone,omitempty"`
}

// GetClientAppointmentsRequest запрос истории записей клиента
type GetClientAppointmentsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetScheduleRequest запрос расписания клиники
type GetScheduleRequest struct {
	StartDate        *time.Time `json:"startDate,omitempty"`
	EndDate          *time.Time `json:"endDate,omitempty"`
	Status           *string    `json:"status,omitempty"`
	IncludeCancelled bool       `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetScheduleRequest) ToDomainFilter() (domain.ScheduleFilter, error) {
	filter := domain.ScheduleFilter{
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи на приём
type AppointmentResponse struct {
	ID            int64  `json:"id"`
	PetID         int64  `json:"petId"`
	ClientID      int64  `json:"clientId"`
	VisitDate     string `json:"visitDate"` // "2026-09-15"
	TimeSlot      string `json:"timeSlot"`  // "8:00 AM - 8:30 AM"
	Service       string `json:"service"`
	PaymentMethod string `json:"paymentMethod"`
	Status        string `json:"status"`
	// Всегда производный статус: см. domain.Appointment.EffectivePaymentStatus
	PaymentStatus    string  `json:"paymentStatus"`
	PaymentReference *string `json:"paymentReference,omitempty"`

	// Денормализованные данные
	PetName      string  `json:"petName"`
	PetSpecies   *string `json:"petSpecies,omitempty"`
	PetBreed     *string `json:"petBreed,omitempty"`
	ServicePrice float64 `json:"servicePrice"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	// Заявка на возврат, если запись отменена с возвратом средств
	Refund *RefundSummary `json:"refund,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RefundSummary краткие данные заявки на возврат в карточке записи
type RefundSummary struct {
	ID          int64      `json:"id"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requestedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

// FromDomainRefundSummary конвертирует заявку на возврат в краткое DTO
func FromDomainRefundSummary(r *domain.RefundRequest) *RefundSummary {
	if r == nil {
		return nil
	}
	return &RefundSummary{
		ID:          r.ID,
		Amount:      r.Amount,
		Status:      string(r.Status),
		RequestedAt: r.RequestedAt,
		ProcessedAt: r.ProcessedAt,
	}
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		PetID:              a.PetID,
		ClientID:           a.ClientID,
		VisitDate:          a.VisitDate.Format(domain.DateFormat),
		TimeSlot:           string(a.TimeSlot),
		Service:            string(a.Service),
		PaymentMethod:      string(a.PaymentMethod),
		Status:             string(a.Status),
		PaymentStatus:      string(a.EffectivePaymentStatus()),
		PaymentReference:   a.PaymentReference,
		PetName:            a.PetName,
		PetSpecies:         a.PetSpecies,
		PetBreed:           a.PetBreed,
		ServicePrice:       a.ServicePrice,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusAwaitingPayment,
		domain.StatusAwaitingVerification,
		domain.StatusConfirmed,
		domain.StatusDone,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

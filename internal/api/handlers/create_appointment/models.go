package create_appointment

import (
	"time"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	reserveAppointment "github.com/BlackLex29/RLfursure-sub000/internal/usecase/reserve_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PetID            int64   `json:"petId"`
	VisitDate        string  `json:"visitDate"` // "2026-09-15"
	TimeSlot         string  `json:"timeSlot"`  // "8:00 AM - 8:30 AM"
	Service          string  `json:"service"`
	PaymentMethod    string  `json:"paymentMethod"`
	PaymentReference *string `json:"paymentReference,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	PetID         int64   `json:"petId"`
	ClientID      int64   `json:"clientId"`
	VisitDate     string  `json:"visitDate"`
	TimeSlot      string  `json:"timeSlot"`
	Service       string  `json:"service"`
	PaymentMethod string  `json:"paymentMethod"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	PetName       string  `json:"petName"`
	PetSpecies    *string `json:"petSpecies,omitempty"`
	PetBreed      *string `json:"petBreed,omitempty"`
	ServicePrice  float64 `json:"servicePrice"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID int64) (*reserveAppointment.Request, error) {
	visitDate, err := time.Parse(domain.DateFormat, r.VisitDate)
	if err != nil {
		return nil, err
	}

	return &reserveAppointment.Request{
		ClientID:         clientID,
		PetID:            r.PetID,
		VisitDate:        visitDate,
		TimeSlot:         domain.TimeSlot(r.TimeSlot),
		Service:          domain.ServiceType(r.Service),
		PaymentMethod:    domain.PaymentMethod(r.PaymentMethod),
		PaymentReference: r.PaymentReference,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reserveAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		PetID:         resp.PetID,
		ClientID:      resp.ClientID,
		VisitDate:     resp.VisitDate.Format(domain.DateFormat),
		TimeSlot:      string(resp.TimeSlot),
		Service:       string(resp.Service),
		PaymentMethod: string(resp.PaymentMethod),
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		PetName:       resp.PetName,
		PetSpecies:    resp.PetSpecies,
		PetBreed:      resp.PetBreed,
		ServicePrice:  resp.ServicePrice,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}

package medicalrecords

import "time"

// CreateRecordRequest запрос на создание медицинской карточки визита
type CreateRecordRequest struct {
	AppointmentID int64     `json:"appointment_id"`
	PetID         int64     `json:"pet_id"`
	PetName       string    `json:"pet_name"`
	ClientID      int64     `json:"client_id"`
	ServiceType   string    `json:"service_type"`
	ServicePrice  float64   `json:"service_price"`
	VisitDate     time.Time `json:"visit_date"`
	CompletedAt   time.Time `json:"completed_at"`
}

// ErrorResponse модель ошибки от сервиса медкарт
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

package events

import "time"

// Каналы публикации событий
const (
	ChannelAppointmentsFeed   = "appointments:feed"
	ChannelStaffNotifications = "notifications:staff"
)

// Типы событий ленты записей
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentConfirmed = "appointment.confirmed"
	EventAppointmentRejected  = "appointment.rejected"
	EventAppointmentCompleted = "appointment.completed"
	EventAppointmentCancelled = "appointment.cancelled"
	EventRefundAdvanced       = "refund.advanced"
)

// AppointmentEvent событие изменения записи на приём
type AppointmentEvent struct {
	Type          string    `json:"type"`
	AppointmentID int64     `json:"appointment_id"`
	ClientID      int64     `json:"client_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	VisitDate     string    `json:"visit_date"`
	TimeSlot      string    `json:"time_slot"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// StaffNotification уведомление для персонала клиники
type StaffNotification struct {
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

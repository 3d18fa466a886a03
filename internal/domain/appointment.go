package domain

import "time"

// PaymentMethod represents how the client pays for a visit
type PaymentMethod string

const (
	// PaymentCash is paid at the clinic and trusted at booking time
	PaymentCash PaymentMethod = "cash"
	// PaymentGCash is a deferred method: the client supplies a reference
	// number which staff verifies before the visit is confirmed
	PaymentGCash PaymentMethod = "gcash"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusAwaitingPayment      AppointmentStatus = "awaiting_payment"
	StatusAwaitingVerification AppointmentStatus = "awaiting_verification"
	StatusConfirmed            AppointmentStatus = "confirmed"
	StatusDone                 AppointmentStatus = "done"
	StatusCancelled            AppointmentStatus = "cancelled"
)

// PaymentStatus represents the payment state of an appointment
type PaymentStatus string

const (
	PaymentUnpaid               PaymentStatus = "unpaid"
	PaymentAwaitingVerification PaymentStatus = "awaiting_verification"
	PaymentPaid                 PaymentStatus = "paid"
	PaymentFailed               PaymentStatus = "failed"
)

// Appointment represents a booked visit to the clinic
type Appointment struct {
	ID        int64
	PetID     int64
	ClientID  int64
	VisitDate time.Time
	TimeSlot  TimeSlot
	Service   ServiceType

	PaymentMethod    PaymentMethod
	Status           AppointmentStatus
	PaymentStatus    PaymentStatus
	PaymentReference *string // клиентский номер GCash-перевода

	// Denormalized at booking time so later pet edits do not
	// rewrite appointment history
	PetName      string
	PetSpecies   *string
	PetBreed     *string
	ServicePrice float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still holds its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsTerminal returns true if the appointment reached a terminal state
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusDone || a.Status == StatusCancelled
}

// CanBeCancelled returns true if the appointment can still be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return !a.IsTerminal()
}

// RefundOwedOnCancel returns true if cancelling this appointment must
// create a refund request: money already moved (or is in flight) through
// the deferred method
func (a *Appointment) RefundOwedOnCancel() bool {
	if a.PaymentMethod != PaymentGCash {
		return false
	}
	return a.PaymentStatus == PaymentPaid || a.PaymentStatus == PaymentAwaitingVerification
}

// EffectivePaymentStatus is the single source of truth for the payment
// state shown to callers. Every DTO conversion goes through it so the
// derivation cannot drift between views
func (a *Appointment) EffectivePaymentStatus() PaymentStatus {
	// Завершённый визит финансово закрыт независимо от метода оплаты
	if a.Status == StatusDone {
		return PaymentPaid
	}
	if a.PaymentStatus != "" {
		return a.PaymentStatus
	}
	// Старые записи без payment_status: наличная оплата считается внесённой
	if a.PaymentMethod == PaymentCash {
		return PaymentPaid
	}
	return PaymentUnpaid
}

// ScheduleFilter is the filter for listing a day (or range) of appointments
type ScheduleFilter struct {
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *AppointmentStatus
	IncludeCancelled bool
}

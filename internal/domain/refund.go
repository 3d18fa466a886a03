package domain

import "time"

// RefundStatus represents the state of a refund request
type RefundStatus string

const (
	RefundPending    RefundStatus = "pending"
	RefundProcessing RefundStatus = "processing"
	RefundCompleted  RefundStatus = "completed"
)

// IsValid returns true for a known refund status
func (s RefundStatus) IsValid() bool {
	return s == RefundPending || s == RefundProcessing || s == RefundCompleted
}

// CanTransitionTo reports whether the move s -> target is allowed.
// The ladder is strictly one-directional: pending -> processing -> completed
func (s RefundStatus) CanTransitionTo(target RefundStatus) bool {
	switch s {
	case RefundPending:
		return target == RefundProcessing
	case RefundProcessing:
		return target == RefundCompleted
	default:
		return false
	}
}

// RefundRequest is created when a paid (or payment-pending) deferred
// appointment is cancelled. Never deleted; advanced only by staff
type RefundRequest struct {
	ID            int64
	AppointmentID int64
	ClientID      int64
	// Amount копируется из цены услуги на момент отмены и больше не пересчитывается
	Amount        float64
	PaymentMethod PaymentMethod
	// Контакт для ручной выплаты через GCash
	ContactPhone *string
	Reason       string
	Status       RefundStatus

	RequestedAt time.Time
	ProcessedAt *time.Time
}

// IsCompleted returns true if the refund reached its terminal state
func (r *RefundRequest) IsCompleted() bool {
	return r.Status == RefundCompleted
}

package cancel_appointment

// CancelAppointmentRequest HTTP request model
type CancelAppointmentRequest struct {
	CancellationReason string  `json:"cancellationReason"`
	RefundContactPhone *string `json:"refundContactPhone,omitempty"`
}

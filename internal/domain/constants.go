package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxReasonLength           = 500
	MaxPaymentReferenceLength = 64
)

// TerminalStatuses список терминальных статусов записи
var TerminalStatuses = []AppointmentStatus{
	StatusDone,
	StatusCancelled,
}

// ActiveStatuses статусы, при которых запись удерживает свой слот
// Используется при проверке доступности слота
var ActiveStatuses = []AppointmentStatus{
	StatusAwaitingPayment,
	StatusAwaitingVerification,
	StatusConfirmed,
	StatusDone,
}

package confirm_payment

import (
	"context"

	"github.com/BlackLex29/RLfursure-sub000/internal/service/appointments/models"
)

type AppointmentsService interface {
	ConfirmPayment(ctx context.Context, id int64, req *models.ConfirmPaymentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

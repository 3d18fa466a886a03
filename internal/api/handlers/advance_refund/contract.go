package advance_refund

import (
	"context"

	"github.com/BlackLex29/RLfursure-sub000/internal/service/refunds/models"
)

type RefundsService interface {
	Advance(ctx context.Context, id int64, req *models.AdvanceRefundRequest) (*models.RefundResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

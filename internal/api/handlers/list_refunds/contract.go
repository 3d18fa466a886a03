package list_refunds

import (
	"context"

	"github.com/BlackLex29/RLfursure-sub000/internal/service/refunds/models"
)

type RefundsService interface {
	List(ctx context.Context, req *models.ListRefundsRequest) (*models.RefundListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package list_unavailability_days

import (
	"context"

	"github.com/BlackLex29/RLfursure-sub000/internal/service/unavailability/models"
)

type UnavailabilityService interface {
	ListDays(ctx context.Context, req *models.ListDaysRequest) (*models.UnavailabilityDayListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package declare_unavailability

import (
	"context"

	"github.com/BlackLex29/RLfursure-sub000/internal/usecase/declare_unavailability"
)

type DeclareUnavailabilityUseCase interface {
	Execute(ctx context.Context, req *declare_unavailability.Request) (*declare_unavailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

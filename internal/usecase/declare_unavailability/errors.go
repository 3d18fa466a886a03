package declare_unavailability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("declare_unavailability: invalid input data")

	// ErrInvalidDateRange возвращается, когда дата окончания раньше даты начала
	ErrInvalidDateRange = errors.New("declare_unavailability: end date is before start date")

	// ErrInvalidTimeWindow возвращается при некорректном окне времени
	ErrInvalidTimeWindow = errors.New("declare_unavailability: invalid time window")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("declare_unavailability: internal error")
)

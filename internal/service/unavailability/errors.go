package unavailability

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись о недоступности не найдена
	ErrRecordNotFound = errors.New("unavailability record not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

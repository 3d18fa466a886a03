package refunds

import "errors"

var (
	// ErrRefundNotFound возвращается, когда заявка на возврат не найдена
	ErrRefundNotFound = errors.New("refund request not found")

	// ErrInvalidTransition возвращается при недопустимом переходе статуса
	// Лестница статусов строго однонаправленная: pending -> processing -> completed
	ErrInvalidTransition = errors.New("invalid refund status transition")

	// ErrStatusConflict возвращается, когда заявку одновременно продвинул кто-то другой
	ErrStatusConflict = errors.New("refund status changed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

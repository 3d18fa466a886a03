package refund

import "errors"

var (
	// ErrRefundNotFound возвращается, когда заявка на возврат не найдена
	ErrRefundNotFound = errors.New("refund.repository: refund request not found")

	// ErrStatusConflict возвращается, когда заявка уже не в ожидаемом статусе
	// Используется CAS-обновлением статуса для защиты от гонок
	ErrStatusConflict = errors.New("refund.repository: refund status conflict")

	// ErrRefundAlreadyExists возвращается, когда по записи уже есть заявка
	// Срабатывает на уникальном индексе по appointment_id
	ErrRefundAlreadyExists = errors.New("refund.repository: refund request already exists for appointment")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("refund.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("refund.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("refund.repository: failed to scan row")
)

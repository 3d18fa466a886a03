package unavailability

import "errors"

var (
	// ErrRecordNotFound возвращается, когда запись о недоступности не найдена
	ErrRecordNotFound = errors.New("unavailability.repository: record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("unavailability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("unavailability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("unavailability.repository: failed to scan row")
)

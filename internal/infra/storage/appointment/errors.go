package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotTaken возвращается, когда слот уже занят активной записью
	// Срабатывает на частичном уникальном индексе (visit_date, time_slot) WHERE status <> 'cancelled'
	ErrSlotTaken = errors.New("appointment.repository: slot already taken")

	// ErrNotCancellable возвращается, когда условная отмена не затронула строку:
	// запись уже в терминальном статусе (параллельная отмена или завершение)
	ErrNotCancellable = errors.New("appointment.repository: appointment is not cancellable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)

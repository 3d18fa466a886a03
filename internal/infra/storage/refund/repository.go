package refund

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/pkg/dbmetrics"
	"github.com/BlackLex29/RLfursure-sub000/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки postgres при нарушении уникального индекса
const pgUniqueViolation = "23505"

// refundColumns полный список колонок таблицы refund_requests
var refundColumns = []string{
	"id",
	"appointment_id",
	"client_id",
	"amount",
	"payment_method",
	"contact_phone",
	"reason",
	"status",
	"requested_at",
	"processed_at",
}

// Repository репозиторий для заявок на возврат средств
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория возвратов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку на возврат
// Сумма фиксируется в момент создания и дальше не пересчитывается
func (r *Repository) Create(ctx context.Context, req *domain.RefundRequest) (*domain.RefundRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("refund_requests").
		Columns(
			"appointment_id",
			"client_id",
			"amount",
			"payment_method",
			"contact_phone",
			"reason",
			"status",
		).
		Values(
			req.AppointmentID,
			req.ClientID,
			req.Amount,
			req.PaymentMethod,
			req.ContactPhone,
			req.Reason,
			req.Status,
		).
		Suffix("RETURNING id, requested_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var requestedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&requestedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrRefundAlreadyExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.RequestedAt = requestedAt.Time

	return req, nil
}

// GetByID получает заявку на возврат по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RefundRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(refundColumns...).
		From("refund_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRefund(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRefundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan refund: %v", ErrScanRow, err)
	}

	return req, nil
}

// GetByAppointmentID получает заявку на возврат по ID записи на приём
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.RefundRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(refundColumns...).
		From("refund_requests").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := scanRefund(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRefundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - scan refund: %v", ErrScanRow, err)
	}

	return req, nil
}

// List получает заявки на возврат, опционально фильтруя по статусу
func (r *Repository) List(ctx context.Context, status *domain.RefundStatus) ([]*domain.RefundRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(refundColumns...).
		From("refund_requests").
		OrderBy("requested_at DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	refunds := make([]*domain.RefundRequest, 0)

	for rows.Next() {
		req, err := scanRefund(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		refunds = append(refunds, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return refunds, nil
}

// UpdateStatus переводит заявку из статуса from в статус to
// Условие WHERE status = from превращает обновление в CAS: если заявка
// уже не в ожидаемом статусе, возвращается ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.RefundStatus, processedAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("refund_requests").
		Set("status", to).
		Where(squirrel.Eq{
			"id":     id,
			"status": from,
		})

	if processedAt != nil {
		builder = builder.Set("processed_at", *processedAt)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Различаем "не найдена" и "уже в другом статусе"
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrStatusConflict
	}

	return nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRefund сканирует одну строку в доменную модель
func scanRefund(row rowScanner) (*domain.RefundRequest, error) {
	var req domain.RefundRequest
	var requestedAt sql.NullTime
	var processedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.AppointmentID,
		&req.ClientID,
		&req.Amount,
		&req.PaymentMethod,
		&req.ContactPhone,
		&req.Reason,
		&req.Status,
		&requestedAt,
		&processedAt,
	)
	if err != nil {
		return nil, err
	}

	req.RequestedAt = requestedAt.Time
	if processedAt.Valid {
		req.ProcessedAt = &processedAt.Time
	}

	return &req, nil
}

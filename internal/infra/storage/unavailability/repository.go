package unavailability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/pkg/dbmetrics"
	"github.com/BlackLex29/RLfursure-sub000/pkg/psqlbuilder"
)

// dayColumns полный список колонок таблицы unavailability_days
var dayColumns = []string{
	"id",
	"record_id",
	"ordinal",
	"veterinarian_id",
	"day_date",
	"is_all_day",
	"start_time",
	"end_time",
	"reason",
}

// Repository репозиторий для записей о недоступности и производных дней
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория недоступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateRecord создает исходную запись о недоступности
func (r *Repository) CreateRecord(ctx context.Context, record *domain.UnavailabilityRecord) (*domain.UnavailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("unavailability_records").
		Columns(
			"veterinarian_id",
			"start_date",
			"end_date",
			"is_all_day",
			"start_time",
			"end_time",
			"reason",
		).
		Values(
			record.VeterinarianID,
			record.StartDate,
			record.EndDate,
			record.IsAllDay,
			record.StartTime,
			record.EndTime,
			record.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateRecord - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: CreateRecord - execute insert: %v", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return record, nil
}

// GetRecordByID получает исходную запись по ID
func (r *Repository) GetRecordByID(ctx context.Context, id int64) (*domain.UnavailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"veterinarian_id",
		"start_date",
		"end_date",
		"is_all_day",
		"start_time",
		"end_time",
		"reason",
		"created_at",
		"updated_at",
	).
		From("unavailability_records").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRecordByID - build select query: %v", ErrBuildQuery, err)
	}

	var record domain.UnavailabilityRecord
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.VeterinarianID,
		&record.StartDate,
		&record.EndDate,
		&record.IsAllDay,
		&record.StartTime,
		&record.EndTime,
		&record.Reason,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRecordByID - scan record: %v", ErrScanRow, err)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}

// ReplaceDays заменяет производные дни записи на новый набор
// Удаление + вставка в одной транзакции делает повторную генерацию идемпотентной:
// редактирование исходной записи полностью пересоздаёт её дни
func (r *Repository) ReplaceDays(ctx context.Context, recordID int64, days []domain.UnavailabilityDay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("unavailability_days").
		Where(squirrel.Eq{"record_id": recordID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDays - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceDays - execute delete: %v", ErrExecQuery, err)
	}

	if len(days) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("unavailability_days").Columns(dayColumns...)
	for _, day := range days {
		insertBuilder = insertBuilder.Values(
			day.ID,
			day.RecordID,
			day.Ordinal,
			day.VeterinarianID,
			day.Date,
			day.IsAllDay,
			day.StartTime,
			day.EndTime,
			day.Reason,
		)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceDays - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceDays - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetDaysByDate получает все блокирующие дни на указанную дату
// Используется резолвером доступности и оркестратором бронирования
func (r *Repository) GetDaysByDate(ctx context.Context, date time.Time) ([]*domain.UnavailabilityDay, error) {
	return r.getDays(ctx, squirrel.Eq{"day_date": date})
}

// GetDaysInRange получает блокирующие дни в интервале [from, to] включительно
func (r *Repository) GetDaysInRange(ctx context.Context, from, to time.Time) ([]*domain.UnavailabilityDay, error) {
	return r.getDays(ctx, squirrel.And{
		squirrel.GtOrEq{"day_date": from},
		squirrel.LtOrEq{"day_date": to},
	})
}

// GetDaysByRecordID получает производные дни исходной записи
func (r *Repository) GetDaysByRecordID(ctx context.Context, recordID int64) ([]*domain.UnavailabilityDay, error) {
	return r.getDays(ctx, squirrel.Eq{"record_id": recordID})
}

// DeleteRecord удаляет исходную запись вместе с производными днями
func (r *Repository) DeleteRecord(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	daysQuery, daysArgs, err := psqlbuilder.Delete("unavailability_days").
		Where(squirrel.Eq{"record_id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteRecord - build days delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, daysQuery, daysArgs...); err != nil {
		return fmt.Errorf("%w: DeleteRecord - execute days delete: %v", ErrExecQuery, err)
	}

	recordQuery, recordArgs, err := psqlbuilder.Delete("unavailability_records").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteRecord - build record delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, recordQuery, recordArgs...)
	if err != nil {
		return fmt.Errorf("%w: DeleteRecord - execute record delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteRecord - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

// getDays выполняет выборку дней по условию
func (r *Repository) getDays(ctx context.Context, where interface{}) ([]*domain.UnavailabilityDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(dayColumns...).
		From("unavailability_days").
		Where(where).
		OrderBy("day_date ASC, ordinal ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getDays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getDays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]*domain.UnavailabilityDay, 0)

	for rows.Next() {
		var day domain.UnavailabilityDay

		err := rows.Scan(
			&day.ID,
			&day.RecordID,
			&day.Ordinal,
			&day.VeterinarianID,
			&day.Date,
			&day.IsAllDay,
			&day.StartTime,
			&day.EndTime,
			&day.Reason,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getDays - scan row: %v", ErrScanRow, err)
		}

		days = append(days, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getDays - rows error: %v", ErrScanRow, err)
	}

	return days, nil
}

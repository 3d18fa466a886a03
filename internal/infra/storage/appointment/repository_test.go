package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func appointmentRows(appt *domain.Appointment) *sqlmock.Rows {
	return sqlmock.NewRows(appointmentColumns).AddRow(
		appt.ID,
		appt.PetID,
		appt.ClientID,
		appt.VisitDate,
		string(appt.TimeSlot),
		string(appt.Service),
		string(appt.PaymentMethod),
		string(appt.Status),
		string(appt.PaymentStatus),
		appt.PaymentReference,
		appt.PetName,
		appt.PetSpecies,
		appt.PetBreed,
		appt.ServicePrice,
		appt.CancellationReason,
		appt.CancelledAt,
		appt.CreatedAt,
		appt.UpdatedAt,
	)
}

func sampleAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:            1,
		PetID:         5,
		ClientID:      100,
		VisitDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "8:00 AM - 8:30 AM",
		Service:       domain.ServiceCheckup,
		PaymentMethod: domain.PaymentCash,
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPaid,
		PetName:       "Bruno",
		ServicePrice:  300,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
}

func TestCreate_MapsUniqueViolationToSlotTaken(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_appointments_active_slot"})

	appt := sampleAppointment()
	appt.ID = 0
	_, err := repo.Create(context.Background(), appt)
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ReturnsGeneratedFields(t *testing.T) {
	repo, mock := newMockRepo(t)

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), createdAt, createdAt))

	appt := sampleAppointment()
	appt.ID = 0
	created, err := repo.Create(context.Background(), appt)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, createdAt, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM appointments WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(appointmentRows(sampleAppointment()))

	appt, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), appt.ID)
	assert.Equal(t, domain.TimeSlot("8:00 AM - 8:30 AM"), appt.TimeSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM appointments WHERE id = \$1`).
		WithArgs(int64(999)).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveBySlot_ExcludesCancelled(t *testing.T) {
	repo, mock := newMockRepo(t)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT .+ FROM appointments WHERE visit_date = \$1 AND time_slot = \$2 AND status <> \$3`).
		WithArgs(date, "8:00 AM - 8:30 AM", string(domain.StatusCancelled)).
		WillReturnRows(appointmentRows(sampleAppointment()))

	active, err := repo.GetActiveBySlot(context.Background(), date, "8:00 AM - 8:30 AM")
	require.NoError(t, err)
	assert.Len(t, active, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE appointments SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 999, domain.StatusConfirmed, domain.PaymentPaid)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_SetsReasonAndTimestamp(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`UPDATE appointments SET status = \$1, cancellation_reason = \$2, cancelled_at = NOW\(\), updated_at = NOW\(\) WHERE id = \$3 AND status NOT IN \(\$4,\$5\)`).
		WithArgs(string(domain.StatusCancelled), "schedule conflict", int64(1),
			string(domain.StatusDone), string(domain.StatusCancelled)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Cancel(context.Background(), 1, "schedule conflict")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancel_TerminalRowIsNotTouched(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Условный UPDATE не находит строку: запись уже done или cancelled
	mock.ExpectExec(`UPDATE appointments SET .+ WHERE id = \$3 AND status NOT IN`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Cancel(context.Background(), 1, "late cancel")
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

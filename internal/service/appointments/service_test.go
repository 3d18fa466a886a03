package appointments

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/internal/infra/events"
	appointmentRepo "github.com/BlackLex29/RLfursure-sub000/internal/infra/storage/appointment"
	refundRepo "github.com/BlackLex29/RLfursure-sub000/internal/infra/storage/refund"
	"github.com/BlackLex29/RLfursure-sub000/internal/integrations/medicalrecords"
	"github.com/BlackLex29/RLfursure-sub000/internal/service/appointments/models"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// fakeTxManager выполняет fn без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeAppointmentStore in-memory реализация репозитория записей
type fakeAppointmentStore struct {
	mu   sync.Mutex
	byID map[int64]*domain.Appointment
}

func newFakeAppointmentStore(appointments ...*domain.Appointment) *fakeAppointmentStore {
	store := &fakeAppointmentStore{byID: make(map[int64]*domain.Appointment)}
	for _, appt := range appointments {
		copied := *appt
		store.byID[appt.ID] = &copied
	}
	return store
}

func (s *fakeAppointmentStore) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.byID[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (s *fakeAppointmentStore) GetByClientID(_ context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Appointment
	for _, appt := range s.byID {
		if appt.ClientID != clientID {
			continue
		}
		if status != nil && appt.Status != *status {
			continue
		}
		copied := *appt
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeAppointmentStore) GetWithFilter(_ context.Context, filter domain.ScheduleFilter) ([]*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Appointment
	for _, appt := range s.byID {
		if !filter.IncludeCancelled && filter.Status == nil && appt.Status == domain.StatusCancelled {
			continue
		}
		if filter.Status != nil && appt.Status != *filter.Status {
			continue
		}
		copied := *appt
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeAppointmentStore) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus, paymentStatus domain.PaymentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	appt.PaymentStatus = paymentStatus
	return nil
}

func (s *fakeAppointmentStore) SetPaymentReference(_ context.Context, id int64, reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.byID[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	appt.PaymentReference = &reference
	return nil
}

func (s *fakeAppointmentStore) Cancel(_ context.Context, id int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.byID[id]
	if !ok {
		return appointmentRepo.ErrNotCancellable
	}
	// Условная запись, как в настоящем репозитории: терминальная строка не трогается
	if appt.Status == domain.StatusDone || appt.Status == domain.StatusCancelled {
		return appointmentRepo.ErrNotCancellable
	}
	now := time.Now()
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = &reason
	appt.CancelledAt = &now
	return nil
}

// fakeRefundStore собирает созданные заявки на возврат
type fakeRefundStore struct {
	mu      sync.Mutex
	created []*domain.RefundRequest
}

func (s *fakeRefundStore) Create(_ context.Context, req *domain.RefundRequest) (*domain.RefundRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req.ID = int64(len(s.created) + 1)
	req.RequestedAt = time.Now()
	s.created = append(s.created, req)
	return req, nil
}

func (s *fakeRefundStore) GetByAppointmentID(_ context.Context, appointmentID int64) (*domain.RefundRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.created {
		if r.AppointmentID == appointmentID {
			copied := *r
			return &copied, nil
		}
	}
	return nil, refundRepo.ErrRefundNotFound
}

// fakeMedClient фиксирует эмиссию карточек визита
type fakeMedClient struct {
	records []medicalrecords.CreateRecordRequest
	err     error
}

func (c *fakeMedClient) CreateRecord(_ context.Context, record medicalrecords.CreateRecordRequest) error {
	if c.err != nil {
		return c.err
	}
	c.records = append(c.records, record)
	return nil
}

type fakePublisher struct {
	events        []events.AppointmentEvent
	notifications []string
}

func (p *fakePublisher) PublishAppointmentEvent(_ context.Context, event events.AppointmentEvent) {
	p.events = append(p.events, event)
}

func (p *fakePublisher) PublishStaffNotification(_ context.Context, eventType, _ string, _ ...interface{}) {
	p.notifications = append(p.notifications, eventType)
}

func gcashAppointment(status domain.AppointmentStatus, paymentStatus domain.PaymentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:            1,
		PetID:         5,
		ClientID:      100,
		VisitDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "8:00 AM - 8:30 AM",
		Service:       domain.ServiceCheckup,
		PaymentMethod: domain.PaymentGCash,
		Status:        status,
		PaymentStatus: paymentStatus,
		PetName:       "Bruno",
		ServicePrice:  300,
	}
}

func newTestService(store *fakeAppointmentStore, refunds *fakeRefundStore, med *fakeMedClient, pub *fakePublisher) *Service {
	return NewService(store, refunds, med, pub, fakeTxManager{}, noopLogger{})
}

func TestGetByID_AccessControl(t *testing.T) {
	store := newFakeAppointmentStore(gcashAppointment(domain.StatusConfirmed, domain.PaymentPaid))
	svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

	// Владелец видит свою запись
	resp, err := svc.GetByID(context.Background(), 1, 100, false)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	// Чужой клиент - нет
	_, err = svc.GetByID(context.Background(), 1, 200, false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// Персонал видит любую
	_, err = svc.GetByID(context.Background(), 1, 200, true)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), 999, 100, false)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGCashDeferredHappyPath(t *testing.T) {
	// checkup за 300: бронь без референса (GCash стартует в ожидании проверки) ->
	// клиент прислал номер -> персонал подтвердил -> приём завершён с эмиссией
	// карточки визита
	store := newFakeAppointmentStore(gcashAppointment(domain.StatusAwaitingVerification, domain.PaymentAwaitingVerification))
	med := &fakeMedClient{}
	pub := &fakePublisher{}
	svc := newTestService(store, &fakeRefundStore{}, med, pub)

	err := svc.SubmitPaymentReference(context.Background(), 1, &models.SubmitReferenceRequest{
		UserID:    100,
		Reference: "GC-123456",
	})
	require.NoError(t, err)

	appt, _ := store.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusAwaitingVerification, appt.Status)
	assert.Equal(t, domain.PaymentAwaitingVerification, appt.PaymentStatus)
	require.NotNil(t, appt.PaymentReference)
	assert.Equal(t, "GC-123456", *appt.PaymentReference)

	err = svc.ConfirmPayment(context.Background(), 1, &models.ConfirmPaymentRequest{})
	require.NoError(t, err)

	appt, _ = store.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	assert.Equal(t, domain.PaymentPaid, appt.PaymentStatus)

	err = svc.Complete(context.Background(), 1)
	require.NoError(t, err)

	appt, _ = store.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusDone, appt.Status)
	assert.Equal(t, domain.PaymentPaid, appt.PaymentStatus)

	// Карточка визита создана ровно один раз с данными записи
	require.Len(t, med.records, 1)
	assert.Equal(t, int64(1), med.records[0].AppointmentID)
	assert.Equal(t, "Bruno", med.records[0].PetName)
	assert.Equal(t, "checkup", med.records[0].ServiceType)
	assert.Equal(t, float64(300), med.records[0].ServicePrice)

	// События confirmed и completed опубликованы
	require.Len(t, pub.events, 2)
	assert.Equal(t, events.EventAppointmentConfirmed, pub.events[0].Type)
	assert.Equal(t, events.EventAppointmentCompleted, pub.events[1].Type)
}

func TestSubmitPaymentReference_Rules(t *testing.T) {
	t.Run("owner only", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusAwaitingPayment, domain.PaymentUnpaid))
		svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

		err := svc.SubmitPaymentReference(context.Background(), 1, &models.SubmitReferenceRequest{UserID: 200, Reference: "GC-1"})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("gcash only", func(t *testing.T) {
		appt := gcashAppointment(domain.StatusConfirmed, domain.PaymentPaid)
		appt.PaymentMethod = domain.PaymentCash
		store := newFakeAppointmentStore(appt)
		svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

		err := svc.SubmitPaymentReference(context.Background(), 1, &models.SubmitReferenceRequest{UserID: 100, Reference: "GC-1"})
		assert.ErrorIs(t, err, ErrWrongPaymentMethod)
	})

	t.Run("resubmission after rejection restarts verification", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusAwaitingVerification, domain.PaymentAwaitingVerification))
		svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

		err := svc.SubmitPaymentReference(context.Background(), 1, &models.SubmitReferenceRequest{UserID: 100, Reference: "GC-2"})
		assert.NoError(t, err)
	})

	t.Run("confirmed rejects new reference", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusConfirmed, domain.PaymentPaid))
		svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

		err := svc.SubmitPaymentReference(context.Background(), 1, &models.SubmitReferenceRequest{UserID: 100, Reference: "GC-2"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("empty reference", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusAwaitingPayment, domain.PaymentUnpaid))
		svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

		err := svc.SubmitPaymentReference(context.Background(), 1, &models.SubmitReferenceRequest{UserID: 100})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestRejectPayment(t *testing.T) {
	store := newFakeAppointmentStore(gcashAppointment(domain.StatusAwaitingVerification, domain.PaymentAwaitingVerification))
	pub := &fakePublisher{}
	svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, pub)

	err := svc.RejectPayment(context.Background(), 1)
	require.NoError(t, err)

	appt, _ := store.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusAwaitingPayment, appt.Status)
	assert.Equal(t, domain.PaymentFailed, appt.PaymentStatus)

	// Повторное отклонение невозможно - запись уже не ждёт проверки
	err = svc.RejectPayment(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirmPayment_DirectFromAwaitingPayment(t *testing.T) {
	// Клиент сообщил номер перевода персоналу напрямую
	store := newFakeAppointmentStore(gcashAppointment(domain.StatusAwaitingPayment, domain.PaymentUnpaid))
	svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

	reference := "GC-STAFF-1"
	err := svc.ConfirmPayment(context.Background(), 1, &models.ConfirmPaymentRequest{Reference: &reference})
	require.NoError(t, err)

	appt, _ := store.GetByID(context.Background(), 1)
	assert.Equal(t, domain.StatusConfirmed, appt.Status)
	require.NotNil(t, appt.PaymentReference)
	assert.Equal(t, "GC-STAFF-1", *appt.PaymentReference)
}

func TestComplete_Rules(t *testing.T) {
	t.Run("only confirmed can be completed", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusAwaitingVerification, domain.PaymentAwaitingVerification))
		svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

		err := svc.Complete(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("medical record failure keeps appointment confirmed", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusConfirmed, domain.PaymentPaid))
		med := &fakeMedClient{err: errors.New("records service unavailable")}
		svc := newTestService(store, &fakeRefundStore{}, med, &fakePublisher{})

		err := svc.Complete(context.Background(), 1)
		assert.ErrorIs(t, err, ErrInternal)

		appt, _ := store.GetByID(context.Background(), 1)
		assert.Equal(t, domain.StatusConfirmed, appt.Status)
	})
}

func TestCancel_RefundPairing(t *testing.T) {
	t.Run("paid gcash creates pending refund with service price", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusConfirmed, domain.PaymentPaid))
		refunds := &fakeRefundStore{}
		pub := &fakePublisher{}
		svc := newTestService(store, refunds, &fakeMedClient{}, pub)

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
			UserID:             100,
			CancellationReason: "schedule conflict",
		})
		require.NoError(t, err)

		appt, _ := store.GetByID(context.Background(), 1)
		assert.Equal(t, domain.StatusCancelled, appt.Status)

		require.Len(t, refunds.created, 1)
		refund := refunds.created[0]
		assert.Equal(t, int64(1), refund.AppointmentID)
		assert.Equal(t, int64(100), refund.ClientID)
		assert.Equal(t, float64(300), refund.Amount)
		assert.Equal(t, domain.RefundPending, refund.Status)

		require.Len(t, pub.notifications, 1)
	})

	t.Run("awaiting verification gcash also owed a refund", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusAwaitingVerification, domain.PaymentAwaitingVerification))
		refunds := &fakeRefundStore{}
		svc := newTestService(store, refunds, &fakeMedClient{}, &fakePublisher{})

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 100})
		require.NoError(t, err)
		assert.Len(t, refunds.created, 1)
	})

	t.Run("unpaid gcash cancels without refund", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusAwaitingPayment, domain.PaymentUnpaid))
		refunds := &fakeRefundStore{}
		svc := newTestService(store, refunds, &fakeMedClient{}, &fakePublisher{})

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 100})
		require.NoError(t, err)
		assert.Empty(t, refunds.created)
	})

	t.Run("paid cash refunds only on explicit request", func(t *testing.T) {
		appt := gcashAppointment(domain.StatusConfirmed, domain.PaymentPaid)
		appt.PaymentMethod = domain.PaymentCash

		store := newFakeAppointmentStore(appt)
		refunds := &fakeRefundStore{}
		svc := newTestService(store, refunds, &fakeMedClient{}, &fakePublisher{})

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 100})
		require.NoError(t, err)
		assert.Empty(t, refunds.created)

		// С контактом для выплаты возврат создается
		store2 := newFakeAppointmentStore(appt)
		refunds2 := &fakeRefundStore{}
		svc2 := newTestService(store2, refunds2, &fakeMedClient{}, &fakePublisher{})

		phone := "+63-900-000-0000"
		err = svc2.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
			UserID:             100,
			RefundContactPhone: &phone,
		})
		require.NoError(t, err)
		require.Len(t, refunds2.created, 1)
		assert.Equal(t, &phone, refunds2.created[0].ContactPhone)
	})

	t.Run("terminal appointment cannot be cancelled", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusDone, domain.PaymentPaid))
		svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 100})
		assert.ErrorIs(t, err, ErrCannotCancel)
	})

	t.Run("client cannot cancel someone else's appointment", func(t *testing.T) {
		store := newFakeAppointmentStore(gcashAppointment(domain.StatusConfirmed, domain.PaymentPaid))
		svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

		err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 200})
		assert.ErrorIs(t, err, ErrAccessDenied)

		// Персонал - может
		err = svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 200, IsStaff: true})
		assert.NoError(t, err)
	})
}

// staleReadStore отдаёт зафиксированный снапшот на чтение: моделирует
// конкурирующие отмены, обе прочитавшие ещё не отменённую запись
type staleReadStore struct {
	*fakeAppointmentStore
	snapshot domain.Appointment
}

func (s *staleReadStore) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	copied := s.snapshot
	return &copied, nil
}

func TestCancel_RacingCancelsCreateSingleRefund(t *testing.T) {
	// Обе отмены проходят предварительную проверку по старому снапшоту,
	// но условная запись пропускает только первую - заявка на возврат одна
	appt := gcashAppointment(domain.StatusConfirmed, domain.PaymentPaid)
	store := &staleReadStore{fakeAppointmentStore: newFakeAppointmentStore(appt), snapshot: *appt}
	refunds := &fakeRefundStore{}
	svc := NewService(store, refunds, &fakeMedClient{}, &fakePublisher{}, fakeTxManager{}, noopLogger{})

	req := &models.CancelAppointmentRequest{UserID: 100, CancellationReason: "client request"}

	err := svc.Cancel(context.Background(), 1, req)
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), 1, req)
	assert.ErrorIs(t, err, ErrCannotCancel)

	require.Len(t, refunds.created, 1)
	assert.Equal(t, float64(300), refunds.created[0].Amount)
}

func TestCancel_DoesNotOverwriteCompletedVisit(t *testing.T) {
	// Отмена, проигравшая гонку завершению приёма, не перетирает статус done
	appt := gcashAppointment(domain.StatusConfirmed, domain.PaymentPaid)
	store := &staleReadStore{fakeAppointmentStore: newFakeAppointmentStore(appt), snapshot: *appt}
	refunds := &fakeRefundStore{}
	svc := NewService(store, refunds, &fakeMedClient{}, &fakePublisher{}, fakeTxManager{}, noopLogger{})

	require.NoError(t, store.UpdateStatus(context.Background(), 1, domain.StatusDone, domain.PaymentPaid))

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 100})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Empty(t, refunds.created)

	stored, err := store.fakeAppointmentStore.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, stored.Status)
}

func TestGetByID_CancelledShowsRefundState(t *testing.T) {
	appt := gcashAppointment(domain.StatusConfirmed, domain.PaymentPaid)
	store := newFakeAppointmentStore(appt)
	refunds := &fakeRefundStore{}
	svc := newTestService(store, refunds, &fakeMedClient{}, &fakePublisher{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{
		UserID:             100,
		CancellationReason: "travel plans changed",
	})
	require.NoError(t, err)

	resp, err := svc.GetByID(context.Background(), 1, 100, false)
	require.NoError(t, err)
	require.NotNil(t, resp.Refund)
	assert.Equal(t, float64(300), resp.Refund.Amount)
	assert.Equal(t, "pending", resp.Refund.Status)
}

func TestGetByID_CancelledWithoutRefund(t *testing.T) {
	// Неоплаченная отмена: возврата нет, карточка отдаётся без него
	appt := gcashAppointment(domain.StatusAwaitingPayment, domain.PaymentUnpaid)
	store := newFakeAppointmentStore(appt)
	svc := newTestService(store, &fakeRefundStore{}, &fakeMedClient{}, &fakePublisher{})

	err := svc.Cancel(context.Background(), 1, &models.CancelAppointmentRequest{UserID: 100})
	require.NoError(t, err)

	resp, err := svc.GetByID(context.Background(), 1, 100, false)
	require.NoError(t, err)
	assert.Nil(t, resp.Refund)
}

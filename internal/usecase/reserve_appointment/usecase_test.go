package reserve_appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/internal/infra/events"
	"github.com/BlackLex29/RLfursure-sub000/internal/integrations/petregistry"
)

// noopLogger логгер-заглушка для тестов
type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// fixedTimeProvider детерминированное время для тестов
type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

// fakeTxManager сериализует транзакции мьютексом, имитируя serializable изоляцию
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type slotKey struct {
	date string
	slot domain.TimeSlot
}

// fakeAppointmentRepo in-memory репозиторий записей
type fakeAppointmentRepo struct {
	mu     sync.Mutex
	nextID int64
	bySlot map[slotKey][]*domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		nextID: 1,
		bySlot: make(map[slotKey][]*domain.Appointment),
	}
}

func (r *fakeAppointmentRepo) key(date time.Time, slot domain.TimeSlot) slotKey {
	return slotKey{date: date.Format(domain.DateFormat), slot: slot}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	appt.ID = r.nextID
	r.nextID++
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt

	k := r.key(appt.VisitDate, appt.TimeSlot)
	r.bySlot[k] = append(r.bySlot[k], appt)
	return appt, nil
}

func (r *fakeAppointmentRepo) GetActiveBySlot(_ context.Context, date time.Time, slot domain.TimeSlot) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var active []*domain.Appointment
	for _, appt := range r.bySlot[r.key(date, slot)] {
		if appt.IsActive() {
			active = append(active, appt)
		}
	}
	return active, nil
}

// fakeUnavailabilityRepo in-memory репозиторий дней недоступности
type fakeUnavailabilityRepo struct {
	days []*domain.UnavailabilityDay
}

func (r *fakeUnavailabilityRepo) GetDaysByDate(context.Context, time.Time) ([]*domain.UnavailabilityDay, error) {
	return r.days, nil
}

// fakePetClient клиент реестра питомцев с фиксированными ответами
type fakePetClient struct {
	pet *petregistry.Pet
	err error
}

func (c *fakePetClient) GetPetWithGracefulDegradation(context.Context, int64) (*petregistry.Pet, error) {
	return c.pet, c.err
}

// fakePublisher собирает опубликованные события
type fakePublisher struct {
	mu     sync.Mutex
	events []events.AppointmentEvent
}

func (p *fakePublisher) PublishAppointmentEvent(_ context.Context, event events.AppointmentEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *fakePublisher) PublishStaffNotification(context.Context, string, string, ...interface{}) {}

func newTestUseCase(repo *fakeAppointmentRepo, unavail *fakeUnavailabilityRepo, pets *fakePetClient, pub *fakePublisher) *UseCase {
	uc := NewUseCase(repo, unavail, pets, pub, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)}
	return uc
}

func validRequest() *Request {
	return &Request{
		ClientID:      100,
		PetID:         5,
		VisitDate:     time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		TimeSlot:      "8:00 AM - 8:30 AM",
		Service:       domain.ServiceCheckup,
		PaymentMethod: domain.PaymentCash,
	}
}

func ownedPet() *petregistry.Pet {
	species := "dog"
	return &petregistry.Pet{ID: 5, OwnerID: 100, Name: "Bruno", Species: &species}
}

func TestExecute_CashHappyPath(t *testing.T) {
	repo := newFakeAppointmentRepo()
	pub := &fakePublisher{}
	uc := newTestUseCase(repo, &fakeUnavailabilityRepo{}, &fakePetClient{pet: ownedPet()}, pub)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, string(domain.PaymentPaid), resp.PaymentStatus)
	assert.Equal(t, "Bruno", resp.PetName)
	assert.Equal(t, float64(300), resp.ServicePrice)

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.EventAppointmentCreated, pub.events[0].Type)
	assert.Equal(t, resp.ID, pub.events[0].AppointmentID)
}

func TestExecute_GCashInitialStates(t *testing.T) {
	// Отложенная оплата стартует в ожидании проверки независимо от того,
	// приложен ли номер перевода при бронировании
	t.Run("without reference", func(t *testing.T) {
		uc := newTestUseCase(newFakeAppointmentRepo(), &fakeUnavailabilityRepo{}, &fakePetClient{pet: ownedPet()}, &fakePublisher{})

		req := validRequest()
		req.PaymentMethod = domain.PaymentGCash

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusAwaitingVerification), resp.Status)
		assert.Equal(t, string(domain.PaymentAwaitingVerification), resp.PaymentStatus)
	})

	t.Run("with reference", func(t *testing.T) {
		uc := newTestUseCase(newFakeAppointmentRepo(), &fakeUnavailabilityRepo{}, &fakePetClient{pet: ownedPet()}, &fakePublisher{})

		req := validRequest()
		req.PaymentMethod = domain.PaymentGCash
		reference := "GC-123456"
		req.PaymentReference = &reference

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusAwaitingVerification), resp.Status)
		assert.Equal(t, string(domain.PaymentAwaitingVerification), resp.PaymentStatus)
	})
}

func TestExecute_ConcurrentSameSlot_ExactlyOneWinner(t *testing.T) {
	repo := newFakeAppointmentRepo()
	uc := newTestUseCase(repo, &fakeUnavailabilityRepo{}, &fakePetClient{pet: ownedPet()}, &fakePublisher{})

	const workers = 20

	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest())
			results <- err
		}()
	}

	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, ErrSlotTaken):
			lost++
		}
	}

	assert.Equal(t, 1, won, "exactly one booking must win the slot")
	assert.Equal(t, workers-1, lost)

	active, err := repo.GetActiveBySlot(context.Background(), validRequest().VisitDate, validRequest().TimeSlot)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestExecute_SlotBlockedByLeave(t *testing.T) {
	unavail := &fakeUnavailabilityRepo{
		days: []*domain.UnavailabilityDay{{RecordID: 1, VeterinarianID: 7, IsAllDay: true}},
	}
	uc := newTestUseCase(newFakeAppointmentRepo(), unavail, &fakePetClient{pet: ownedPet()}, &fakePublisher{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotBlockedByLeave)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeUnavailabilityRepo{}, &fakePetClient{pet: ownedPet()}, &fakePublisher{})

	req := validRequest()
	req.VisitDate = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_PetOwnership(t *testing.T) {
	t.Run("pet not found", func(t *testing.T) {
		uc := newTestUseCase(newFakeAppointmentRepo(), &fakeUnavailabilityRepo{},
			&fakePetClient{err: petregistry.ErrPetNotFound}, &fakePublisher{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPetNotFound)
	})

	t.Run("pet owned by someone else", func(t *testing.T) {
		pet := ownedPet()
		pet.OwnerID = 999
		uc := newTestUseCase(newFakeAppointmentRepo(), &fakeUnavailabilityRepo{}, &fakePetClient{pet: pet}, &fakePublisher{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPetNotOwned)
	})

	t.Run("registry degraded books without snapshot", func(t *testing.T) {
		uc := newTestUseCase(newFakeAppointmentRepo(), &fakeUnavailabilityRepo{},
			&fakePetClient{err: fmt.Errorf("%w: timeout", petregistry.ErrServiceDegraded)}, &fakePublisher{})

		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)
		assert.Empty(t, resp.PetName)
		assert.Nil(t, resp.PetSpecies)
	})
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(newFakeAppointmentRepo(), &fakeUnavailabilityRepo{}, &fakePetClient{pet: ownedPet()}, &fakePublisher{})

	req := validRequest()
	req.TimeSlot = "12:00 PM - 12:30 PM" // обеденный перерыв
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Service = "haircut"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	reference := "GC-1"
	req.PaymentReference = &reference // референс при наличной оплате
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

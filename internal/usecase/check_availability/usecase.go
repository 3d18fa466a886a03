package check_availability

import (
	"context"
	"fmt"

	"github.com/BlackLex29/RLfursure-sub000/internal/domain"
	"github.com/BlackLex29/RLfursure-sub000/pkg/ptr"
)

// UseCase use case проверки доступности слотов на день
type UseCase struct {
	appointmentRepo    AppointmentRepository
	unavailabilityRepo UnavailabilityRepository
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	unavailabilityRepo UnavailabilityRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:    appointmentRepo,
		unavailabilityRepo: unavailabilityRepo,
		logger:             logger,
	}
}

// Execute возвращает состояние каждого слота каталога на запрошенную дату
// Чтение не блокирует записи: расписание может измениться между ответом
// и попыткой бронирования, финальную проверку делает оркестратор
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckAvailability: date=%s", req.Date.Format(domain.DateFormat))

	// 1. Дни недоступности на дату
	days, err := uc.unavailabilityRepo.GetDaysByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get unavailability days: %v", err)
		return nil, fmt.Errorf("%w: failed to get unavailability days: %v", ErrInternal, err)
	}

	// 2. Активные записи на дату
	appointments, err := uc.appointmentRepo.GetWithFilter(ctx, domain.ScheduleFilter{
		StartDate:        ptr.Ptr(req.Date),
		EndDate:          ptr.Ptr(req.Date),
		IncludeCancelled: false,
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 3. Сводим состояние слотов
	slots, err := resolveSlots(days, appointments)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to resolve slots: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve slots: %v", ErrInternal, err)
	}

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}

package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akimovs/TRS-TableService/internal/allocation"
	"github.com/akimovs/TRS-TableService/internal/domain"
	ruleRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/rule"
	"github.com/akimovs/TRS-TableService/pkg/types"
)

// UseCase use case получения доступных слотов на день
type UseCase struct {
	ruleRepo     RuleRepository
	tableRepo    TableRepository
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ruleRepo RuleRepository,
	tableRepo TableRepository,
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		ruleRepo:     ruleRepo,
		tableRepo:    tableRepo,
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов.
// Закрытый день, прошедшая дата и отсутствие часов работы - не ошибки:
// возвращается пустой список слотов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s, party=%d, area=%v",
		req.Date.Format(domain.DateFormat), req.PartySize, req.Area)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	empty := &Response{Date: req.Date, Slots: []Slot{}}

	// 2. Прошедшая дата - пустой результат
	if isDateInPast(req.Date, now) {
		return empty, nil
	}

	// 3. Активное правило рассадки; без настроенного правила действуют
	// значения по умолчанию (90/15/0/0)
	rule, err := uc.ruleRepo.GetActive(ctx)
	if err != nil {
		if !errors.Is(err, ruleRepo.ErrRuleNotFound) {
			uc.logger.Error("GetAvailability: failed to get reservation rule: %v", err)
			return nil, fmt.Errorf("%w: failed to get reservation rule: %v", ErrInternal, err)
		}
		rule = domain.DefaultRule()
	}

	// 4. Эффективное расписание на дату: переопределение даты
	// приоритетнее недельного расписания
	weekly, err := uc.scheduleRepo.GetWeeklyHours(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get weekly hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekly hours: %v", ErrInternal, err)
	}

	special, err := uc.scheduleRepo.GetSpecialForDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get special hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get special hours: %v", ErrInternal, err)
	}

	schedule := domain.ResolveDaySchedule(req.Date, weekly, special)
	if !schedule.IsOpen {
		return empty, nil
	}

	// 5. Генерируем времена слотов
	slotTimes := generateSlotTimes(schedule, rule)
	if len(slotTimes) == 0 {
		return empty, nil
	}

	// 6. Загружаем столы, занятость и блэкауты одним окном на весь день
	tables, err := uc.tableRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list tables: %v", err)
		return nil, fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
	}

	dayFrom := allocation.WindowForRule(slotTimes[0].At(req.Date), rule).StartAt
	dayTo := allocation.WindowForRule(slotTimes[len(slotTimes)-1].At(req.Date), rule).EndAt

	occupying, err := uc.bookingRepo.ListOccupyingInWindow(ctx, dayFrom, dayTo, now)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list occupying bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list occupying bookings: %v", ErrInternal, err)
	}

	blackouts, err := uc.scheduleRepo.ListBlackoutsInWindow(ctx, dayFrom, dayTo)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to list blackouts: %v", ErrInternal, err)
	}

	// 7. Оцениваем каждый слот
	slots := make([]Slot, 0, len(slotTimes))
	for _, slotTime := range slotTimes {
		appointmentAt := slotTime.At(req.Date)

		// Сегодняшние уже прошедшие времена не предлагаем
		if appointmentAt.Before(now) {
			continue
		}

		slots = append(slots, uc.evaluateSlot(slotTime, appointmentAt, rule, req, tables, occupying, blackouts))
	}

	return &Response{Date: req.Date, Slots: slots}, nil
}

// evaluateSlot оценивает один слот: блэкауты, лимит гостей, подбор столов.
// Все проверки пересечений работают по буферизованному окну занятости,
// а не по сырому времени брони.
func (uc *UseCase) evaluateSlot(
	slotTime types.TimeString,
	appointmentAt time.Time,
	rule *domain.ReservationRule,
	req *Request,
	tables []*domain.Table,
	occupying []*domain.Booking,
	blackouts []*domain.BlackoutSlot,
) Slot {
	window := allocation.WindowForRule(appointmentAt, rule)
	slot := Slot{Time: slotTime}

	if isBlackedOut(window, blackouts) {
		return slot
	}

	overlapping := overlappingBookings(window, occupying)
	if exceedsCoversCap(rule, req.PartySize, overlapping) {
		return slot
	}

	busy := busyTableIDs(window, occupying)

	if req.Area != nil {
		picked := allocation.PickTables(freeCandidates(tables, busy, req.Area), req.PartySize)
		slot.Available = picked != nil
		return slot
	}

	suggested, ok := pickBestArea(tables, busy, req.PartySize)
	if ok {
		slot.Available = true
		slot.SuggestedArea = suggested
	}

	return slot
}

// isDateInPast возвращает true, если дата раньше сегодняшней
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

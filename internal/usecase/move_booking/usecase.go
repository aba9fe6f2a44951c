package move_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akimovs/TRS-TableService/internal/allocation"
	"github.com/akimovs/TRS-TableService/internal/domain"
	bookingRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/booking"
	ruleRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/rule"
	tableRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/table"
)

// UseCase use case переноса бронирования администратором на другое
// время и стол
type UseCase struct {
	bookingRepo  BookingRepository
	tableRepo    TableRepository
	ruleRepo     RuleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	tableRepo TableRepository,
	ruleRepo RuleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		tableRepo:    tableRepo,
		ruleRepo:     ruleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case переноса.
// Конфликтующие аллокации целевого стола блокируются FOR UPDATE NOWAIT:
// проверка "стол свободен" и перенос выполняются под одной блокировкой,
// а занятая конкурентом блокировка сразу возвращает ErrConflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MoveBooking: booking=%d, table=%d, at=%s",
		req.BookingID, req.TableID, req.AppointmentAt.Format(time.RFC3339))

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("MoveBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверки без блокировок: бронирование и целевой стол должны
	// существовать, стол - вмещать партию. Обреченный запрос отваливается
	// здесь, не открывая serializable транзакцию.
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("MoveBooking: booking=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("MoveBooking: booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	table, err := uc.tableRepo.GetByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			uc.logger.Warn("MoveBooking: table=%d not found", req.TableID)
			return nil, ErrTableNotFound
		}
		uc.logger.Error("MoveBooking: booking=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get table: %v", ErrInternal, err)
	}

	if !table.Active {
		uc.logger.Warn("MoveBooking: table=%d is inactive", req.TableID)
		return nil, ErrTableNotFound
	}

	if !table.CanSeat(booking.PartySize) {
		uc.logger.Warn("MoveBooking: table=%d capacity=%d cannot seat party=%d",
			table.ID, table.Capacity, booking.PartySize)
		return nil, ErrCapacityExceeded
	}

	var result *Response

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3. Подчищаем просроченные холды, чтобы их аллокации
		// не считались конфликтами
		if _, err := uc.bookingRepo.SweepExpiredHolds(txCtx, now); err != nil {
			return fmt.Errorf("%w: failed to sweep expired holds: %v", ErrInternal, err)
		}

		// 4. Перечитываем состояние под транзакцией: конкурентная отмена
		// или подтверждение могли успеть раньше
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if !booking.CanBeCancelled() || booking.IsHoldExpired(now) {
			return ErrAlreadyProcessed
		}

		// 5. Окно занятости на новом времени
		rule, err := uc.ruleRepo.GetActive(txCtx)
		if err != nil {
			if !errors.Is(err, ruleRepo.ErrRuleNotFound) {
				return fmt.Errorf("%w: failed to get reservation rule: %v", ErrInternal, err)
			}
			rule = domain.DefaultRule()
		}

		window := allocation.WindowForRule(req.AppointmentAt, rule)

		// 6. Блокируем конфликтующие аллокации целевого стола
		conflicts, err := uc.bookingRepo.LockConflictingAllocations(
			txCtx, req.TableID, window.StartAt, window.EndAt, booking.ID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrAllocationConflict) {
				return ErrConflict
			}
			return fmt.Errorf("%w: failed to lock allocations: %v", ErrInternal, err)
		}

		if conflicts > 0 {
			return ErrConflict
		}

		// 7. Переносим: старые аллокации долой, новое время, новая аллокация
		if err := uc.bookingRepo.DeleteAllocations(txCtx, booking.ID); err != nil {
			return fmt.Errorf("%w: failed to delete old allocations: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.UpdateAppointment(txCtx, booking.ID, req.AppointmentAt); err != nil {
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		allocs := []domain.TableAllocation{{
			TableID: req.TableID,
			StartAt: window.StartAt,
			EndAt:   window.EndAt,
		}}

		if err := uc.bookingRepo.InsertAllocations(txCtx, booking.ID, allocs); err != nil {
			if errors.Is(err, bookingRepo.ErrAllocationConflict) {
				return ErrConflict
			}
			return fmt.Errorf("%w: failed to insert new allocation: %v", ErrInternal, err)
		}

		result = &Response{
			BookingID:     booking.ID,
			AppointmentAt: req.AppointmentAt,
			TableID:       req.TableID,
			WindowStart:   window.StartAt,
			WindowEnd:     window.EndAt,
		}

		return nil
	})

	if err != nil {
		if bookingRepo.IsConflict(err) {
			uc.logger.Warn("MoveBooking: booking=%d lost concurrency race: %v", req.BookingID, err)
			return nil, ErrConflict
		}
		switch {
		case errors.Is(err, ErrBookingNotFound),
			errors.Is(err, ErrAlreadyProcessed),
			errors.Is(err, ErrConflict):
			uc.logger.Warn("MoveBooking: booking=%d: %v", req.BookingID, err)
		default:
			uc.logger.Error("MoveBooking: booking=%d: %v", req.BookingID, err)
		}
		return nil, err
	}

	uc.logger.Info("MoveBooking: booking=%d moved to table=%d at %s",
		result.BookingID, result.TableID, result.AppointmentAt.Format(time.RFC3339))

	return result, nil
}

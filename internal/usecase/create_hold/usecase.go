package create_hold

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akimovs/TRS-TableService/internal/allocation"
	"github.com/akimovs/TRS-TableService/internal/domain"
	bookingRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/booking"
	ruleRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/rule"
)

// UseCase use case создания холда: временной брони столов,
// ожидающей подтверждения гостем
type UseCase struct {
	bookingRepo  BookingRepository
	ruleRepo     RuleRepository
	tableRepo    TableRepository
	txManager    TransactionManager
	holdTTL      time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	ruleRepo RuleRepository,
	tableRepo TableRepository,
	txManager TransactionManager,
	holdTTL time.Duration,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		ruleRepo:     ruleRepo,
		tableRepo:    tableRepo,
		txManager:    txManager,
		holdTTL:      holdTTL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания холда.
// Вся работа с БД идет в сериализуемой транзакции; exclusion constraint
// на booking_tables остается последней линией защиты от двойной посадки -
// его срабатывание транслируется в ErrConflict, а не в общую ошибку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateHold: at=%s, party=%d, area=%v",
		req.AppointmentAt.Format(time.RFC3339), req.PartySize, req.Area)

	now := uc.timeProvider.Now()

	// 1. Валидация входных данных
	if err := validateRequest(req, now); err != nil {
		uc.logger.Warn("CreateHold: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Ленивое истечение: подчищаем просроченные холды, чтобы их
		// аллокации не блокировали подбор
		swept, err := uc.bookingRepo.SweepExpiredHolds(txCtx, now)
		if err != nil {
			return fmt.Errorf("%w: failed to sweep expired holds: %v", ErrInternal, err)
		}
		if swept > 0 {
			uc.logger.Info("CreateHold: swept %d expired holds", swept)
		}

		// 3. Правило рассадки и окно занятости
		rule, err := uc.ruleRepo.GetActive(txCtx)
		if err != nil {
			if !errors.Is(err, ruleRepo.ErrRuleNotFound) {
				return fmt.Errorf("%w: failed to get reservation rule: %v", ErrInternal, err)
			}
			rule = domain.DefaultRule()
		}

		window := allocation.WindowForRule(req.AppointmentAt, rule)

		// 4. Свободные столы в окне
		tables, err := uc.tableRepo.ListActive(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to list tables: %v", ErrInternal, err)
		}

		occupying, err := uc.bookingRepo.ListOccupyingInWindow(txCtx, window.StartAt, window.EndAt, now)
		if err != nil {
			return fmt.Errorf("%w: failed to list occupying bookings: %v", ErrInternal, err)
		}

		busy := busyTableIDs(window, occupying)

		// 5. Подбор столов: сначала в предпочитаемой зоне, при неудаче
		// один повтор по всем зонам
		picked := allocation.PickTables(freeCandidates(tables, busy, req.Area), req.PartySize)
		if picked == nil && req.Area != nil {
			uc.logger.Info("CreateHold: no tables in area %s, retrying across all areas", *req.Area)
			picked = allocation.PickTables(freeCandidates(tables, busy, nil), req.PartySize)
		}

		if picked == nil {
			return ErrNoAvailability
		}

		// 6. Создаем холд вместе с аллокациями
		expiresAt := now.Add(uc.holdTTL)
		booking := &domain.Booking{
			AppointmentAt: req.AppointmentAt,
			PartySize:     req.PartySize,
			Area:          req.Area,
			Status:        domain.StatusPending,
			HoldExpiresAt: &expiresAt,
			Notes:         req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		allocs := make([]domain.TableAllocation, 0, len(picked))
		for _, tableID := range picked {
			allocs = append(allocs, domain.TableAllocation{
				TableID: tableID,
				StartAt: window.StartAt,
				EndAt:   window.EndAt,
			})
		}

		if err := uc.bookingRepo.InsertAllocations(txCtx, created.ID, allocs); err != nil {
			if errors.Is(err, bookingRepo.ErrAllocationConflict) {
				return ErrConflict
			}
			return fmt.Errorf("%w: failed to insert allocations: %v", ErrInternal, err)
		}

		result = &Response{
			BookingID: created.ID,
			ExpiresAt: expiresAt,
			TableIDs:  picked,
		}

		return nil
	})

	if err != nil {
		// Сериализационный сбой на коммите тоже означает проигранную гонку
		if bookingRepo.IsConflict(err) {
			uc.logger.Warn("CreateHold: lost concurrency race: %v", err)
			return nil, ErrConflict
		}
		if errors.Is(err, ErrNoAvailability) || errors.Is(err, ErrConflict) {
			uc.logger.Info("CreateHold: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateHold: transaction failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateHold: created booking id=%d, tables=%v, expires=%s",
		result.BookingID, result.TableIDs, result.ExpiresAt.Format(time.RFC3339))

	return result, nil
}

// busyTableIDs возвращает множество столов, занятых в окне
func busyTableIDs(window allocation.Window, bookings []*domain.Booking) map[int64]struct{} {
	busy := make(map[int64]struct{})
	for _, b := range bookings {
		for _, a := range b.Allocations {
			if a.Overlaps(window.StartAt, window.EndAt) {
				busy[a.TableID] = struct{}{}
			}
		}
	}
	return busy
}

// freeCandidates собирает свободные столы-кандидаты, опционально
// ограничиваясь одной зоной
func freeCandidates(tables []*domain.Table, busy map[int64]struct{}, area *domain.Area) []allocation.Candidate {
	candidates := make([]allocation.Candidate, 0, len(tables))
	for _, t := range tables {
		if _, taken := busy[t.ID]; taken {
			continue
		}
		if area != nil && t.Area != *area {
			continue
		}
		candidates = append(candidates, allocation.Candidate{
			ID:         t.ID,
			Capacity:   t.Capacity,
			MergeGroup: t.MergeGroup,
		})
	}
	return candidates
}

package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
	ruleRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/rule"
	"github.com/akimovs/TRS-TableService/internal/service/settings/models"
	"github.com/akimovs/TRS-TableService/pkg/types"
)

// Service сервис настроек бронирования: правило рассадки, часы работы,
// переопределения дат и блэкауты
type Service struct {
	ruleRepo     RuleRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	ruleRepo RuleRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:     ruleRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetRule возвращает действующее правило рассадки
// (настроенное или значения по умолчанию)
func (s *Service) GetRule(ctx context.Context) (*models.RuleResponse, error) {
	rule, err := s.ruleRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			return models.FromDomainRule(domain.DefaultRule()), nil
		}
		s.logger.Error("GetRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetRule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRule(rule), nil
}

// UpdateRule заменяет активное правило рассадки новым
func (s *Service) UpdateRule(ctx context.Context, req *models.RuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("UpdateRule: seat=%d, interval=%d, buffers=%d/%d",
		req.SeatDurationMinutes, req.SlotIntervalMinutes, req.BufferBeforeMinutes, req.BufferAfterMinutes)

	if err := validateRule(req); err != nil {
		s.logger.Warn("UpdateRule: validation failed: %v", err)
		return nil, err
	}

	rule := &domain.ReservationRule{
		SeatDurationMinutes: req.SeatDurationMinutes,
		SlotIntervalMinutes: req.SlotIntervalMinutes,
		BufferBeforeMinutes: req.BufferBeforeMinutes,
		BufferAfterMinutes:  req.BufferAfterMinutes,
		MaxCoversPerSlot:    req.MaxCoversPerSlot,
		DepositAmount:       req.DepositAmount,
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		rule, err = s.ruleRepo.Upsert(txCtx, rule)
		return err
	})
	if err != nil {
		s.logger.Error("UpdateRule: repository error: %v", err)
		return nil, fmt.Errorf("%w: UpdateRule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRule(rule), nil
}

// GetHours возвращает недельное расписание
func (s *Service) GetHours(ctx context.Context) (*models.HoursResponse, error) {
	hours, err := s.scheduleRepo.GetWeeklyHours(ctx)
	if err != nil {
		s.logger.Error("GetHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHours(hours), nil
}

// ReplaceHours полностью заменяет недельное расписание
func (s *Service) ReplaceHours(ctx context.Context, req *models.HoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("ReplaceHours: replacing weekly schedule with %d entries", len(req.Hours))

	hours := make([]*domain.OpeningHour, 0, len(req.Hours))
	seen := make(map[int]struct{}, len(req.Hours))

	for _, h := range req.Hours {
		if h.Weekday < 0 || h.Weekday > 6 {
			return nil, fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
		}
		if _, dup := seen[h.Weekday]; dup {
			return nil, fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, h.Weekday)
		}
		seen[h.Weekday] = struct{}{}

		openTime, closeTime, err := parseHours(h.OpenTime, h.CloseTime)
		if err != nil {
			return nil, err
		}

		hours = append(hours, &domain.OpeningHour{
			Weekday:   time.Weekday(h.Weekday),
			OpenTime:  openTime,
			CloseTime: closeTime,
		})
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.scheduleRepo.ReplaceWeeklyHours(txCtx, hours)
	})
	if err != nil {
		s.logger.Error("ReplaceHours: repository error: %v", err)
		return nil, fmt.Errorf("%w: ReplaceHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHours(hours), nil
}

// UpsertSpecialHours сохраняет переопределение расписания на дату
func (s *Service) UpsertSpecialHours(ctx context.Context, req *models.SpecialHoursRequest) error {
	s.logger.Info("UpsertSpecialHours: date=%s, closed=%v", req.Date.Format(domain.DateFormat), req.Closed)

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	special := &domain.SpecialHour{
		Date:   req.Date,
		Closed: req.Closed,
	}

	if !req.Closed {
		if req.OpenTime == nil || req.CloseTime == nil {
			return fmt.Errorf("%w: open and close times are required for an open day", ErrInvalidInput)
		}

		openTime, closeTime, err := parseHours(*req.OpenTime, *req.CloseTime)
		if err != nil {
			return err
		}

		special.OpenTime = &openTime
		special.CloseTime = &closeTime
	}

	if _, err := s.scheduleRepo.UpsertSpecial(ctx, special); err != nil {
		s.logger.Error("UpsertSpecialHours: repository error: %v", err)
		return fmt.Errorf("%w: UpsertSpecialHours - repository error: %v", ErrInternal, err)
	}

	return nil
}

// CreateBlackout закрывает произвольный интервал времени
func (s *Service) CreateBlackout(ctx context.Context, req *models.BlackoutRequest) (*models.BlackoutResponse, error) {
	s.logger.Info("CreateBlackout: [%s, %s)", req.StartAt.Format(time.RFC3339), req.EndAt.Format(time.RFC3339))

	if req.StartAt.IsZero() || req.EndAt.IsZero() || !req.StartAt.Before(req.EndAt) {
		return nil, fmt.Errorf("%w: blackout range must be a non-empty interval", ErrInvalidInput)
	}

	blackout := &domain.BlackoutSlot{
		StartAt: req.StartAt,
		EndAt:   req.EndAt,
		Reason:  req.Reason,
	}

	created, err := s.scheduleRepo.CreateBlackout(ctx, blackout)
	if err != nil {
		s.logger.Error("CreateBlackout: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlackout - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlackout(created), nil
}

// DeleteBlackout удаляет блэкаут
func (s *Service) DeleteBlackout(ctx context.Context, id int64) error {
	s.logger.Info("DeleteBlackout: id=%d", id)

	if err := s.scheduleRepo.DeleteBlackout(ctx, id); err != nil {
		s.logger.Error("DeleteBlackout: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBlackout - repository error: %v", ErrInternal, err)
	}

	return nil
}

// validateRule проверяет параметры правила рассадки
func validateRule(req *models.RuleRequest) error {
	if req.SeatDurationMinutes <= 0 {
		return fmt.Errorf("%w: seat duration must be positive", ErrInvalidInput)
	}
	if req.SlotIntervalMinutes <= 0 {
		return fmt.Errorf("%w: slot interval must be positive", ErrInvalidInput)
	}
	if req.BufferBeforeMinutes < 0 || req.BufferAfterMinutes < 0 {
		return fmt.Errorf("%w: buffers cannot be negative", ErrInvalidInput)
	}
	if req.MaxCoversPerSlot != nil && *req.MaxCoversPerSlot <= 0 {
		return fmt.Errorf("%w: covers cap must be positive", ErrInvalidInput)
	}
	if req.DepositAmount != nil && *req.DepositAmount < 0 {
		return fmt.Errorf("%w: deposit cannot be negative", ErrInvalidInput)
	}
	return nil
}

// parseHours разбирает пару "HH:MM" и проверяет, что открытие раньше закрытия
func parseHours(open, close string) (types.TimeString, types.TimeString, error) {
	openTime, err := types.NewTimeStringFromString(open)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid open time %q: %v", ErrInvalidInput, open, err)
	}

	closeTime, err := types.NewTimeStringFromString(close)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid close time %q: %v", ErrInvalidInput, close, err)
	}

	if !openTime.IsBefore(closeTime) {
		return "", "", fmt.Errorf("%w: open time must be before close time", ErrInvalidInput)
	}

	return openTime, closeTime, nil
}

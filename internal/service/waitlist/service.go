package waitlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
	waitlistRepo "github.com/akimovs/TRS-TableService/internal/infra/storage/waitlist"
	"github.com/akimovs/TRS-TableService/internal/service/waitlist/models"
)

// Service сервис листа ожидания
type Service struct {
	waitlistRepo WaitlistRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(waitlistRepo WaitlistRepository, logger Logger) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Join ставит гостя в лист ожидания на дату
func (s *Service) Join(ctx context.Context, req *models.JoinRequest) (*models.EntryResponse, error) {
	s.logger.Info("Join: date=%s, party=%d, email=%s",
		req.Date.Format(domain.DateFormat), req.PartySize, req.Email)

	entry, err := toDomainEntry(req, s.timeProvider.Now())
	if err != nil {
		s.logger.Warn("Join: validation failed: %v", err)
		return nil, err
	}

	created, err := s.waitlistRepo.Create(ctx, entry)
	if err != nil {
		s.logger.Error("Join: repository error: %v", err)
		return nil, fmt.Errorf("%w: Join - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntry(created), nil
}

// ListOpen возвращает открытые записи для персонала
func (s *Service) ListOpen(ctx context.Context) (*models.EntryListResponse, error) {
	entries, err := s.waitlistRepo.ListOpen(ctx, s.timeProvider.Now())
	if err != nil {
		s.logger.Error("ListOpen: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListOpen - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainEntryList(entries), nil
}

// Cancel закрывает запись по просьбе гостя
func (s *Service) Cancel(ctx context.Context, id int64) error {
	s.logger.Info("Cancel: cancelling waitlist entry id=%d", id)

	err := s.waitlistRepo.SetStatus(ctx, id, domain.WaitlistCancelled)
	if err != nil {
		if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			s.logger.Warn("Cancel: waitlist entry id=%d not found", id)
			return ErrEntryNotFound
		}
		s.logger.Error("Cancel: repository error for entry id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	return nil
}

// toDomainEntry валидирует запрос и строит domain модель
func toDomainEntry(req *models.JoinRequest, now time.Time) (*domain.WaitlistEntry, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateOnly := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, req.Date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	if req.PartySize < domain.MinPartySize || req.PartySize > domain.MaxPartySize {
		return nil, fmt.Errorf("%w: party size must be between %d and %d",
			ErrInvalidInput, domain.MinPartySize, domain.MaxPartySize)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	entry := &domain.WaitlistEntry{
		Date:      dateOnly,
		PartySize: req.PartySize,
		Email:     email,
		Name:      name,
		Status:    domain.WaitlistOpen,
	}

	if req.Area != nil {
		area := domain.Area(*req.Area)
		if !area.IsValid() {
			return nil, fmt.Errorf("%w: unknown area %q", ErrInvalidInput, *req.Area)
		}
		entry.Area = &area
	}

	return entry, nil
}

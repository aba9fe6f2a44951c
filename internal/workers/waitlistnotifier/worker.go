package waitlistnotifier

import (
	"context"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
	"github.com/akimovs/TRS-TableService/internal/usecase/get_availability"
)

// AvailabilityProvider интерфейс use case доступности
type AvailabilityProvider interface {
	Execute(ctx context.Context, req *get_availability.Request) (*get_availability.Response, error)
}

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	ListOpen(ctx context.Context, fromDate time.Time) ([]*domain.WaitlistEntry, error)
	MarkNotified(ctx context.Context, id int64, notifiedAt time.Time) error
}

// MailSender интерфейс почтового клиента
type MailSender interface {
	SendWaitlistSlotOpen(ctx context.Context, email, name, date string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Worker фоновый воркер листа ожидания: периодически перепроверяет
// доступность для открытых записей и уведомляет гостей об
// освободившихся слотах
type Worker struct {
	waitlistRepo WaitlistRepository
	availability AvailabilityProvider
	mailer       MailSender
	interval     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewWorker создает новый экземпляр воркера
func NewWorker(
	waitlistRepo WaitlistRepository,
	availability AvailabilityProvider,
	mailer MailSender,
	interval time.Duration,
	logger Logger,
) *Worker {
	return &Worker{
		waitlistRepo: waitlistRepo,
		availability: availability,
		mailer:       mailer,
		interval:     interval,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Start запускает цикл воркера; блокируется до отмены контекста
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("WaitlistNotifier: started with interval %s", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("WaitlistNotifier: stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick один проход воркера: закрывает устаревшие записи и проверяет
// доступность для остальных
func (w *Worker) Tick(ctx context.Context) {
	now := w.timeProvider.Now()

	expired, err := w.waitlistRepo.ExpireStale(ctx, now)
	if err != nil {
		w.logger.Error("WaitlistNotifier: failed to expire stale entries: %v", err)
	} else if expired > 0 {
		w.logger.Info("WaitlistNotifier: expired %d stale entries", expired)
	}

	entries, err := w.waitlistRepo.ListOpen(ctx, now)
	if err != nil {
		w.logger.Error("WaitlistNotifier: failed to list open entries: %v", err)
		return
	}

	for _, entry := range entries {
		w.processEntry(ctx, entry, now)
	}
}

// processEntry проверяет одну запись. Запись помечается уведомленной до
// отправки письма: двойное уведомление хуже пропущенного, а MarkNotified
// обновляет только открытые записи и тем самым исключает гонку воркеров.
func (w *Worker) processEntry(ctx context.Context, entry *domain.WaitlistEntry, now time.Time) {
	resp, err := w.availability.Execute(ctx, &get_availability.Request{
		Date:      entry.Date,
		PartySize: entry.PartySize,
		Area:      entry.Area,
	})
	if err != nil {
		w.logger.Error("WaitlistNotifier: availability check failed for entry id=%d: %v", entry.ID, err)
		return
	}

	hasSlot := false
	for _, slot := range resp.Slots {
		if slot.Available {
			hasSlot = true
			break
		}
	}

	if !hasSlot {
		return
	}

	if err := w.waitlistRepo.MarkNotified(ctx, entry.ID, now); err != nil {
		w.logger.Error("WaitlistNotifier: failed to mark entry id=%d notified: %v", entry.ID, err)
		return
	}

	if err := w.mailer.SendWaitlistSlotOpen(ctx, entry.Email, entry.Name, entry.Date.Format(domain.DateFormat)); err != nil {
		w.logger.Warn("WaitlistNotifier: failed to notify %s for entry id=%d: %v", entry.Email, entry.ID, err)
		return
	}

	w.logger.Info("WaitlistNotifier: notified %s about a freed slot on %s",
		entry.Email, entry.Date.Format(domain.DateFormat))
}

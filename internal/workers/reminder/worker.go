package reminder

import (
	"context"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListConfirmedForReminder(ctx context.Context, from, to time.Time) ([]*domain.Booking, error)
	MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// MailSender интерфейс почтового клиента
type MailSender interface {
	SendBookingReminder(ctx context.Context, email, name, appointmentAt string) error
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

// Worker фоновый воркер напоминаний: раз в интервал рассылает письма
// по завтрашним подтвержденным бронированиям, каждому не более одного раза
type Worker struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	mailer       MailSender
	interval     time.Duration
	timeProvider TimeProvider
	logger       Logger
}

// NewWorker создает новый экземпляр воркера
func NewWorker(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	mailer MailSender,
	interval time.Duration,
	logger Logger,
) *Worker {
	return &Worker{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
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

	w.logger.Info("Reminder: started with interval %s", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Reminder: stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick один проход воркера: напоминания по бронированиям на завтра
func (w *Worker) Tick(ctx context.Context) {
	now := w.timeProvider.Now()

	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, 1)

	bookings, err := w.bookingRepo.ListConfirmedForReminder(ctx, from, to)
	if err != nil {
		w.logger.Error("Reminder: failed to list bookings: %v", err)
		return
	}

	for _, booking := range bookings {
		w.remind(ctx, booking, now)
	}
}

// remind отправляет одно напоминание. Отметка reminder_sent_at ставится
// только после успешной отправки - неудавшееся письмо уйдет на следующем
// проходе.
func (w *Worker) remind(ctx context.Context, booking *domain.Booking, now time.Time) {
	if booking.CustomerID == nil {
		w.logger.Warn("Reminder: booking id=%d has no customer, skipping", booking.ID)
		return
	}

	customer, err := w.customerRepo.GetByID(ctx, *booking.CustomerID)
	if err != nil {
		w.logger.Error("Reminder: failed to get customer id=%d for booking id=%d: %v",
			*booking.CustomerID, booking.ID, err)
		return
	}

	err = w.mailer.SendBookingReminder(ctx, customer.Email, customer.Name,
		booking.AppointmentAt.Format(time.RFC3339))
	if err != nil {
		w.logger.Warn("Reminder: failed to send reminder for booking id=%d: %v", booking.ID, err)
		return
	}

	if err := w.bookingRepo.MarkReminderSent(ctx, booking.ID, now); err != nil {
		w.logger.Error("Reminder: failed to mark booking id=%d reminded: %v", booking.ID, err)
		return
	}

	w.logger.Info("Reminder: sent reminder for booking id=%d to %s", booking.ID, customer.Email)
}

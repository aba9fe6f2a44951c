package bookings

import (
	"context"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByManageToken(ctx context.Context, token string) (*domain.Booking, error)
	CancelAndFreeTables(ctx context.Context, id int64) error
	ListByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

// MailSender интерфейс почтового клиента
type MailSender interface {
	SendBookingCancelled(ctx context.Context, email, name, appointmentAt string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package confirm_booking

import (
	"context"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SetConfirmed(ctx context.Context, id int64, customerID int64, manageToken string, notes *string) error
}

// CustomerRepository интерфейс репозитория клиентов
type CustomerRepository interface {
	UpsertByEmail(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
}

// MailSender интерфейс почтового клиента
type MailSender interface {
	SendBookingConfirmed(ctx context.Context, email, name, appointmentAt, manageToken string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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

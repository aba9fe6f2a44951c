package create_hold

import (
	"context"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SweepExpiredHolds(ctx context.Context, now time.Time) (int64, error)
	ListOccupyingInWindow(ctx context.Context, from, to, now time.Time) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	InsertAllocations(ctx context.Context, bookingID int64, allocs []domain.TableAllocation) error
}

// RuleRepository интерфейс репозитория правил рассадки
type RuleRepository interface {
	GetActive(ctx context.Context) (*domain.ReservationRule, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	ListActive(ctx context.Context) ([]*domain.Table, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

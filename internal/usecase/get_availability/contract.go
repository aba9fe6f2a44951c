package get_availability

import (
	"context"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// RuleRepository интерфейс репозитория правил рассадки
type RuleRepository interface {
	GetActive(ctx context.Context) (*domain.ReservationRule, error)
}

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	ListActive(ctx context.Context) ([]*domain.Table, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeeklyHours(ctx context.Context) ([]*domain.OpeningHour, error)
	GetSpecialForDate(ctx context.Context, date time.Time) (*domain.SpecialHour, error)
	ListBlackoutsInWindow(ctx context.Context, from, to time.Time) ([]*domain.BlackoutSlot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListOccupyingInWindow(ctx context.Context, from, to, now time.Time) ([]*domain.Booking, error)
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

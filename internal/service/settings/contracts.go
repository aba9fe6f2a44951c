package settings

import (
	"context"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// RuleRepository интерфейс репозитория правил рассадки
type RuleRepository interface {
	GetActive(ctx context.Context) (*domain.ReservationRule, error)
	Upsert(ctx context.Context, rule *domain.ReservationRule) (*domain.ReservationRule, error)
}

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	GetWeeklyHours(ctx context.Context) ([]*domain.OpeningHour, error)
	ReplaceWeeklyHours(ctx context.Context, hours []*domain.OpeningHour) error
	UpsertSpecial(ctx context.Context, special *domain.SpecialHour) (*domain.SpecialHour, error)
	ListBlackoutsInWindow(ctx context.Context, from, to time.Time) ([]*domain.BlackoutSlot, error)
	CreateBlackout(ctx context.Context, blackout *domain.BlackoutSlot) (*domain.BlackoutSlot, error)
	DeleteBlackout(ctx context.Context, id int64) error
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

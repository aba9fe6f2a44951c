package tables

import (
	"context"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// TableRepository интерфейс репозитория столов
type TableRepository interface {
	Create(ctx context.Context, table *domain.Table) (*domain.Table, error)
	GetByID(ctx context.Context, id int64) (*domain.Table, error)
	ListAll(ctx context.Context) ([]*domain.Table, error)
	Update(ctx context.Context, table *domain.Table) error
	SetActive(ctx context.Context, id int64, active bool) error
	CountFutureAllocations(ctx context.Context, tableID int64, now time.Time) (int, error)
	CountAllocations(ctx context.Context, tableID int64) (int, error)
	Delete(ctx context.Context, id int64) error
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

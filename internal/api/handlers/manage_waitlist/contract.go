package manage_waitlist

import (
	"context"

	"github.com/akimovs/TRS-TableService/internal/service/waitlist/models"
)

// WaitlistService интерфейс сервиса листа ожидания
type WaitlistService interface {
	ListOpen(ctx context.Context) (*models.EntryListResponse, error)
	Cancel(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package join_waitlist

import (
	"context"

	"github.com/akimovs/TRS-TableService/internal/service/waitlist/models"
)

// WaitlistService интерфейс сервиса листа ожидания
type WaitlistService interface {
	Join(ctx context.Context, req *models.JoinRequest) (*models.EntryResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package manage_cancel

import (
	"context"
)

// BookingsService интерфейс сервиса бронирований
type BookingsService interface {
	CancelByManageToken(ctx context.Context, token string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package move_booking

import (
	"context"

	moveBooking "github.com/akimovs/TRS-TableService/internal/usecase/move_booking"
)

// MoveBookingUseCase интерфейс use case переноса бронирования
type MoveBookingUseCase interface {
	Execute(ctx context.Context, req *moveBooking.Request) (*moveBooking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

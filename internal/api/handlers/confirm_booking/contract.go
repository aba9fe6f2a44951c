package confirm_booking

import (
	"context"

	confirmBooking "github.com/akimovs/TRS-TableService/internal/usecase/confirm_booking"
)

// ConfirmBookingUseCase интерфейс use case подтверждения холда
type ConfirmBookingUseCase interface {
	Execute(ctx context.Context, req *confirmBooking.Request) (*confirmBooking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

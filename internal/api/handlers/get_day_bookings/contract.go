package get_day_bookings

import (
	"context"
	"time"

	"github.com/akimovs/TRS-TableService/internal/service/bookings/models"
)

// BookingsService интерфейс сервиса бронирований
type BookingsService interface {
	ListByDate(ctx context.Context, date time.Time) (*models.BookingListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

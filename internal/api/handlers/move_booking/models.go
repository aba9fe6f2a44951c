package move_booking

import (
	"fmt"
	"time"

	moveBooking "github.com/akimovs/TRS-TableService/internal/usecase/move_booking"
)

// Request HTTP запрос на перенос бронирования
type Request struct {
	DateTime string `json:"dateTime"` // ISO8601
	TableID  int64  `json:"tableId"`
}

// Response HTTP ответ с перенесенным бронированием
type Response struct {
	OK          bool      `json:"ok"`
	BookingID   int64     `json:"bookingId"`
	DateTime    time.Time `json:"dateTime"`
	TableID     int64     `json:"tableId"`
	WindowStart time.Time `json:"windowStart"`
	WindowEnd   time.Time `json:"windowEnd"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *Request) ToUseCaseRequest(bookingID int64) (*moveBooking.Request, error) {
	appointmentAt, err := time.Parse(time.RFC3339, r.DateTime)
	if err != nil {
		return nil, fmt.Errorf("invalid dateTime: %w", err)
	}

	return &moveBooking.Request{
		BookingID:     bookingID,
		AppointmentAt: appointmentAt,
		TableID:       r.TableID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *moveBooking.Response) *Response {
	return &Response{
		OK:          true,
		BookingID:   resp.BookingID,
		DateTime:    resp.AppointmentAt,
		TableID:     resp.TableID,
		WindowStart: resp.WindowStart,
		WindowEnd:   resp.WindowEnd,
	}
}

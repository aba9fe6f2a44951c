package create_hold

import (
	"fmt"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
	createHold "github.com/akimovs/TRS-TableService/internal/usecase/create_hold"
)

// Request HTTP запрос на создание холда
type Request struct {
	DateTime  string  `json:"dateTime"` // ISO8601
	PartySize int     `json:"partySize"`
	Area      *string `json:"area,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

// Response HTTP ответ с созданным холдом
type Response struct {
	OK        bool      `json:"ok"`
	BookingID int64     `json:"bookingId"`
	ExpiresAt time.Time `json:"expiresAt"`
	TableIDs  []int64   `json:"tableIds"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *Request) ToUseCaseRequest() (*createHold.Request, error) {
	appointmentAt, err := time.Parse(time.RFC3339, r.DateTime)
	if err != nil {
		return nil, fmt.Errorf("invalid dateTime: %w", err)
	}

	req := &createHold.Request{
		AppointmentAt: appointmentAt,
		PartySize:     r.PartySize,
		Notes:         r.Notes,
	}

	if r.Area != nil {
		area := domain.Area(*r.Area)
		req.Area = &area
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createHold.Response) *Response {
	return &Response{
		OK:        true,
		BookingID: resp.BookingID,
		ExpiresAt: resp.ExpiresAt,
		TableIDs:  resp.TableIDs,
	}
}

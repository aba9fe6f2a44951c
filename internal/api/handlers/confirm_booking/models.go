package confirm_booking

import (
	"time"

	confirmBooking "github.com/akimovs/TRS-TableService/internal/usecase/confirm_booking"
)

// Request HTTP запрос на подтверждение холда
type Request struct {
	Name             string  `json:"name"`
	Surname          string  `json:"surname"`
	Email            string  `json:"email"`
	Phone            *string `json:"phone,omitempty"`
	Notes            *string `json:"notes,omitempty"`
	ConsentMarketing bool    `json:"consentMarketing"`
	ConsentProfiling bool    `json:"consentProfiling"`
	ConsentPrivacy   bool    `json:"consentPrivacy"`
}

// Response HTTP ответ с подтвержденным бронированием
type Response struct {
	OK            bool      `json:"ok"`
	BookingID     int64     `json:"bookingId"`
	ManageToken   string    `json:"manageToken"`
	AppointmentAt time.Time `json:"appointmentAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *Request) ToUseCaseRequest(bookingID int64) *confirmBooking.Request {
	return &confirmBooking.Request{
		BookingID:        bookingID,
		Name:             r.Name,
		Surname:          r.Surname,
		Email:            r.Email,
		Phone:            r.Phone,
		Notes:            r.Notes,
		ConsentMarketing: r.ConsentMarketing,
		ConsentProfiling: r.ConsentProfiling,
		ConsentPrivacy:   r.ConsentPrivacy,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *confirmBooking.Response) *Response {
	return &Response{
		OK:            true,
		BookingID:     resp.BookingID,
		ManageToken:   resp.ManageToken,
		AppointmentAt: resp.AppointmentAt,
	}
}

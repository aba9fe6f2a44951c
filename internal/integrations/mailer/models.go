package mailer

// Message запрос на отправку письма в почтовый сервис
type Message struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Params   map[string]string `json:"params,omitempty"`
}

// Шаблоны писем на стороне почтового сервиса
const (
	TemplateBookingConfirmed = "booking_confirmed"
	TemplateBookingCancelled = "booking_cancelled"
	TemplateBookingReminder  = "booking_reminder"
	TemplateWaitlistSlotOpen = "waitlist_slot_open"
)

// ErrorResponse модель ошибки от почтового сервиса
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

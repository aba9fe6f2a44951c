package move_booking

import "time"

// Request модель запроса на перенос бронирования
type Request struct {
	BookingID     int64     // ID бронирования
	AppointmentAt time.Time // Новое время посадки
	TableID       int64     // Целевой стол
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	BookingID     int64     // ID бронирования
	AppointmentAt time.Time // Новое время посадки
	TableID       int64     // Целевой стол
	WindowStart   time.Time // Начало нового окна занятости
	WindowEnd     time.Time // Конец нового окна занятости
}

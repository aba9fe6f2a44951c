package confirm_booking

import "time"

// Request модель запроса на подтверждение холда
type Request struct {
	BookingID int64   // ID холда
	Name      string  // Имя гостя
	Surname   string  // Фамилия гостя
	Email     string  // Email гостя (ключ клиента)
	Phone     *string // Телефон (опционально)
	Notes     *string // Пожелания (опционально, перезаписывают заметки холда)

	ConsentMarketing bool // Согласие на маркетинговые рассылки
	ConsentProfiling bool // Согласие на профилирование
	ConsentPrivacy   bool // Согласие с политикой конфиденциальности
}

// Response модель ответа с подтвержденным бронированием
type Response struct {
	BookingID     int64     // ID бронирования
	ManageToken   string    // Self-service токен для отмены
	AppointmentAt time.Time // Время посадки
	CustomerID    int64     // ID клиента
}

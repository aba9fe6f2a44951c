package create_hold

import (
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// Request модель запроса на создание холда
type Request struct {
	AppointmentAt time.Time    // Дата и время посадки
	PartySize     int          // Размер партии
	Area          *domain.Area // Предпочитаемая зона (опционально)
	Notes         *string      // Пожелания гостя (опционально)
}

// Response модель ответа с созданным холдом
type Response struct {
	BookingID int64     // ID созданного бронирования
	ExpiresAt time.Time // Время истечения холда
	TableIDs  []int64   // Закрепленные столы
}

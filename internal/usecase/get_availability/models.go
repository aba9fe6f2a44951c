package get_availability

import (
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
	"github.com/akimovs/TRS-TableService/pkg/types"
)

// Request модель запроса доступных слотов
type Request struct {
	Date      time.Time    // Дата посещения (без времени)
	PartySize int          // Размер партии
	Area      *domain.Area // Предпочитаемая зона (опционально)
}

// Slot один слот дня
type Slot struct {
	Time      types.TimeString // Время начала посадки
	Available bool             // Можно ли посадить партию в это время
	// SuggestedArea зона с минимальной достаточной вместимостью;
	// заполняется только когда зона не была задана в запросе
	SuggestedArea *domain.Area
}

// Response модель ответа со слотами на день
type Response struct {
	Date  time.Time
	Slots []Slot
}

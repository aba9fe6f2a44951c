package manage_settings

import (
	"fmt"
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
	"github.com/akimovs/TRS-TableService/internal/service/settings/models"
)

// SpecialHoursRequest HTTP запрос на переопределение расписания одной даты
type SpecialHoursRequest struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	Closed    bool    `json:"closed"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SpecialHoursRequest) ToServiceRequest() (*models.SpecialHoursRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	return &models.SpecialHoursRequest{
		Date:      date,
		Closed:    r.Closed,
		OpenTime:  r.OpenTime,
		CloseTime: r.CloseTime,
	}, nil
}

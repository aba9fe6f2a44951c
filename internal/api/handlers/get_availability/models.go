package get_availability

import (
	getAvailability "github.com/akimovs/TRS-TableService/internal/usecase/get_availability"
)

// SlotResponse один слот в HTTP ответе
type SlotResponse struct {
	Time          string  `json:"time"`
	Available     int     `json:"available"` // 1 - свободен, 0 - занят
	SuggestedArea *string `json:"suggestedArea,omitempty"`
}

// Response HTTP ответ со слотами дня
type Response struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailability.Response, date string) *Response {
	out := &Response{
		Date:  date,
		Slots: make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		slot := SlotResponse{Time: s.Time.String()}
		if s.Available {
			slot.Available = 1
		}
		if s.SuggestedArea != nil {
			area := string(*s.SuggestedArea)
			slot.SuggestedArea = &area
		}
		out.Slots = append(out.Slots, slot)
	}

	return out
}

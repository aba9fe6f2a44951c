package models

import (
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// RuleRequest запрос на обновление правила рассадки
type RuleRequest struct {
	SeatDurationMinutes int      `json:"seatDurationMinutes"`
	SlotIntervalMinutes int      `json:"slotIntervalMinutes"`
	BufferBeforeMinutes int      `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int      `json:"bufferAfterMinutes"`
	MaxCoversPerSlot    *int     `json:"maxCoversPerSlot,omitempty"`
	DepositAmount       *float64 `json:"depositAmount,omitempty"`
}

// RuleResponse представление правила рассадки
type RuleResponse struct {
	SeatDurationMinutes int      `json:"seatDurationMinutes"`
	SlotIntervalMinutes int      `json:"slotIntervalMinutes"`
	BufferBeforeMinutes int      `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int      `json:"bufferAfterMinutes"`
	MaxCoversPerSlot    *int     `json:"maxCoversPerSlot,omitempty"`
	DepositAmount       *float64 `json:"depositAmount,omitempty"`
}

// WeekdayHours часы работы одного дня недели
type WeekdayHours struct {
	Weekday   int    `json:"weekday"` // 0=воскресенье ... 6=суббота
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// HoursRequest запрос на замену недельного расписания
type HoursRequest struct {
	Hours []WeekdayHours `json:"hours"`
}

// HoursResponse недельное расписание
type HoursResponse struct {
	Hours []WeekdayHours `json:"hours"`
}

// SpecialHoursRequest переопределение расписания на дату
type SpecialHoursRequest struct {
	Date      time.Time `json:"date"`
	Closed    bool      `json:"closed"`
	OpenTime  *string   `json:"openTime,omitempty"`
	CloseTime *string   `json:"closeTime,omitempty"`
}

// BlackoutRequest запрос на создание блэкаута
type BlackoutRequest struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  *string   `json:"reason,omitempty"`
}

// BlackoutResponse представление блэкаута
type BlackoutResponse struct {
	ID      int64     `json:"id"`
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Reason  *string   `json:"reason,omitempty"`
}

// FromDomainRule конвертирует domain модель правила в response
func FromDomainRule(r *domain.ReservationRule) *RuleResponse {
	return &RuleResponse{
		SeatDurationMinutes: r.SeatDurationMinutes,
		SlotIntervalMinutes: r.SlotIntervalMinutes,
		BufferBeforeMinutes: r.BufferBeforeMinutes,
		BufferAfterMinutes:  r.BufferAfterMinutes,
		MaxCoversPerSlot:    r.MaxCoversPerSlot,
		DepositAmount:       r.DepositAmount,
	}
}

// FromDomainHours конвертирует недельное расписание в response
func FromDomainHours(hours []*domain.OpeningHour) *HoursResponse {
	resp := &HoursResponse{Hours: make([]WeekdayHours, 0, len(hours))}
	for _, oh := range hours {
		resp.Hours = append(resp.Hours, WeekdayHours{
			Weekday:   int(oh.Weekday),
			OpenTime:  oh.OpenTime.String(),
			CloseTime: oh.CloseTime.String(),
		})
	}
	return resp
}

// FromDomainBlackout конвертирует блэкаут в response
func FromDomainBlackout(b *domain.BlackoutSlot) *BlackoutResponse {
	return &BlackoutResponse{
		ID:      b.ID,
		StartAt: b.StartAt,
		EndAt:   b.EndAt,
		Reason:  b.Reason,
	}
}

package allocation

import (
	"time"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// Window интервал занятости стола [StartAt, EndAt)
// Шире "сырого" времени брони на буферы подготовки стола
type Window struct {
	StartAt time.Time
	EndAt   time.Time
}

// NewWindow вычисляет окно занятости стола для брони:
// start = время брони - буфер до, end = время брони + посадка + буфер после.
// Именно это окно, а не сырое время брони, проверяется на пересечения.
func NewWindow(appointmentAt time.Time, seatDurationMinutes, bufferBeforeMinutes, bufferAfterMinutes int) Window {
	return Window{
		StartAt: appointmentAt.Add(-time.Duration(bufferBeforeMinutes) * time.Minute),
		EndAt:   appointmentAt.Add(time.Duration(seatDurationMinutes+bufferAfterMinutes) * time.Minute),
	}
}

// WindowForRule вычисляет окно занятости по правилу бронирования
func WindowForRule(appointmentAt time.Time, rule *domain.ReservationRule) Window {
	return NewWindow(appointmentAt, rule.SeatDurationMinutes, rule.BufferBeforeMinutes, rule.BufferAfterMinutes)
}

// Overlaps возвращает true, если окна пересекаются
// Граничные случаи (конец одного = начало другого) пересечением не считаются
func (w Window) Overlaps(other Window) bool {
	return w.StartAt.Before(other.EndAt) && w.EndAt.After(other.StartAt)
}

// Contains возвращает true, если момент времени попадает в окно
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.StartAt) && t.Before(w.EndAt)
}

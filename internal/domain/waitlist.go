package domain

import "time"

// WaitlistStatus represents the status of a waitlist entry
type WaitlistStatus string

const (
	WaitlistOpen      WaitlistStatus = "open"
	WaitlistNotified  WaitlistStatus = "notified"
	WaitlistBooked    WaitlistStatus = "booked"
	WaitlistCancelled WaitlistStatus = "cancelled"
	WaitlistExpired   WaitlistStatus = "expired"
)

// WaitlistEntry is a guest's request for a date/party/area combination
// recorded when no slot was available at request time. The waitlist
// notifier re-checks open entries and notifies on newly-freed slots.
type WaitlistEntry struct {
	ID        int64
	Date      time.Time
	PartySize int
	Area      *Area
	Email     string
	Name      string
	Status    WaitlistStatus

	CreatedAt  time.Time
	NotifiedAt *time.Time
}

// IsOpen returns true if the entry still awaits a freed slot
func (w *WaitlistEntry) IsOpen() bool {
	return w.Status == WaitlistOpen
}

// IsStale returns true if the requested date has already passed
func (w *WaitlistEntry) IsStale(now time.Time) bool {
	dateOnly := time.Date(w.Date.Year(), w.Date.Month(), w.Date.Day(), 0, 0, 0, 0, w.Date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

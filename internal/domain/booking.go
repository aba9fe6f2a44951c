package domain

import "time"

// BookingStatus represents the status of a reservation
type BookingStatus string

const (
	// StatusPending is a time-boxed hold awaiting confirmation
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a reservation or a provisional hold
type Booking struct {
	ID            int64
	AppointmentAt time.Time
	PartySize     int
	// Area preference expressed by the guest; nil means any area
	Area   *Area
	Status BookingStatus
	// HoldExpiresAt is set only while the booking is a pending hold
	HoldExpiresAt *time.Time
	CustomerID    *int64
	Notes         *string
	// ManageToken is the unique self-service token, assigned on confirmation
	ManageToken    *string
	ReminderSentAt *time.Time

	// Allocations are the table rows occupied by this booking
	Allocations []TableAllocation

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableAllocation is the join between a booking and a table. It carries the
// buffered allocation window [StartAt, EndAt), derived from the booking's
// appointment time: this window, not the raw appointment time, is what must
// not overlap with other allocations on the same table.
type TableAllocation struct {
	ID        int64
	BookingID int64
	TableID   int64
	StartAt   time.Time
	EndAt     time.Time
}

// Overlaps reports whether two allocation windows intersect
func (a *TableAllocation) Overlaps(start, end time.Time) bool {
	return a.StartAt.Before(end) && a.EndAt.After(start)
}

// IsHoldExpired returns true for a pending booking whose hold has lapsed.
// Such a booking is logically cancelled even before the sweep deletes it.
func (b *Booking) IsHoldExpired(now time.Time) bool {
	return b.Status == StatusPending && b.HoldExpiresAt != nil && now.After(*b.HoldExpiresAt)
}

// CanBeConfirmed returns true if the booking is a live pending hold
func (b *Booking) CanBeConfirmed(now time.Time) bool {
	return b.Status == StatusPending && !b.IsHoldExpired(now)
}

// CanBeCancelled returns true if the booking is in a cancellable state
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a final status
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusNoShow
}

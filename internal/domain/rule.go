package domain

import "time"

// ReservationRule is the singleton booking configuration: how long a party
// occupies a table, at which granularity slots are offered and how much
// turnover padding surrounds each seating. At most one rule row is active;
// DefaultRule applies when none is configured.
type ReservationRule struct {
	ID                  int64
	SeatDurationMinutes int
	SlotIntervalMinutes int
	BufferBeforeMinutes int
	BufferAfterMinutes  int
	// MaxCoversPerSlot caps total guests across all bookings whose windows
	// overlap a slot. nil = no cap.
	MaxCoversPerSlot *int
	DepositAmount    *float64
	Active           bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultRule returns the rule applied when no active row exists (90/15/0/0)
func DefaultRule() *ReservationRule {
	return &ReservationRule{
		SeatDurationMinutes: DefaultSeatDurationMinutes,
		SlotIntervalMinutes: DefaultSlotIntervalMinutes,
		BufferBeforeMinutes: DefaultBufferBeforeMinutes,
		BufferAfterMinutes:  DefaultBufferAfterMinutes,
		Active:              true,
	}
}

// HasCoversCap returns true if a per-slot cover cap is configured
func (r *ReservationRule) HasCoversCap() bool {
	return r.MaxCoversPerSlot != nil && *r.MaxCoversPerSlot > 0
}

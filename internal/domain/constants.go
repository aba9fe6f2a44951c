package domain

// Default reservation rule values, applied when no active rule row exists
const (
	DefaultSeatDurationMinutes = 90
	DefaultSlotIntervalMinutes = 15
	DefaultBufferBeforeMinutes = 0
	DefaultBufferAfterMinutes  = 0
)

// Hold lifetime default; a pending booking past this window is expired
const DefaultHoldTTLMinutes = 10

// Business validation constants
const (
	MinPartySize = 1
	MaxPartySize = 40

	MinSeatDurationMinutes = 15
	MaxSeatDurationMinutes = 480
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 120
	MaxBufferMinutes       = 120

	MaxTableCapacity = 30
	MaxNotesLength   = 500
)

// Table combination search bounds. Dining rooms have small merge groups;
// the picker never considers more than MergeGroupSearchLimit tables per
// group and never combines more than MaxTablesPerParty in one solution.
const (
	MergeGroupSearchLimit = 6
	MaxTablesPerParty     = 4
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses lists booking statuses that keep tables allocated.
// Used when computing busy tables and cover counts.
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

package domain

import (
	"time"

	"github.com/akimovs/TRS-TableService/pkg/types"
)

// OpeningHour is the regular weekly schedule for one weekday
type OpeningHour struct {
	ID        int64
	Weekday   time.Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// SpecialHour overrides the weekly schedule on a specific date.
// Closed=true forces zero availability regardless of opening hours.
type SpecialHour struct {
	ID        int64
	Date      time.Time
	Closed    bool
	OpenTime  *types.TimeString
	CloseTime *types.TimeString
}

// BlackoutSlot closes an arbitrary time range, e.g. a private event
type BlackoutSlot struct {
	ID      int64
	StartAt time.Time
	EndAt   time.Time
	Reason  *string
}

// Overlaps reports whether the blackout intersects [start, end)
func (b *BlackoutSlot) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && b.EndAt.After(start)
}

// DaySchedule is the effective open/close window resolved for one date
// (special hours override the weekday schedule)
type DaySchedule struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// ResolveDaySchedule computes the effective schedule for a date.
// A special-hour row wins over the weekly schedule; an explicit Closed flag
// or a missing weekday row both yield a closed day.
func ResolveDaySchedule(date time.Time, weekly []*OpeningHour, special *SpecialHour) DaySchedule {
	if special != nil {
		if special.Closed || special.OpenTime == nil || special.CloseTime == nil {
			return DaySchedule{}
		}
		return DaySchedule{IsOpen: true, OpenTime: *special.OpenTime, CloseTime: *special.CloseTime}
	}

	for _, oh := range weekly {
		if oh.Weekday == date.Weekday() {
			if oh.OpenTime.IsZero() || oh.CloseTime.IsZero() {
				return DaySchedule{}
			}
			return DaySchedule{IsOpen: true, OpenTime: oh.OpenTime, CloseTime: oh.CloseTime}
		}
	}

	return DaySchedule{}
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/akimovs/TRS-TableService/pkg/ptr"
	"github.com/akimovs/TRS-TableService/pkg/types"
)

func TestResolveDaySchedule(t *testing.T) {
	// 2025-06-16 is a Monday
	date := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	weekly := []*OpeningHour{
		{Weekday: time.Monday, OpenTime: "18:00", CloseTime: "23:00"},
	}

	t.Run("weekly schedule applies", func(t *testing.T) {
		schedule := ResolveDaySchedule(date, weekly, nil)
		assert.True(t, schedule.IsOpen)
		assert.Equal(t, types.TimeString("18:00"), schedule.OpenTime)
		assert.Equal(t, types.TimeString("23:00"), schedule.CloseTime)
	})

	t.Run("missing weekday row means closed", func(t *testing.T) {
		tuesday := date.AddDate(0, 0, 1)
		schedule := ResolveDaySchedule(tuesday, weekly, nil)
		assert.False(t, schedule.IsOpen)
	})

	t.Run("special hours win over weekly", func(t *testing.T) {
		special := &SpecialHour{
			Date:      date,
			OpenTime:  ptr.Ptr(types.TimeString("12:00")),
			CloseTime: ptr.Ptr(types.TimeString("16:00")),
		}
		schedule := ResolveDaySchedule(date, weekly, special)
		assert.True(t, schedule.IsOpen)
		assert.Equal(t, types.TimeString("12:00"), schedule.OpenTime)
	})

	t.Run("closed special day overrides open weekday", func(t *testing.T) {
		special := &SpecialHour{Date: date, Closed: true}
		schedule := ResolveDaySchedule(date, weekly, special)
		assert.False(t, schedule.IsOpen)
	})
}

func TestBlackoutSlot_Overlaps(t *testing.T) {
	blackout := &BlackoutSlot{
		StartAt: time.Date(2025, 6, 16, 19, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 6, 16, 21, 0, 0, 0, time.UTC),
	}

	assert.True(t, blackout.Overlaps(
		time.Date(2025, 6, 16, 20, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 16, 22, 0, 0, 0, time.UTC)))

	// Half-open intervals: touching endpoints do not overlap
	assert.False(t, blackout.Overlaps(
		time.Date(2025, 6, 16, 21, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 16, 23, 0, 0, 0, time.UTC)))
}

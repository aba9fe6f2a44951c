package get_availability

import (
	"github.com/akimovs/TRS-TableService/internal/allocation"
	"github.com/akimovs/TRS-TableService/internal/domain"
	"github.com/akimovs/TRS-TableService/pkg/types"
)

// generateSlotTimes генерирует времена начала посадки на день:
// от открытия до (закрытие - длительность посадки) включительно с шагом
// slotInterval. Слот, чья посадка вышла бы за закрытие, не предлагается.
func generateSlotTimes(schedule domain.DaySchedule, rule *domain.ReservationRule) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if !schedule.IsOpen {
		return slots
	}

	current := schedule.OpenTime
	for current.IsBefore(schedule.CloseTime) {
		seatingEnd, err := current.AddMinutes(rule.SeatDurationMinutes)
		if err != nil {
			// Посадка ушла бы за полночь
			break
		}
		if seatingEnd.IsAfter(schedule.CloseTime) {
			break
		}

		slots = append(slots, current)

		next, err := current.AddMinutes(rule.SlotIntervalMinutes)
		if err != nil {
			break
		}
		current = next
	}

	return slots
}

// isBlackedOut возвращает true, если окно посадки пересекает блэкаут
func isBlackedOut(window allocation.Window, blackouts []*domain.BlackoutSlot) bool {
	for _, b := range blackouts {
		if b.Overlaps(window.StartAt, window.EndAt) {
			return true
		}
	}
	return false
}

// overlappingBookings возвращает бронирования, чьи аллокации пересекают окно
func overlappingBookings(window allocation.Window, bookings []*domain.Booking) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, b := range bookings {
		for _, a := range b.Allocations {
			if a.Overlaps(window.StartAt, window.EndAt) {
				result = append(result, b)
				break
			}
		}
	}
	return result
}

// exceedsCoversCap возвращает true, если посадка партии превысила бы
// лимит гостей на слот
func exceedsCoversCap(rule *domain.ReservationRule, partySize int, overlapping []*domain.Booking) bool {
	if !rule.HasCoversCap() {
		return false
	}

	covers := partySize
	for _, b := range overlapping {
		covers += b.PartySize
	}

	return covers > *rule.MaxCoversPerSlot
}

// busyTableIDs возвращает множество столов, занятых в окне
func busyTableIDs(window allocation.Window, bookings []*domain.Booking) map[int64]struct{} {
	busy := make(map[int64]struct{})
	for _, b := range bookings {
		for _, a := range b.Allocations {
			if a.Overlaps(window.StartAt, window.EndAt) {
				busy[a.TableID] = struct{}{}
			}
		}
	}
	return busy
}

// freeCandidates собирает свободные столы-кандидаты, опционально
// ограничиваясь одной зоной
func freeCandidates(tables []*domain.Table, busy map[int64]struct{}, area *domain.Area) []allocation.Candidate {
	candidates := make([]allocation.Candidate, 0, len(tables))
	for _, t := range tables {
		if _, taken := busy[t.ID]; taken {
			continue
		}
		if area != nil && t.Area != *area {
			continue
		}
		candidates = append(candidates, allocation.Candidate{
			ID:         t.ID,
			Capacity:   t.Capacity,
			MergeGroup: t.MergeGroup,
		})
	}
	return candidates
}

// pickBestArea перебирает зоны независимо и выбирает ту, чье решение
// занимает наименьшую суммарную вместимость. При равенстве побеждает
// более приоритетная зона (indoor первая).
func pickBestArea(tables []*domain.Table, busy map[int64]struct{}, partySize int) (*domain.Area, bool) {
	var (
		bestArea     domain.Area
		bestCapacity int
		found        bool
	)

	for _, area := range domain.AreaPriority {
		candidates := freeCandidates(tables, busy, &area)
		picked := allocation.PickTables(candidates, partySize)
		if picked == nil {
			continue
		}

		capacity := allocation.TotalCapacity(candidates, picked)
		if !found || capacity < bestCapacity {
			bestArea = area
			bestCapacity = capacity
			found = true
		}
	}

	if !found {
		return nil, false
	}

	return &bestArea, true
}

package allocation

import (
	"sort"

	"github.com/akimovs/TRS-TableService/internal/domain"
)

// Candidate стол-кандидат для посадки
// Вызывающий обязан заранее отфильтровать занятые в целевом окне столы -
// подбор не проверяет пересечения по времени
type Candidate struct {
	ID         int64
	Capacity   int
	MergeGroup *string
}

// PickTables подбирает набор столов минимальной суммарной вместимости,
// достаточный для партии partySize.
//
// Алгоритм:
//  1. Кандидаты сортируются по возрастанию вместимости.
//  2. Быстрый путь: если какой-то одиночный стол вмещает партию,
//     возвращается наименьший такой стол.
//  3. Иначе кандидаты группируются по merge-группе (столы без группы
//     объединять нельзя) и внутри каждой группы выполняется ограниченный
//     перебор включить/исключить: не более domain.MergeGroupSearchLimit
//     столов на группу и не более domain.MaxTablesPerParty столов в решении.
//  4. Возвращается лучшее решение среди всех групп или nil, если партию
//     посадить нельзя.
func PickTables(candidates []Candidate, partySize int) []int64 {
	if partySize <= 0 || len(candidates) == 0 {
		return nil
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Capacity < sorted[j].Capacity
	})

	// Быстрый путь: наименьший одиночный стол, вмещающий партию
	for _, c := range sorted {
		if c.Capacity >= partySize {
			return []int64{c.ID}
		}
	}

	// Группируем по merge-группе; порядок внутри группы сохраняется
	// (по возрастанию вместимости после сортировки)
	groups := make(map[string][]Candidate)
	groupOrder := make([]string, 0)
	for _, c := range sorted {
		if c.MergeGroup == nil {
			continue
		}
		if _, ok := groups[*c.MergeGroup]; !ok {
			groupOrder = append(groupOrder, *c.MergeGroup)
		}
		groups[*c.MergeGroup] = append(groups[*c.MergeGroup], c)
	}

	var bestIDs []int64
	bestCapacity := 0

	for _, name := range groupOrder {
		group := groups[name]
		if len(group) > domain.MergeGroupSearchLimit {
			group = group[:domain.MergeGroupSearchLimit]
		}

		ids, capacity := searchGroup(group, partySize, bestCapacity)
		if ids == nil {
			continue
		}
		if bestIDs == nil || capacity < bestCapacity {
			bestIDs = ids
			bestCapacity = capacity
		}
	}

	return bestIDs
}

// searchGroup перебирает комбинации столов одной merge-группы.
// Возвращает комбинацию минимальной суммарной вместимости >= partySize
// или nil. bestSoFar - лучшая вместимость по другим группам (0 = нет);
// ветки с суммой, уже не меньшей известного лучшего, отсекаются.
func searchGroup(group []Candidate, partySize, bestSoFar int) ([]int64, int) {
	var (
		bestIDs      []int64
		bestCapacity = bestSoFar
		current      = make([]int64, 0, domain.MaxTablesPerParty)
	)

	var walk func(idx, sum int)
	walk = func(idx, sum int) {
		if sum >= partySize {
			if bestCapacity == 0 || sum < bestCapacity {
				bestCapacity = sum
				bestIDs = append([]int64(nil), current...)
			}
			return
		}
		if idx == len(group) || len(current) == domain.MaxTablesPerParty {
			return
		}
		// Отсечение: ветка уже не лучше известного решения
		if bestCapacity != 0 && sum+group[idx].Capacity >= bestCapacity {
			// Столы отсортированы по возрастанию, но дальше по ветке могут
			// быть только большие суммы - включение idx бессмысленно,
			// пробуем пропустить его
			walk(idx+1, sum)
			return
		}

		// Включаем стол idx
		current = append(current, group[idx].ID)
		walk(idx+1, sum+group[idx].Capacity)
		current = current[:len(current)-1]

		// Исключаем стол idx
		walk(idx+1, sum)
	}

	walk(0, 0)

	if bestIDs == nil {
		return nil, 0
	}
	return bestIDs, bestCapacity
}

// TotalCapacity возвращает суммарную вместимость выбранных столов
func TotalCapacity(candidates []Candidate, picked []int64) int {
	byID := make(map[int64]int, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c.Capacity
	}
	total := 0
	for _, id := range picked {
		total += byID[id]
	}
	return total
}

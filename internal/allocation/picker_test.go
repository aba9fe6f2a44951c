package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akimovs/TRS-TableService/pkg/ptr"
)

func TestPickTables_SingleTableFastPath(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Capacity: 2},
		{ID: 2, Capacity: 4},
		{ID: 3, Capacity: 8},
	}

	picked := PickTables(candidates, 4)

	require.Len(t, picked, 1)
	assert.Equal(t, int64(2), picked[0], "smallest sufficient table wins")
}

func TestPickTables_SingleTablePreferredOverMerge(t *testing.T) {
	// Два стола по 2 в merge-группе дали бы ровно 4 места,
	// но одиночный стол всегда предпочтительнее комбинации
	candidates := []Candidate{
		{ID: 1, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
		{ID: 2, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
		{ID: 3, Capacity: 6},
	}

	picked := PickTables(candidates, 4)

	require.Len(t, picked, 1)
	assert.Equal(t, int64(3), picked[0])
}

func TestPickTables_MergeGroupExactFit(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
		{ID: 2, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
		{ID: 3, Capacity: 6, MergeGroup: ptr.Ptr("G1")},
	}

	picked := PickTables(candidates, 4)

	require.Len(t, picked, 2)
	assert.ElementsMatch(t, []int64{1, 2}, picked, "minimal-waste pair, not the big table combo")
	assert.Equal(t, 4, TotalCapacity(candidates, picked))
}

func TestPickTables_MinimalWasteAcrossGroups(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Capacity: 4, MergeGroup: ptr.Ptr("G1")},
		{ID: 2, Capacity: 4, MergeGroup: ptr.Ptr("G1")},
		{ID: 3, Capacity: 3, MergeGroup: ptr.Ptr("G2")},
		{ID: 4, Capacity: 3, MergeGroup: ptr.Ptr("G2")},
	}

	picked := PickTables(candidates, 6)

	require.Len(t, picked, 2)
	assert.ElementsMatch(t, []int64{3, 4}, picked, "group G2 wastes 0 seats, G1 wastes 2")
}

func TestPickTables_UngroupedTablesNeverCombined(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Capacity: 2},
		{ID: 2, Capacity: 2},
		{ID: 3, Capacity: 2},
	}

	picked := PickTables(candidates, 6)

	assert.Nil(t, picked)
}

func TestPickTables_NoSolution(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
		{ID: 2, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
	}

	assert.Nil(t, PickTables(candidates, 10))
	assert.Nil(t, PickTables(nil, 2))
	assert.Nil(t, PickTables(candidates, 0))
}

func TestPickTables_NeverMoreThanFourTables(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
		{ID: 2, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
		{ID: 3, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
		{ID: 4, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
		{ID: 5, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
		{ID: 6, Capacity: 2, MergeGroup: ptr.Ptr("G1")},
	}

	// Партия 10 потребовала бы 5 столов - решение не допускается
	assert.Nil(t, PickTables(candidates, 10))

	// Партия 8 укладывается в 4 стола
	picked := PickTables(candidates, 8)
	require.Len(t, picked, 4)
	assert.Equal(t, 8, TotalCapacity(candidates, picked))
}

func TestPickTables_GroupSearchLimit(t *testing.T) {
	// Седьмой стол группы в перебор не попадает: только шесть наименьших
	candidates := make([]Candidate, 0, 7)
	for i := int64(1); i <= 7; i++ {
		candidates = append(candidates, Candidate{ID: i, Capacity: 2, MergeGroup: ptr.Ptr("G1")})
	}

	picked := PickTables(candidates, 8)

	require.Len(t, picked, 4)
	assert.LessOrEqual(t, TotalCapacity(candidates, picked), 8)
}

func TestPickTables_CapacityAlwaysSufficient(t *testing.T) {
	candidates := []Candidate{
		{ID: 1, Capacity: 3, MergeGroup: ptr.Ptr("G1")},
		{ID: 2, Capacity: 5, MergeGroup: ptr.Ptr("G1")},
		{ID: 3, Capacity: 2, MergeGroup: ptr.Ptr("G2")},
	}

	for party := 1; party <= 10; party++ {
		picked := PickTables(candidates, party)
		if picked == nil {
			continue
		}
		assert.GreaterOrEqual(t, TotalCapacity(candidates, picked), party,
			"party=%d", party)
		assert.LessOrEqual(t, len(picked), 4, "party=%d", party)
	}
}

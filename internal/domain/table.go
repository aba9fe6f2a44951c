package domain

import "time"

// Area is a physical zone of the dining room
type Area string

const (
	AreaIndoor  Area = "indoor"
	AreaOutdoor Area = "outdoor"
	AreaBar     Area = "bar"
	AreaHightop Area = "hightop"
	AreaPrivate Area = "private"
)

// AreaPriority is the stable order used when suggesting an area to a guest
// who expressed no preference: indoor wins ties, private loses them.
var AreaPriority = []Area{
	AreaIndoor,
	AreaOutdoor,
	AreaBar,
	AreaHightop,
	AreaPrivate,
}

// IsValid returns true if the area is one of the known zones
func (a Area) IsValid() bool {
	switch a {
	case AreaIndoor, AreaOutdoor, AreaBar, AreaHightop, AreaPrivate:
		return true
	}
	return false
}

// Table represents a physical seating unit in the dining room
type Table struct {
	ID       int64
	Code     string // human label, e.g. "T12"
	Capacity int
	Area     Area
	// Tables sharing a MergeGroup tag may be physically combined
	// to seat one party. nil means the table cannot be merged.
	MergeGroup *string
	Active     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanSeat returns true if the table alone fits the party
func (t *Table) CanSeat(partySize int) bool {
	return t.Capacity >= partySize
}

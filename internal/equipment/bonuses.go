package equipment

import (
	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/stats"
)

// maxActiveSets bounds the flat set-bonus map. Once this many distinct
// sets have been tallied, members of any further set are not counted.
const maxActiveSets = 12

// SetBonus is one active set's resolved bonus at the equipped member count.
type SetBonus struct {
	SetID      catalog.SetIndex
	MemberCount int32
	Bonus      stats.Vector
}

// SetBonuses performs a single pass over equipped items, tallies member
// counts per set into a small flat array-backed map (capacity
// maxActiveSets, never a hash map), then resolves each set's bonus at its
// count. Sets with zero bonus at the current count (below StartAt) are
// omitted.
func (s *State) SetBonuses(cat *catalog.Catalog) []SetBonus {
	type tally struct {
		setID catalog.SetIndex
		count int32
	}
	var counts [maxActiveSets]tally
	n := 0

	for _, idx := range s.slots {
		if !idx.IsPresent() {
			continue
		}
		item := cat.Item(idx)
		if !item.SetID.IsPresent() {
			continue
		}
		found := false
		for i := 0; i < n; i++ {
			if counts[i].setID == item.SetID {
				counts[i].count++
				found = true
				break
			}
		}
		if !found && n < maxActiveSets {
			counts[n] = tally{setID: item.SetID, count: 1}
			n++
		}
	}

	out := make([]SetBonus, 0, n)
	for i := 0; i < n; i++ {
		set := cat.Set(counts[i].setID)
		bonus, ok := set.BonusAt(int(counts[i].count))
		if !ok {
			continue
		}
		out = append(out, SetBonus{SetID: counts[i].setID, MemberCount: counts[i].count, Bonus: bonus})
	}
	return out
}

// TotalSetBonusCount sums (memberCount - 1) across every active set, the
// quantity a SetBonusLeaf predicate compares against.
func TotalSetBonusCount(bonuses []SetBonus) int32 {
	var total int32
	for _, b := range bonuses {
		total += b.MemberCount - 1
	}
	return total
}

// Package equipment implements the 16-slot assignment state: which item
// occupies each slot, a cached running sum of equipped stat contributions,
// and the derived stats() projection (set bonuses, characteristic-point
// curve, and derived-cap clamping).
package equipment

import (
	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/stats"
)

// NumSlots is the fixed width of an equipment assignment.
const NumSlots = catalog.NumSlots

// Characteristic-point pool indices, in the order State.CharacteristicPoints
// stores them.
const (
	PointsVitality = iota
	PointsWisdom
	PointsAgility
	PointsChance
	PointsStrength
	PointsIntelligence

	NumCharacteristicPools
)

// Derived-stat caps applied by Stats, after every other contribution.
const (
	maxAP               = 12
	maxMP               = 6
	maxRange            = 6
	maxResistancePercent = 50
)

// State is a 16-slot equipment assignment: one optional item index per
// slot, a cached stat sum kept in sync incrementally by AddItem/RemoveItem,
// and an optional characteristic-point allocation.
type State struct {
	slots                 [NumSlots]catalog.ItemIndex
	cachedTotals          stats.Vector
	characteristicPoints  [NumCharacteristicPools]int32
}

// NewEmpty returns a State with every slot empty.
func NewEmpty() State {
	s := State{}
	for i := range s.slots {
		s.slots[i] = catalog.NoItem
	}
	return s
}

// InvalidItemError reports that an initial-assignment item does not
// belong to the category its slot requires.
type InvalidItemError struct {
	ItemName      string
	AttemptedSlot int
}

func (e *InvalidItemError) Error() string {
	return "item " + e.ItemName + " does not fit its attempted slot"
}

// NewFromInitial builds a State from a fixed per-slot item assignment,
// validating that every non-empty slot's item matches the slot's
// required category (§4.G construction step 1).
func NewFromInitial(initial [NumSlots]catalog.ItemIndex, cat *catalog.Catalog) (State, error) {
	s := NewEmpty()
	for slot, idx := range initial {
		if !idx.IsPresent() {
			continue
		}
		wantType := catalog.SlotType(slot)
		item := cat.Item(idx)
		if item.ItemType != wantType {
			return State{}, &InvalidItemError{ItemName: item.Name, AttemptedSlot: slot}
		}
		s.slots[slot] = idx
		s.cachedTotals.Add(&item.Stats)
	}
	return s, nil
}

// Slot returns the item index occupying a slot, or catalog.NoItem.
func (s *State) Slot(slot int) catalog.ItemIndex {
	return s.slots[slot]
}

// SetSlot directly overwrites a slot's item index. Callers are
// responsible for keeping cachedTotals in sync via AddItem/RemoveItem;
// this is used by the neighbor proposal which does both explicitly.
func (s *State) SetSlot(slot int, idx catalog.ItemIndex) {
	s.slots[slot] = idx
}

// CachedTotals returns the pure sum of equipped items' stat contributions.
func (s *State) CachedTotals() stats.Vector {
	return s.cachedTotals
}

// CharacteristicPoints returns the current per-pool point allocation.
func (s *State) CharacteristicPoints() [NumCharacteristicPools]int32 {
	return s.characteristicPoints
}

// SetCharacteristicPoints overwrites the point allocation.
func (s *State) SetCharacteristicPoints(points [NumCharacteristicPools]int32) {
	s.characteristicPoints = points
}

// AddItem folds idx's stat contribution into the cached sum. O(51).
func (s *State) AddItem(cat *catalog.Catalog, idx catalog.ItemIndex) {
	item := cat.Item(idx)
	s.cachedTotals.Add(&item.Stats)
}

// RemoveItem subtracts idx's stat contribution from the cached sum. O(51).
func (s *State) RemoveItem(cat *catalog.Catalog, idx catalog.ItemIndex) {
	item := cat.Item(idx)
	s.cachedTotals.Sub(&item.Stats)
}

// Items iterates the (slot, item index) pairs of every occupied slot.
func (s *State) Items() func(yield func(slot int, idx catalog.ItemIndex) bool) {
	return func(yield func(slot int, idx catalog.ItemIndex) bool) {
		for slot, idx := range s.slots {
			if idx.IsPresent() {
				if !yield(slot, idx) {
					return
				}
			}
		}
	}
}

// Clone returns an independent copy; State is a fixed-size value type so
// a plain assignment already copies it, but Clone documents the intent
// at annealer call sites.
func (s State) Clone() State {
	return s
}

// Package optimizer implements the energy model, the generic Metropolis
// annealer, and the optimizer driver that ties catalog candidate lists,
// equipment state, and the annealer together into one optimization run.
package optimizer

import "github.com/corvid-labs/equipwright/internal/catalog"

// DamagingMove is one weighted damage-expectation term in the energy
// model (§4.E damage formula), indexed [neutral, air, water, earth, fire]
// to match stats.Elements' iteration order plus neutral.
type DamagingMove struct {
	Weight              float64
	ElementalDamage      [5]float64
	CritElementalDamage  [5]float64
	BaseCritPercent      int32
	CritModifiable       bool
}

// Config is the optimizer's full input: objective weights/targets, the
// level cap, which slots the annealer may touch, bans, exo flags,
// element-aggregation mode, the initial assignment for the diff penalty,
// and the damaging-move list.
type Config struct {
	MaxLevel   int32
	Weights    [51]float64
	Targets    [51]*int32
	Changeable []int
	BanList    []catalog.ItemIndex
	ExoAP      bool
	ExoMP      bool
	ExoRange   bool

	MultiElement      bool
	InitialSet        [catalog.NumSlots]catalog.ItemIndex
	ChangedItemWeight float64
	DamagingMoves     []DamagingMove

	ConsiderCharacteristics bool

	// InitialTemperature and Iterations parameterize the annealer run;
	// kept on Config because both the CLI and the HTTP adapter populate
	// them from the same request shape as every other tuning knob.
	InitialTemperature float64
	Iterations         int64
}

// AvailableCharacteristicPoints returns the point budget a character at
// MaxLevel may spend, used by the over-usage violation term. Five points
// per level mirrors the underlying game's leveling mechanic; callers
// that set ConsiderCharacteristics=false never let any points be spent,
// so this budget is irrelevant to them.
func (c *Config) AvailableCharacteristicPoints() int32 {
	return c.MaxLevel * 5
}

// IsChangeable reports whether the annealer may mutate a slot.
func (c *Config) IsChangeable(slot int) bool {
	for _, s := range c.Changeable {
		if s == slot {
			return true
		}
	}
	return false
}

// IsBanned reports whether idx may never be equipped.
func (c *Config) IsBanned(idx catalog.ItemIndex) bool {
	for _, b := range c.BanList {
		if b == idx {
			return true
		}
	}
	return false
}

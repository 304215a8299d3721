package optimizer

import (
	"math"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/equipment"
	"github.com/corvid-labs/equipwright/internal/stats"
)

// violationLevelPenalty scales per-level overage for an over-level item.
const violationLevelPenalty = 1000.0

// violationDuplicatePenalty is charged per duplicate-dofus or same-set-ring collision.
const violationDuplicatePenalty = 1000.0

// violationCharacteristicOverusePenalty scales characteristic-point overspend.
const violationCharacteristicOverusePenalty = 100.0

// predicateViolationScale further scales every item's wearability violation.
const predicateViolationScale = 100.0

type damageStatPair struct {
	power  stats.Stat
	damage stats.Stat
}

// damageStats maps the 5 damage-expectation elements, in DamagingMove's
// fixed index order [neutral, air, water, earth, fire], to their power
// stat and damage-bonus stat (§4.E element mapping table).
var damageStats = [5]damageStatPair{
	{power: stats.Strength, damage: stats.DamageNeutral},
	{power: stats.Agility, damage: stats.DamageAir},
	{power: stats.Chance, damage: stats.DamageWater},
	{power: stats.Strength, damage: stats.DamageEarth},
	{power: stats.Intelligence, damage: stats.DamageFire},
}

// Energy computes the minimization objective for st under cfg, given
// catalog cat and st's already-resolved set bonuses. Lower is better;
// the caller reports -Energy as the human-facing score.
func Energy(cfg *Config, cat *catalog.Catalog, st *equipment.State, bonuses []equipment.SetBonus) float64 {
	derived := equipment.DerivedConfig{MaxLevel: cfg.MaxLevel, ExoAP: cfg.ExoAP, ExoMP: cfg.ExoMP, ExoRange: cfg.ExoRange}
	sv := st.Stats(derived, bonuses)

	nonElement := nonElementTerm(cfg, &sv)
	element := elementTerm(cfg, &sv)
	diff := diffTerm(cfg, st)
	damage := damageTerm(cfg, &sv)
	violation := violationTerm(cfg, cat, st, &sv, bonuses)

	return -nonElement - element + diff - damage + violation
}

func targetedStat(sv *stats.Vector, stat stats.Stat, target *int32) int32 {
	v := sv.Get(stat)
	if target == nil {
		return v
	}
	if *target < v {
		return *target
	}
	return v
}

func nonElementTerm(cfg *Config, sv *stats.Vector) float64 {
	var total float64
	for i := 0; i < stats.NumStats; i++ {
		stat := stats.Stat(i)
		if stats.IsElement(stat) {
			continue
		}
		value := targetedStat(sv, stat, cfg.Targets[i])
		total += float64(value) * cfg.Weights[i]
	}
	return total
}

func elementTerm(cfg *Config, sv *stats.Vector) float64 {
	if cfg.MultiElement {
		min := math.NaN()
		for _, e := range stats.Elements {
			if cfg.Weights[e] <= 0 {
				continue
			}
			v := float64(targetedStat(sv, e, cfg.Targets[e])) * cfg.Weights[e]
			if math.IsNaN(min) || v < min {
				min = v
			}
		}
		if math.IsNaN(min) {
			return 0
		}
		return min
	}

	var total float64
	for _, e := range stats.Elements {
		if cfg.Weights[e] <= 0 {
			continue
		}
		total += float64(targetedStat(sv, e, cfg.Targets[e])) * cfg.Weights[e]
	}
	return total
}

func diffTerm(cfg *Config, st *equipment.State) float64 {
	changed := 0
	for slot := 0; slot < catalog.NumSlots; slot++ {
		if st.Slot(slot) != cfg.InitialSet[slot] {
			changed++
		}
	}
	return float64(changed) * cfg.ChangedItemWeight
}

func damageTerm(cfg *Config, sv *stats.Vector) float64 {
	var total float64
	for _, move := range cfg.DamagingMoves {
		total += moveContribution(&move, sv)
	}
	return total
}

func moveContribution(move *DamagingMove, sv *stats.Vector) float64 {
	critPercent := float64(move.BaseCritPercent)
	if move.CritModifiable {
		critPercent = clampF(critPercent+float64(sv.Get(stats.Critical)), 0, 100)
	}
	critRate := critPercent / 100.0

	power := float64(sv.Get(stats.Power))
	damage := float64(sv.Get(stats.Damage))
	critDamage := float64(sv.Get(stats.DamageCritical))

	var total float64
	for e := 0; e < 5; e++ {
		avgBase := move.ElementalDamage[e]*(1-critRate) + move.CritElementalDamage[e]*critRate
		if avgBase == 0 {
			continue
		}
		powerStat := float64(sv.Get(damageStats[e].power))
		damageStat := float64(sv.Get(damageStats[e].damage))
		contrib := avgBase*(1+(powerStat+power)/100) + (damage + damageStat) + critRate*critDamage
		total += contrib
	}
	return total * move.Weight
}

func violationTerm(cfg *Config, cat *catalog.Catalog, st *equipment.State, sv *stats.Vector, bonuses []equipment.SetBonus) float64 {
	var total float64
	totalSetBonus := equipment.TotalSetBonusCount(bonuses)

	for slot := 0; slot < catalog.NumSlots; slot++ {
		idx := st.Slot(slot)
		if !idx.IsPresent() {
			continue
		}
		item := cat.Item(idx)
		if item.Level > cfg.MaxLevel {
			total += float64(item.Level-cfg.MaxLevel) * violationLevelPenalty
		}
		total += float64(item.Predicate.Violation(sv, totalSetBonus)) * predicateViolationScale
	}

	total += duplicateDofusPenalty(st)
	total += sameSetRingsPenalty(cat, st)

	if cfg.ConsiderCharacteristics {
		spent := int32(0)
		for _, p := range st.CharacteristicPoints() {
			spent += p
		}
		overUsage := spent - cfg.AvailableCharacteristicPoints()
		if overUsage > 0 {
			total += float64(overUsage) * violationCharacteristicOverusePenalty
		}
	}

	return total
}

// duplicateDofusPenalty charges one penalty per pair of identical items
// among slots 9..=14 (dofus/trophy slots).
func duplicateDofusPenalty(st *equipment.State) float64 {
	var total float64
	for i := 9; i <= 14; i++ {
		for j := i + 1; j <= 14; j++ {
			if a, b := st.Slot(i), st.Slot(j); a.IsPresent() && a == b {
				total += violationDuplicatePenalty
			}
		}
	}
	return total
}

// sameSetRingsPenalty forbids both ring slots holding members of the same set.
func sameSetRingsPenalty(cat *catalog.Catalog, st *equipment.State) float64 {
	ring0, ring1 := st.Slot(3), st.Slot(4)
	if !ring0.IsPresent() || !ring1.IsPresent() {
		return 0
	}
	set0, set1 := cat.Item(ring0).SetID, cat.Item(ring1).SetID
	if set0.IsPresent() && set1.IsPresent() && set0 == set1 {
		return violationDuplicatePenalty
	}
	return 0
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsValid reports whether st's violation term evaluates to zero.
func IsValid(cfg *Config, cat *catalog.Catalog, st *equipment.State, bonuses []equipment.SetBonus) bool {
	derived := equipment.DerivedConfig{MaxLevel: cfg.MaxLevel, ExoAP: cfg.ExoAP, ExoMP: cfg.ExoMP, ExoRange: cfg.ExoRange}
	sv := st.Stats(derived, bonuses)
	return violationTerm(cfg, cat, st, &sv, bonuses) == 0
}

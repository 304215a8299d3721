// Package stats defines the fixed 51-statistic vector shared by the item
// catalog, wearability predicates, and the energy model.
package stats

import "strings"

// Stat identifies one of the 51 named character statistics. Values are
// dense ordinals so a Stat doubles as an index into a StatVector.
type Stat int

// The full stat enumeration. Order is part of the wire format: the engine
// request/response DTOs index by this ordinal. Catalog JSON names stats
// by string instead, resolved through ParseStat.
const (
	AP Stat = iota
	MP
	Range
	Vitality
	Agility
	Chance
	Strength
	Intelligence
	Power
	Critical
	Wisdom

	APReduction
	APParry
	MPReduction
	MPParry
	Heal
	Lock
	Dodge
	Initiative
	Summons
	Prospecting
	Pods

	Damage
	DamageCritical
	DamageNeutral
	DamageEarth
	DamageFire
	DamageWater
	DamageAir
	Reflect
	DamageTrap
	PowerTrap
	DamagePushback
	DamageSpell
	DamageWeapon
	DamageRange
	DamageMelee

	ResistanceNeutralFixed
	ResistanceNeutralPercent
	ResistanceEarthFixed
	ResistanceEarthPercent
	ResistanceFireFixed
	ResistanceFirePercent
	ResistanceWaterFixed
	ResistanceWaterPercent
	ResistanceAirFixed
	ResistanceAirPercent
	ResistanceCritical
	ResistancePushback
	ResistanceRange
	ResistanceMelee

	// numStats is the fixed width of a StatVector. Keep last.
	numStats
)

// NumStats is the fixed width of every StatVector.
const NumStats = int(numStats)

var statNames = [NumStats]string{
	"AP", "MP", "Range", "Vitality", "Agility", "Chance", "Strength", "Intelligence",
	"Power", "Critical", "Wisdom",
	"AP Reduction", "AP Parry", "MP Reduction", "MP Parry", "Heals", "Lock", "Dodge",
	"Initiative", "Summons", "Prospecting", "pods",
	"Damage", "Critical Damage", "Neutral Damage", "Earth Damage", "Fire Damage",
	"Water Damage", "Air Damage", "Reflect", "Trap Damage", "Power (traps)",
	"Pushback Damage", "% Spell Damage", "% Weapon Damage", "% Ranged Damage", "% Melee Damage",
	"Neutral Resistance", "% Neutral Resistance", "Earth Resistance", "% Earth Resistance",
	"Fire Resistance", "% Fire Resistance", "Water Resistance", "% Water Resistance",
	"Air Resistance", "% Air Resistance", "Critical Resistance", "Pushback Resistance",
	"% Ranged Resistance", "% Melee Resistance",
}

// identNames are the Go-identifier spellings of each stat (matching the
// constant names above, without spaces or punctuation). Catalog source
// data names stats this way; statNames above is the separate
// human-readable label used for display.
var identNames = [NumStats]string{
	"AP", "MP", "Range", "Vitality", "Agility", "Chance", "Strength", "Intelligence",
	"Power", "Critical", "Wisdom",
	"APReduction", "APParry", "MPReduction", "MPParry", "Heal", "Lock", "Dodge",
	"Initiative", "Summons", "Prospecting", "Pods",
	"Damage", "DamageCritical", "DamageNeutral", "DamageEarth", "DamageFire",
	"DamageWater", "DamageAir", "Reflect", "DamageTrap", "PowerTrap",
	"DamagePushback", "DamageSpell", "DamageWeapon", "DamageRange", "DamageMelee",
	"ResistanceNeutralFixed", "ResistanceNeutralPercent", "ResistanceEarthFixed", "ResistanceEarthPercent",
	"ResistanceFireFixed", "ResistanceFirePercent", "ResistanceWaterFixed", "ResistanceWaterPercent",
	"ResistanceAirFixed", "ResistanceAirPercent", "ResistanceCritical", "ResistancePushback",
	"ResistanceRange", "ResistanceMelee",
}

var statsByName map[string]Stat

func init() {
	statsByName = make(map[string]Stat, NumStats*2)
	for i, name := range statNames {
		statsByName[strings.ToLower(name)] = Stat(i)
	}
	for i, name := range identNames {
		statsByName[strings.ToLower(name)] = Stat(i)
	}
}

// String returns the human-readable stat label.
func (s Stat) String() string {
	if s < 0 || int(s) >= NumStats {
		return "Unknown"
	}
	return statNames[s]
}

// ParseStat resolves a stat's display name to its ordinal, case-insensitively.
//
// Postcondition: ok is false iff name does not match any known stat.
func ParseStat(name string) (stat Stat, ok bool) {
	s, ok := statsByName[strings.ToLower(name)]
	return s, ok
}

// Elements lists the four element stats, in the order element-aggregation
// rules (multi-element mode, damage power-stat lookup) iterate them.
var Elements = [4]Stat{Agility, Chance, Strength, Intelligence}

// IsElement reports whether s is one of the four element stats.
func IsElement(s Stat) bool {
	return s >= Agility && s <= Intelligence
}

// Derived caps applied after all stat contributions (§4.D stats()).
const (
	MaxAP    = 12
	MaxMP    = 6
	MaxRange = 6
	MaxResistancePercent = 50
)

// PercentResistances lists the five %-resistance stats capped at
// MaxResistancePercent.
var PercentResistances = [5]Stat{
	ResistanceNeutralPercent,
	ResistanceEarthPercent,
	ResistanceFirePercent,
	ResistanceWaterPercent,
	ResistanceAirPercent,
}

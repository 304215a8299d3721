package equipment

import "github.com/corvid-labs/equipwright/internal/stats"

// DerivedConfig carries the handful of Config fields Stats needs: the
// level cap (for level-initial AP) and the three "exo" bonus flags. It
// is a narrow view so this package does not depend on internal/optimizer.
type DerivedConfig struct {
	MaxLevel int32
	ExoAP    bool
	ExoMP    bool
	ExoRange bool
}

// Stats computes the post-aggregation stat vector (§4.D): cached item
// sum, plus active set bonuses, plus characteristic-point contributions,
// plus level-initial AP/MP, plus exo bonuses, then derived-cap clamping
// in the fixed order AP, MP, Range, then the five %-resistances.
func (s *State) Stats(cfg DerivedConfig, bonuses []SetBonus) stats.Vector {
	v := s.cachedTotals

	for _, b := range bonuses {
		v.Add(&b.Bonus)
	}

	v.Set(stats.Vitality, v.Get(stats.Vitality)+s.characteristicPoints[PointsVitality])
	v.Set(stats.Wisdom, v.Get(stats.Wisdom)+s.characteristicPoints[PointsWisdom]/3)

	v.Set(stats.Agility, v.Get(stats.Agility)+characteristicCurve(s.characteristicPoints[PointsAgility]))
	v.Set(stats.Chance, v.Get(stats.Chance)+characteristicCurve(s.characteristicPoints[PointsChance]))
	v.Set(stats.Strength, v.Get(stats.Strength)+characteristicCurve(s.characteristicPoints[PointsStrength]))
	v.Set(stats.Intelligence, v.Get(stats.Intelligence)+characteristicCurve(s.characteristicPoints[PointsIntelligence]))

	exoAP, exoMP, exoRange := int32(0), int32(0), int32(0)
	if cfg.ExoAP {
		exoAP = 1
	}
	if cfg.ExoMP {
		exoMP = 1
	}
	if cfg.ExoRange {
		exoRange = 1
	}

	v.Set(stats.AP, minInt32(v.Get(stats.AP)+levelInitialAP(cfg.MaxLevel)+exoAP, maxAP))
	v.Set(stats.MP, minInt32(v.Get(stats.MP)+3+exoMP, maxMP))
	v.Set(stats.Range, minInt32(v.Get(stats.Range)+exoRange, maxRange))

	for _, r := range stats.PercentResistances {
		v.Set(r, minInt32(v.Get(r), maxResistancePercent))
	}

	return v
}

// characteristicCurve implements calc(p) from §4.E: monotone,
// piecewise-linear, with slope breaks at 100, 300, 600 points spent.
func characteristicCurve(points int32) int32 {
	return minInt32(points, 100) +
		clamp32(points-100, 0, 200)/2 +
		clamp32(points-300, 0, 300)/3 +
		maxInt32(0, points-600)/4
}

func levelInitialAP(maxLevel int32) int32 {
	if maxLevel >= 100 {
		return 7
	}
	return 6
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func clamp32(v, lo, hi int32) int32 {
	return minInt32(maxInt32(v, lo), hi)
}

package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/equipment"
	"github.com/corvid-labs/equipwright/internal/predicate"
	"github.com/corvid-labs/equipwright/internal/stats"
)

func buildTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	src := catalog.Source{
		Items: []catalog.SourceItem{
			{Name: "Plain Hat", ItemType: "Hat", Stats: []catalog.SourceStat{{Stat: "Vitality", MaxStat: 50}}, Level: 10},
			{Name: "High Level Cloak", ItemType: "Cloak", Level: 200},
			{Name: "Conditional Amulet", ItemType: "Amulet", Level: 10},
		},
	}
	cat, err := catalog.Build(src)
	require.NoError(t, err)
	return cat
}

func baseConfig() *Config {
	cfg := &Config{MaxLevel: 100, Changeable: []int{0}}
	for i := range cfg.InitialSet {
		cfg.InitialSet[i] = catalog.NoItem
	}
	return cfg
}

func TestEnergyNonElementTermIsNegativeWeightedSum(t *testing.T) {
	cat := buildTestCatalog(t)
	cfg := baseConfig()
	cfg.Weights[stats.Vitality] = 2.0

	hat := cat.ItemsOfType(catalog.TypeHat)[0]
	st := equipment.NewEmpty()
	st.SetSlot(0, hat)
	st.AddItem(cat, hat)

	e := Energy(cfg, cat, &st, st.SetBonuses(cat))
	assert.InDelta(t, -100.0, e, 1e-9) // -2.0 * 50
}

func TestEnergyTargetCeilingCapsContribution(t *testing.T) {
	cat := buildTestCatalog(t)
	cfg := baseConfig()
	cfg.Weights[stats.Vitality] = 1.0
	target := int32(10)
	cfg.Targets[stats.Vitality] = &target

	hat := cat.ItemsOfType(catalog.TypeHat)[0]
	st := equipment.NewEmpty()
	st.SetSlot(0, hat)
	st.AddItem(cat, hat)

	e := Energy(cfg, cat, &st, st.SetBonuses(cat))
	assert.InDelta(t, -10.0, e, 1e-9)
}

func TestEnergyOverLevelItemPenalized(t *testing.T) {
	cat := buildTestCatalog(t)
	cfg := baseConfig()
	cfg.Changeable = []int{1}

	cloak := cat.ItemsOfType(catalog.TypeCloak)[0] // level 200, cap is 100
	st := equipment.NewEmpty()
	st.SetSlot(1, cloak)
	st.AddItem(cat, cloak)

	e := Energy(cfg, cat, &st, st.SetBonuses(cat))
	assert.InDelta(t, 100*1000.0, e, 1e-9)
}

func TestEnergyPredicateViolationScaledBy100(t *testing.T) {
	src := catalog.Source{
		Items: []catalog.SourceItem{
			{Name: "Strength Amulet", ItemType: "Amulet", Level: 1},
		},
	}
	cat, err := catalog.Build(src)
	require.NoError(t, err)
	cat.Item(0).Predicate = predicate.NewLeaf(stats.Strength, predicate.GreaterThan, 50)

	cfg := baseConfig()
	cfg.Changeable = []int{2}

	st := equipment.NewEmpty()
	st.SetSlot(2, 0)
	st.AddItem(cat, 0)

	e := Energy(cfg, cat, &st, st.SetBonuses(cat))
	// stats[Strength] = 0, violation = (50+1)-0 = 51, scaled x100 by the
	// energy model on top of the predicate's own magnitude.
	assert.InDelta(t, 51*100.0, e, 1e-9)
}

func TestEnergyDuplicateDofusPenalty(t *testing.T) {
	src := catalog.Source{
		Items: []catalog.SourceItem{
			{Name: "Trophy", ItemType: "Dofus", Level: 1},
		},
	}
	cat, err := catalog.Build(src)
	require.NoError(t, err)

	cfg := baseConfig()
	st := equipment.NewEmpty()
	st.SetSlot(9, 0)
	st.AddItem(cat, 0)
	st.SetSlot(10, 0)
	st.AddItem(cat, 0)

	e := Energy(cfg, cat, &st, st.SetBonuses(cat))
	assert.InDelta(t, 1000.0, e, 1e-9)
}

func TestEnergySameSetRingsPenalty(t *testing.T) {
	src := catalog.Source{
		Sets: []catalog.SourceSet{{Name: "Test", ID: "s", Bonuses: map[string][]catalog.SourceSetStat{"2": {{Stat: "Vitality", Value: 1}}}}},
		Items: []catalog.SourceItem{
			{Name: "Ring A", ItemType: "Ring", SetID: "s", Level: 1},
			{Name: "Ring B", ItemType: "Ring", SetID: "s", Level: 1},
		},
	}
	cat, err := catalog.Build(src)
	require.NoError(t, err)

	cfg := baseConfig()
	st := equipment.NewEmpty()
	st.SetSlot(3, 0)
	st.AddItem(cat, 0)
	st.SetSlot(4, 1)
	st.AddItem(cat, 1)

	e := Energy(cfg, cat, &st, st.SetBonuses(cat))
	assert.InDelta(t, 1000.0, e, 1e-9)
}

func TestEnergyMultiElementTakesMinimum(t *testing.T) {
	src := catalog.Source{
		Items: []catalog.SourceItem{
			{Name: "Strength Item", ItemType: "Amulet", Stats: []catalog.SourceStat{{Stat: "Strength", MaxStat: 100}}, Level: 1},
			{Name: "Intelligence Item", ItemType: "Ring", Stats: []catalog.SourceStat{{Stat: "Intelligence", MaxStat: 40}}, Level: 1},
		},
	}
	cat, err := catalog.Build(src)
	require.NoError(t, err)

	cfg := baseConfig()
	cfg.MultiElement = true
	cfg.Weights[stats.Strength] = 1.0
	cfg.Weights[stats.Intelligence] = 1.0

	st := equipment.NewEmpty()
	st.SetSlot(2, 0)
	st.AddItem(cat, 0)
	st.SetSlot(3, 1)
	st.AddItem(cat, 1)

	e := Energy(cfg, cat, &st, nil)
	assert.InDelta(t, -40.0, e, 1e-9)
}

func TestEnergyDamageTermZeroWhenNoBaseDamage(t *testing.T) {
	cat := buildTestCatalog(t)
	cfg := baseConfig()
	cfg.DamagingMoves = []DamagingMove{{Weight: 1}}

	st := equipment.NewEmpty()
	e := Energy(cfg, cat, &st, nil)
	assert.InDelta(t, 0.0, e, 1e-9)
}

func TestEnergyDamageTermComputesExpectedContribution(t *testing.T) {
	cat := buildTestCatalog(t)
	cfg := baseConfig()
	cfg.DamagingMoves = []DamagingMove{{
		Weight:              1,
		ElementalDamage:     [5]float64{10, 0, 0, 0, 0},
		CritElementalDamage: [5]float64{20, 0, 0, 0, 0},
		BaseCritPercent:     50,
		CritModifiable:      false,
	}}

	st := equipment.NewEmpty()
	e := Energy(cfg, cat, &st, nil)
	// avg_base = 10*0.5 + 20*0.5 = 15; no power/damage stats -> contrib = 15
	assert.InDelta(t, -15.0, e, 1e-9)
}

func TestIsValidReflectsViolationTerm(t *testing.T) {
	src := catalog.Source{
		Items: []catalog.SourceItem{{Name: "Trophy", ItemType: "Dofus", Level: 1}},
	}
	cat, err := catalog.Build(src)
	require.NoError(t, err)

	cfg := baseConfig()
	st := equipment.NewEmpty()
	assert.True(t, IsValid(cfg, cat, &st, nil))

	st.SetSlot(9, 0)
	st.AddItem(cat, 0)
	st.SetSlot(10, 0)
	st.AddItem(cat, 0)
	assert.False(t, IsValid(cfg, cat, &st, st.SetBonuses(cat)))
}

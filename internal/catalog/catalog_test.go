package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/equipwright/internal/predicate"
	"github.com/corvid-labs/equipwright/internal/stats"
)

func TestSetBonusAtSaturatesAndLowerBounds(t *testing.T) {
	set := Set{
		Name:    "Test Set",
		StartAt: 2,
		Bonuses: []stats.Vector{
			{},
			{},
		},
	}
	set.Bonuses[0].Set(stats.Vitality, 10)
	set.Bonuses[1].Set(stats.Vitality, 20)

	_, ok := set.BonusAt(1)
	assert.False(t, ok)

	v, ok := set.BonusAt(2)
	require.True(t, ok)
	assert.EqualValues(t, 10, v.Get(stats.Vitality))

	v, ok = set.BonusAt(3)
	require.True(t, ok)
	assert.EqualValues(t, 20, v.Get(stats.Vitality))

	// counts beyond the defined tiers saturate at the last entry.
	v, ok = set.BonusAt(10)
	require.True(t, ok)
	assert.EqualValues(t, 20, v.Get(stats.Vitality))
}

func TestSlotType(t *testing.T) {
	assert.Equal(t, TypeHat, SlotType(0))
	assert.Equal(t, TypeRing, SlotType(3))
	assert.Equal(t, TypeRing, SlotType(4))
	assert.Equal(t, TypeDofus, SlotType(9))
	assert.Equal(t, TypeDofus, SlotType(14))
	assert.Equal(t, TypeMount, SlotType(15))
}

func TestItemIndexNiceAbsentEncoding(t *testing.T) {
	assert.False(t, NoItem.IsPresent())
	assert.True(t, ItemIndex(0).IsPresent())
}

func TestBuildResolvesSetIDsAndStats(t *testing.T) {
	src := Source{
		Sets: []SourceSet{
			{
				Name: "Ring of Trials",
				ID:   "rot",
				Bonuses: map[string][]SourceSetStat{
					"2": {{Stat: "Vitality", Value: 40}},
				},
			},
		},
		Items: []SourceItem{
			{
				Name:     "Trial Ring A",
				ItemType: "Ring",
				Stats:    []SourceStat{{Stat: "Vitality", MaxStat: 30}},
				Level:    10,
				SetID:    "rot",
			},
			{
				Name:     "Trial Ring B",
				ItemType: "Ring",
				Stats:    []SourceStat{{Stat: "Strength", MaxStat: 15}},
				Level:    10,
				SetID:    "rot",
			},
		},
	}

	cat, err := Build(src)
	require.NoError(t, err)
	require.Equal(t, 2, cat.NumItems())
	require.Equal(t, 1, cat.NumSets())

	rings := cat.ItemsOfType(TypeRing)
	assert.Len(t, rings, 2)

	a := cat.Item(rings[0])
	assert.Equal(t, "Trial Ring A", a.Name)
	assert.EqualValues(t, 30, a.Stats.Get(stats.Vitality))
	assert.True(t, a.SetID.IsPresent())

	set := cat.Set(a.SetID)
	assert.Equal(t, "Ring of Trials", set.Name)
	bonus, ok := set.BonusAt(2)
	require.True(t, ok)
	assert.EqualValues(t, 40, bonus.Get(stats.Vitality))
}

func TestBuildUnknownItemTypeErrors(t *testing.T) {
	_, err := Build(Source{Items: []SourceItem{{Name: "X", ItemType: "NotAType"}}})
	assert.Error(t, err)
}

func TestParseConditionsLeaf(t *testing.T) {
	pred, err := parseConditions([]byte(`{"stat": "Strength", "operator": ">", "value": 50}`))
	require.NoError(t, err)
	assert.Equal(t, predicate.Leaf, pred.Kind)
	assert.Equal(t, stats.Strength, pred.Stat)
	assert.Equal(t, predicate.GreaterThan, pred.CmpOp)
	assert.EqualValues(t, 50, pred.Value)
}

func TestParseConditionsAndOr(t *testing.T) {
	pred, err := parseConditions([]byte(`{
		"and": [
			{"stat": "Strength", "operator": ">", "value": 50},
			{"or": [
				{"stat": "SET_BONUS", "operator": ">", "value": 2},
				{"stat": "Vitality", "operator": ">", "value": 100}
			]}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, predicate.Node, pred.Kind)
	assert.Equal(t, predicate.And, pred.BoolOp)
	require.Len(t, pred.Children, 2)
	assert.Equal(t, predicate.Node, pred.Children[1].Kind)
	assert.Equal(t, predicate.Or, pred.Children[1].BoolOp)
	assert.Equal(t, predicate.SetBonusLeaf, pred.Children[1].Children[0].Kind)
}

func TestParseConditionsEmptyIsNull(t *testing.T) {
	pred, err := parseConditions(nil)
	require.NoError(t, err)
	assert.Equal(t, predicate.Null, pred.Kind)
}

func TestParseConditionsUnsupportedOperator(t *testing.T) {
	_, err := parseConditions([]byte(`{"stat": "Strength", "operator": "!=", "value": 1}`))
	assert.Error(t, err)
}

func TestLoadEmbeddedBuildsNonEmptyCatalog(t *testing.T) {
	cat, err := LoadEmbedded()
	require.NoError(t, err)
	assert.Greater(t, cat.NumItems(), 0)
	assert.Greater(t, cat.NumSets(), 0)
	assert.NotEmpty(t, cat.ItemsOfType(TypeRing))
}

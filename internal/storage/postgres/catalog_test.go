package postgres

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvid-labs/equipwright/internal/catalog"
)

func TestCatalogStoreDecodesStatRows(t *testing.T) {
	var rows []dbStatRow
	raw := []byte(`[{"stat":"Vitality","max_stat":20},{"stat":"Strength","max_stat":10}]`)
	require.NoError(t, json.Unmarshal(raw, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Vitality", rows[0].Stat)
	assert.Equal(t, int32(20), rows[0].MaxStat)
}

func TestCatalogStoreDecodesSetBonusTiers(t *testing.T) {
	var tiers map[string][]dbSetStatRow
	raw := []byte(`{"2":[{"stat":"Vitality","value":30}],"3":[{"stat":"Strength","value":20}]}`)
	require.NoError(t, json.Unmarshal(raw, &tiers))
	require.Len(t, tiers, 2)
	assert.Equal(t, int32(30), tiers["2"][0].Value)
}

func TestSourceShapeIsBuildable(t *testing.T) {
	src := catalog.Source{
		Sets: []catalog.SourceSet{
			{Name: "Gelano", ID: "gelano", Bonuses: map[string][]catalog.SourceSetStat{
				"2": {{Stat: "Vitality", Value: 30}},
			}},
		},
		Items: []catalog.SourceItem{
			{Name: "Gelano Hat", ItemType: "Hat", SetID: "gelano", Level: 50,
				Stats: []catalog.SourceStat{{Stat: "Vitality", MaxStat: 40}}},
		},
	}
	cat, err := catalog.Build(src)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.NumItems())
	assert.Equal(t, 1, cat.NumSets())
}

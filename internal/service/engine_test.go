package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/stats"
)

func testEngineCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Build(catalog.Source{
		Items: []catalog.SourceItem{
			{Name: "Hat A", ItemType: "Hat", Stats: []catalog.SourceStat{{Stat: "Vitality", MaxStat: 20}}, Level: 10},
		},
	})
	require.NoError(t, err)
	return cat
}

func TestOptimizeReturnsValidResponse(t *testing.T) {
	cat := testEngineCatalog(t)
	engine := NewEngine(cat, zap.NewNop())

	req := Request{
		Iterations:         100,
		InitialTemperature: 1000,
		MaxLevel:           50,
	}
	req.Weights[stats.Vitality] = 1.0

	resp, err := engine.Optimize(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, resp.Valid)
}

func TestOptimizeRejectsBadRequest(t *testing.T) {
	cat := testEngineCatalog(t)
	engine := NewEngine(cat, zap.NewNop())

	req := Request{MaxLevel: -1}
	_, err := engine.Optimize(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsInvalidState(err))
}

func TestOptimizeRejectsInvalidInitialItem(t *testing.T) {
	cat := testEngineCatalog(t)
	engine := NewEngine(cat, zap.NewNop())

	hatIdx := uint32(0)
	req := Request{
		MaxLevel:           50,
		Iterations:         10,
		InitialTemperature: 1000,
	}
	req.InitialItems[1] = &hatIdx // slot 1 is Cloak, item is a Hat

	_, err := engine.Optimize(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsInvalidItem(err))
}

func TestOptimizeDefaultsIterationsAndTemperature(t *testing.T) {
	req := &Request{}
	cfg := req.toConfig()
	assert.EqualValues(t, 1_000_000, cfg.Iterations)
	assert.EqualValues(t, 1000, cfg.InitialTemperature)
}

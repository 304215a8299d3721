package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/presets"
	"github.com/corvid-labs/equipwright/internal/service"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cat, err := catalog.Build(catalog.Source{
		Items: []catalog.SourceItem{
			{Name: "Hat A", ItemType: "Hat", Stats: []catalog.SourceStat{{Stat: "Vitality", MaxStat: 20}}, Level: 10},
		},
	})
	require.NoError(t, err)

	engine := service.NewEngine(cat, zap.NewNop())
	registry, err := presets.LoadEmbedded()
	require.NoError(t, err)

	return NewRouter(engine, cat, registry, "", zap.NewNop())
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptimizeEndpointHappyPath(t *testing.T) {
	router := testRouter(t)

	body, err := json.Marshal(optimizeRequestDTO{
		MaxLevel:           50,
		Iterations:         100,
		InitialTemperature: 1000,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/optimize", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp optimizeResponseDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestOptimizeEndpointMalformedBody(t *testing.T) {
	router := testRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/optimize", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemsForSlotEndpoint(t *testing.T) {
	router := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/items/slot/0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []itemDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "Hat A", items[0].Name)
}

func TestItemsForSlotEndpointRejectsOutOfRange(t *testing.T) {
	router := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/items/slot/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPresetsEndpoint(t *testing.T) {
	router := testRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []presets.Preset
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	assert.NotEmpty(t, list)
}

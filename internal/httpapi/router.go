package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/presets"
	"github.com/corvid-labs/equipwright/internal/service"
)

// API bundles the dependencies the HTTP handlers need.
type API struct {
	engine  *service.Engine
	catalog *catalog.Catalog
	presets *presets.Registry
	logger  *zap.Logger
}

// NewRouter builds a gorilla/mux router exposing the optimizer's HTTP
// surface plus a static file mount for the companion web UI.
func NewRouter(engine *service.Engine, cat *catalog.Catalog, presetRegistry *presets.Registry, staticDir string, logger *zap.Logger) *mux.Router {
	api := &API{engine: engine, catalog: cat, presets: presetRegistry, logger: logger}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware(logger))

	router.HandleFunc("/healthz", api.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/optimize", api.handleOptimize).Methods(http.MethodPost)
	router.HandleFunc("/api/items/slot/{slot}", api.handleItemsForSlot).Methods(http.MethodGet)
	router.HandleFunc("/api/presets", api.handlePresets).Methods(http.MethodGet)

	if staticDir != "" {
		router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
	}

	return router
}

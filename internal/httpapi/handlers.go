package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/service"
)

func (api *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (api *API) handleOptimize(w http.ResponseWriter, r *http.Request) {
	logger := loggerFromContext(r.Context())

	var dto optimizeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	resp, err := api.engine.Optimize(r.Context(), dto.toRequest())
	if err != nil {
		switch {
		case service.IsInvalidItem(err):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case service.IsInvalidState(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("optimize handler failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "optimization failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, fromResponse(resp))
}

func (api *API) handleItemsForSlot(w http.ResponseWriter, r *http.Request) {
	slotStr := mux.Vars(r)["slot"]
	slot, err := strconv.Atoi(slotStr)
	if err != nil || slot < 0 || slot >= catalog.NumSlots {
		writeError(w, http.StatusBadRequest, "slot must be an integer in [0, 16)")
		return
	}

	itemType := catalog.SlotType(slot)
	items := itemListDTO(api.catalog, api.catalog.ItemsOfType(itemType))
	writeJSON(w, http.StatusOK, items)
}

func (api *API) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.presets.List())
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

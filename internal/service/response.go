package service

import (
	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/equipment"
	"github.com/corvid-labs/equipwright/internal/optimizer"
	"github.com/corvid-labs/equipwright/internal/stats"
)

// ItemResponse describes one equipped item in a Response.
type ItemResponse struct {
	ItemIndex uint32
	Name      string
	ItemType  catalog.ItemType
	Level     int32
	Stats     stats.Vector
	ImageURL  string
}

// SetBonusResponse describes one active set's resolved bonus.
type SetBonusResponse struct {
	Name        string
	MemberCount int32
	Bonus       stats.Vector
}

// Response is the engine's structured output (§6).
type Response struct {
	Energy                float64
	OverallCharacteristics stats.Vector
	Items                 [catalog.NumSlots]*ItemResponse
	SetBonuses            []SetBonusResponse
	Valid                 bool
	CharacteristicPoints  [equipment.NumCharacteristicPools]int32
}

// buildResponse translates a finished optimization into a Response,
// grounded on the original server's OptimiseResponse construction.
func buildResponse(cfg *optimizer.Config, cat *catalog.Catalog, final *equipment.State) Response {
	bonuses := final.SetBonuses(cat)
	derived := equipment.DerivedConfig{MaxLevel: cfg.MaxLevel, ExoAP: cfg.ExoAP, ExoMP: cfg.ExoMP, ExoRange: cfg.ExoRange}

	resp := Response{
		Energy:                 -optimizer.Energy(cfg, cat, final, bonuses),
		OverallCharacteristics: final.Stats(derived, bonuses),
		Valid:                  optimizer.IsValid(cfg, cat, final, bonuses),
		CharacteristicPoints:   final.CharacteristicPoints(),
	}

	for slot := 0; slot < catalog.NumSlots; slot++ {
		idx := final.Slot(slot)
		if !idx.IsPresent() {
			continue
		}
		item := cat.Item(idx)
		resp.Items[slot] = &ItemResponse{
			ItemIndex: uint32(idx),
			Name:      item.Name,
			ItemType:  item.ItemType,
			Level:     item.Level,
			Stats:     item.Stats,
			ImageURL:  item.ImageURL,
		}
	}

	for _, b := range bonuses {
		set := cat.Set(b.SetID)
		resp.SetBonuses = append(resp.SetBonuses, SetBonusResponse{
			Name:        set.Name,
			MemberCount: b.MemberCount,
			Bonus:       b.Bonus,
		})
	}

	return resp
}

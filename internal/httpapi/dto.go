package httpapi

import (
	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/service"
	"github.com/corvid-labs/equipwright/internal/stats"
)

// optimizeRequestDTO is the wire shape of POST /api/optimize's body,
// grounded on the original server's OptimiseRequest.
type optimizeRequestDTO struct {
	Weights                 [stats.NumStats]float64        `json:"weights"`
	Targets                 [stats.NumStats]*int32          `json:"targets"`
	MaxLevel                int32                           `json:"max_level"`
	InitialItems            [catalog.NumSlots]*uint32       `json:"initial_items"`
	FixedItems              []int                           `json:"fixed_items"`
	BannedItems             []uint32                        `json:"banned_items"`
	ExoAP                   bool                            `json:"ap_exo"`
	ExoMP                   bool                            `json:"mp_exo"`
	ExoRange                bool                            `json:"range_exo"`
	MultiElement            bool                            `json:"multi_element"`
	ChangedItemWeight       float64                         `json:"changed_item_weight"`
	DamagingMoves           []damagingMoveDTO               `json:"damaging_moves_weights"`
	Iterations              int64                           `json:"iterations"`
	InitialTemperature      float64                         `json:"initial_temperature"`
	ConsiderCharacteristics bool                            `json:"consider_characteristics"`
}

type damagingMoveDTO struct {
	Weight              float64    `json:"weight"`
	BaseDamage          [5]float64 `json:"base_damage"`
	BaseCritDamage      [5]float64 `json:"base_crit_damage"`
	BaseCritPercent     int32      `json:"base_crit_percent"`
	CritModifiable      bool       `json:"crit_modifiable"`
}

func (dto *optimizeRequestDTO) toRequest() service.Request {
	req := service.Request{
		Weights:                 dto.Weights,
		Targets:                 dto.Targets,
		MaxLevel:                dto.MaxLevel,
		InitialItems:            dto.InitialItems,
		FixedItems:              dto.FixedItems,
		BannedItems:             dto.BannedItems,
		ExoAP:                   dto.ExoAP,
		ExoMP:                   dto.ExoMP,
		ExoRange:                dto.ExoRange,
		MultiElement:            dto.MultiElement,
		ChangedItemWeight:       dto.ChangedItemWeight,
		Iterations:              dto.Iterations,
		InitialTemperature:      dto.InitialTemperature,
		ConsiderCharacteristics: dto.ConsiderCharacteristics,
	}
	for _, m := range dto.DamagingMoves {
		req.DamagingMoves = append(req.DamagingMoves, service.DamagingMoveRequest{
			Weight:              m.Weight,
			ElementalDamage:     m.BaseDamage,
			CriticalDamage:      m.BaseCritDamage,
			BaseCriticalPercent: m.BaseCritPercent,
			CriticalModifiable:  m.CritModifiable,
		})
	}
	return req
}

// optimizeResponseDTO is the wire shape of POST /api/optimize's body.
type optimizeResponseDTO struct {
	Energy                 float64                    `json:"energy"`
	OverallCharacteristics stats.Vector               `json:"overall_characteristics"`
	Items                  [catalog.NumSlots]*itemDTO `json:"items"`
	SetBonuses             []setBonusDTO              `json:"set_bonuses"`
	Valid                  bool                       `json:"valid"`
	Characteristics        [6]int32                   `json:"characteristics"`
}

type itemDTO struct {
	ItemIndex uint32       `json:"item_id"`
	Name      string       `json:"name"`
	ItemType  string       `json:"item_type"`
	Level     int32        `json:"level"`
	Stats     stats.Vector `json:"characteristics"`
	ImageURL  string       `json:"image_url"`
}

type setBonusDTO struct {
	Name        string       `json:"name"`
	MemberCount int32        `json:"number_of_items"`
	Bonus       stats.Vector `json:"characteristics"`
}

func fromResponse(resp service.Response) optimizeResponseDTO {
	dto := optimizeResponseDTO{
		Energy:                 resp.Energy,
		OverallCharacteristics: resp.OverallCharacteristics,
		Valid:                  resp.Valid,
		Characteristics:        resp.CharacteristicPoints,
	}
	for slot, item := range resp.Items {
		if item == nil {
			continue
		}
		dto.Items[slot] = &itemDTO{
			ItemIndex: item.ItemIndex,
			Name:      item.Name,
			ItemType:  item.ItemType.String(),
			Level:     item.Level,
			Stats:     item.Stats,
			ImageURL:  item.ImageURL,
		}
	}
	for _, b := range resp.SetBonuses {
		dto.SetBonuses = append(dto.SetBonuses, setBonusDTO{
			Name:        b.Name,
			MemberCount: b.MemberCount,
			Bonus:       b.Bonus,
		})
	}
	return dto
}

func itemListDTO(cat *catalog.Catalog, indices []catalog.ItemIndex) []itemDTO {
	out := make([]itemDTO, 0, len(indices))
	for _, idx := range indices {
		item := cat.Item(idx)
		out = append(out, itemDTO{
			ItemIndex: uint32(idx),
			Name:      item.Name,
			ItemType:  item.ItemType.String(),
			Level:     item.Level,
			Stats:     item.Stats,
			ImageURL:  item.ImageURL,
		})
	}
	return out
}

package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed data/items.json data/weapons.json data/mounts.json data/sets.json
var embeddedData embed.FS

// jsonItemName mirrors the upstream export's {"en": "..."} name wrapper.
type jsonItemName struct {
	EN string `json:"en"`
}

type jsonItemStat struct {
	Stat    string `json:"stat"`
	MaxStat int32  `json:"maxStat"`
}

type jsonConditions struct {
	Conditions json.RawMessage `json:"conditions"`
}

type jsonItem struct {
	Name       jsonItemName    `json:"name"`
	ItemType   string          `json:"itemType"`
	SetID      *string         `json:"setID"`
	Stats      []jsonItemStat  `json:"stats"`
	Level      int32           `json:"level"`
	Conditions *jsonConditions `json:"conditions"`
	ImageURL   *string         `json:"imageUrl"`
}

type jsonSetStat struct {
	Stat  *string `json:"stat"`
	Value *int32  `json:"value"`
}

type jsonSet struct {
	Name    jsonItemName               `json:"name"`
	ID      string                     `json:"id"`
	Bonuses map[string][]jsonSetStat   `json:"bonuses"`
}

// ParseItemsJSON decodes one or more item-array JSON documents (items,
// weapons, mounts, ...) in the upstream export shape into SourceItems.
func ParseItemsJSON(documents ...[]byte) ([]SourceItem, error) {
	var out []SourceItem
	for _, doc := range documents {
		var raw []jsonItem
		if err := json.Unmarshal(doc, &raw); err != nil {
			return nil, fmt.Errorf("catalog: parse items json: %w", err)
		}
		for _, ri := range raw {
			si := SourceItem{
				Name:     ri.Name.EN,
				ItemType: ri.ItemType,
				Level:    ri.Level,
			}
			if ri.SetID != nil {
				si.SetID = *ri.SetID
			}
			if ri.ImageURL != nil {
				si.ImageURL = *ri.ImageURL
			}
			for _, s := range ri.Stats {
				si.Stats = append(si.Stats, SourceStat{Stat: s.Stat, MaxStat: s.MaxStat})
			}
			if ri.Conditions != nil {
				si.Conditions = ri.Conditions.Conditions
			}
			out = append(out, si)
		}
	}
	return out, nil
}

// ParseSetsJSON decodes the set-export JSON document into SourceSets.
func ParseSetsJSON(doc []byte) ([]SourceSet, error) {
	var raw []jsonSet
	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("catalog: parse sets json: %w", err)
	}
	out := make([]SourceSet, 0, len(raw))
	for _, rs := range raw {
		bonuses := make(map[string][]SourceSetStat, len(rs.Bonuses))
		for count, statList := range rs.Bonuses {
			var entries []SourceSetStat
			for _, s := range statList {
				if s.Stat == nil || s.Value == nil {
					continue
				}
				entries = append(entries, SourceSetStat{Stat: *s.Stat, Value: *s.Value})
			}
			bonuses[count] = entries
		}
		out = append(out, SourceSet{Name: rs.Name.EN, ID: rs.ID, Bonuses: bonuses})
	}
	return out, nil
}

// LoadEmbedded builds a Catalog from the item and set JSON snapshot
// embedded in the binary at compile time (data/*.json), mirroring the
// upstream build-once-from-data-files approach.
func LoadEmbedded() (*Catalog, error) {
	itemsDoc, err := embeddedData.ReadFile("data/items.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: read items.json: %w", err)
	}
	weaponsDoc, err := embeddedData.ReadFile("data/weapons.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: read weapons.json: %w", err)
	}
	mountsDoc, err := embeddedData.ReadFile("data/mounts.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: read mounts.json: %w", err)
	}
	setsDoc, err := embeddedData.ReadFile("data/sets.json")
	if err != nil {
		return nil, fmt.Errorf("catalog: read sets.json: %w", err)
	}

	items, err := ParseItemsJSON(itemsDoc, weaponsDoc, mountsDoc)
	if err != nil {
		return nil, err
	}
	sets, err := ParseSetsJSON(setsDoc)
	if err != nil {
		return nil, err
	}
	return Build(Source{Items: items, Sets: sets})
}

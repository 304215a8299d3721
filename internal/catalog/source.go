package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/corvid-labs/equipwright/internal/predicate"
	"github.com/corvid-labs/equipwright/internal/stats"
)

// Source is the catalog's on-disk/DB representation before stat-name and
// set-id resolution. Both the embedded JSON loader and the Postgres
// catalog store produce this shape; Build is agnostic to which one fed it.
type Source struct {
	Items []SourceItem
	Sets  []SourceSet
}

// SourceItem mirrors the upstream item-export JSON shape: a display name,
// a free-text item type string, a sparse list of (stat name, max value)
// pairs, level, an optional string set id, nested and/or wearability
// conditions, and an optional image URL.
type SourceItem struct {
	Name       string
	ItemType   string
	Stats      []SourceStat
	Level      int32
	SetID      string // empty means no set
	Conditions json.RawMessage
	ImageURL   string
}

// SourceStat is one raw (name, value) pair from a source item's stat list.
type SourceStat struct {
	Stat     string
	MaxStat  int32
}

// SourceSet mirrors the upstream set-export JSON shape: a display name, a
// string id resolved to a SetIndex at build time, and a sparse map from
// member-count string to a list of stat bonuses at that count.
type SourceSet struct {
	Name    string
	ID      string
	Bonuses map[string][]SourceSetStat
}

// SourceSetStat is one (stat name, value) pair within a set bonus tier.
type SourceSetStat struct {
	Stat  string
	Value int32
}

// rawCondition is the wire shape of one wearability-predicate node:
// either {"and": [...]}, {"or": [...]}, or a leaf {"stat", "operator",
// "value"}. Exactly one of And/Or/leaf fields is populated per node.
type rawCondition struct {
	And      []rawCondition `json:"and"`
	Or       []rawCondition `json:"or"`
	Stat     string         `json:"stat"`
	Operator string         `json:"operator"`
	Value    int32          `json:"value"`
}

// parseConditions decodes a nested and/or/leaf JSON predicate tree. An
// empty or absent raw message yields the always-satisfied Null predicate.
func parseConditions(raw json.RawMessage) (predicate.Predicate, error) {
	if len(raw) == 0 {
		return predicate.NewNull(), nil
	}
	var rc rawCondition
	if err := json.Unmarshal(raw, &rc); err != nil {
		return predicate.Predicate{}, fmt.Errorf("catalog: decode conditions: %w", err)
	}
	return parseRawCondition(rc)
}

func parseRawCondition(rc rawCondition) (predicate.Predicate, error) {
	switch {
	case len(rc.And) > 0:
		children := make([]predicate.Predicate, 0, len(rc.And))
		for _, c := range rc.And {
			child, err := parseRawCondition(c)
			if err != nil {
				return predicate.Predicate{}, err
			}
			children = append(children, child)
		}
		return predicate.NewNode(predicate.And, children...), nil
	case len(rc.Or) > 0:
		children := make([]predicate.Predicate, 0, len(rc.Or))
		for _, c := range rc.Or {
			child, err := parseRawCondition(c)
			if err != nil {
				return predicate.Predicate{}, err
			}
			children = append(children, child)
		}
		return predicate.NewNode(predicate.Or, children...), nil
	case rc.Stat == "":
		return predicate.NewNull(), nil
	default:
		op, err := parseOperator(rc.Operator)
		if err != nil {
			return predicate.Predicate{}, err
		}
		if rc.Stat == "SET_BONUS" {
			return predicate.NewSetBonusLeaf(op, rc.Value), nil
		}
		stat, ok := stats.ParseStat(rc.Stat)
		if !ok {
			// Stats the catalog source names but this engine does not
			// model (cosmetic-only upstream fields) are intentionally
			// ignored rather than rejected, mirroring the upstream
			// loader's IntentionallyIgnored case.
			return predicate.NewNull(), nil
		}
		return predicate.NewLeaf(stat, op, rc.Value), nil
	}
}

func parseOperator(op string) (predicate.Op, error) {
	switch op {
	case "<":
		return predicate.LessThan, nil
	case ">":
		return predicate.GreaterThan, nil
	default:
		return 0, fmt.Errorf("catalog: unsupported restriction operator %q", op)
	}
}

var itemTypeNames = map[string]ItemType{
	"Pet": TypeMount, "Petsmount": TypeMount, "Mount": TypeMount,
	"Axe": TypeWeapon, "Bow": TypeWeapon, "Dagger": TypeWeapon, "Hammer": TypeWeapon,
	"Pickaxe": TypeWeapon, "Scythe": TypeWeapon, "Shovel": TypeWeapon,
	"Soul stone": TypeWeapon, "Staff": TypeWeapon, "Sword": TypeWeapon,
	"Tool": TypeWeapon, "Wand": TypeWeapon,
	"Hat":      TypeHat,
	"Cloak":    TypeCloak, "Backpack": TypeCloak,
	"Amulet":   TypeAmulet,
	"Ring":     TypeRing,
	"Belt":     TypeBelt,
	"Boots":    TypeBoot,
	"Shield":   TypeShield,
	"Dofus": TypeDofus, "Trophy": TypeDofus, "Prysmaradite": TypeDofus,
}

// Build resolves a Source into an immutable Catalog: stat names and set
// ids are looked up once here, items are assigned dense indices, and
// categories are bucketed for the optimizer's candidate-list construction.
func Build(src Source) (*Catalog, error) {
	setIDs := make(map[string]SetIndex, len(src.Sets))
	sets := make([]Set, 0, len(src.Sets))
	for i, s := range src.Sets {
		set, err := buildSet(s)
		if err != nil {
			return nil, fmt.Errorf("catalog: set %q: %w", s.Name, err)
		}
		sets = append(sets, set)
		setIDs[s.ID] = SetIndex(i)
	}

	items := make([]Item, 0, len(src.Items))
	var itemTypes [numItemTypes][]ItemIndex
	for _, si := range src.Items {
		item, err := buildItem(si, setIDs)
		if err != nil {
			return nil, fmt.Errorf("catalog: item %q: %w", si.Name, err)
		}
		idx := ItemIndex(len(items))
		items = append(items, item)
		itemTypes[item.ItemType] = append(itemTypes[item.ItemType], idx)
	}

	return &Catalog{items: items, sets: sets, itemTypes: itemTypes}, nil
}

func buildSet(s SourceSet) (Set, error) {
	maxCount := 0
	for countStr := range s.Bonuses {
		var count int
		if _, err := fmt.Sscanf(countStr, "%d", &count); err != nil {
			return Set{}, fmt.Errorf("bad member-count key %q: %w", countStr, err)
		}
		if count > maxCount {
			maxCount = count
		}
	}

	bonuses := make([]stats.Vector, maxCount+1)
	haveAny := false
	for countStr, statList := range s.Bonuses {
		var count int
		fmt.Sscanf(countStr, "%d", &count)
		var v stats.Vector
		for _, bs := range statList {
			stat, ok := stats.ParseStat(bs.Stat)
			if !ok {
				continue
			}
			v.Set(stat, bs.Value)
		}
		bonuses[count] = v
		haveAny = true
	}
	startAt := 0
	if !haveAny {
		bonuses = nil
	} else {
		// Trim leading unset tiers so StartAt reflects the first
		// meaningful member count rather than always zero.
		for startAt < len(bonuses) {
			if _, ok := s.Bonuses[fmt.Sprintf("%d", startAt)]; ok {
				break
			}
			startAt++
		}
		bonuses = bonuses[startAt:]
	}

	return Set{Name: s.Name, StartAt: startAt, Bonuses: bonuses}, nil
}

func buildItem(si SourceItem, setIDs map[string]SetIndex) (Item, error) {
	itemType, ok := itemTypeNames[si.ItemType]
	if !ok {
		return Item{}, fmt.Errorf("unknown item type %q", si.ItemType)
	}

	var v stats.Vector
	for _, s := range si.Stats {
		stat, ok := stats.ParseStat(s.Stat)
		if !ok {
			continue
		}
		v.Set(stat, s.MaxStat)
	}

	pred, err := parseConditions(si.Conditions)
	if err != nil {
		return Item{}, err
	}

	setID := NoSet
	if si.SetID != "" {
		if resolved, ok := setIDs[si.SetID]; ok {
			setID = resolved
		}
	}

	return Item{
		Name:      si.Name,
		ItemType:  itemType,
		Stats:     v,
		Level:     si.Level,
		SetID:     setID,
		Predicate: pred,
		ImageURL:  si.ImageURL,
	}, nil
}

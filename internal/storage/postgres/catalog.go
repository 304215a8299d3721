package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/corvid-labs/equipwright/internal/catalog"
)

// CatalogStore loads the equipment catalog from the items/item_sets tables,
// producing the same catalog.Source shape the embedded JSON loader does so
// catalog.Build is agnostic to which one fed it.
type CatalogStore struct {
	pool *Pool
}

// NewCatalogStore wraps a connected Pool for catalog reads.
func NewCatalogStore(pool *Pool) *CatalogStore {
	return &CatalogStore{pool: pool}
}

type dbStatRow struct {
	Stat    string `json:"stat"`
	MaxStat int32  `json:"max_stat"`
}

type dbSetStatRow struct {
	Stat  string `json:"stat"`
	Value int32  `json:"value"`
}

// Load reads the full catalog.Source from the database.
//
// Precondition: the items and item_sets tables must exist (see
// db/migrations/0001_catalog.up.sql).
// Postcondition: returns a Source ready for catalog.Build, or a non-nil error.
func (s *CatalogStore) Load(ctx context.Context) (catalog.Source, error) {
	sets, err := s.loadSets(ctx)
	if err != nil {
		return catalog.Source{}, err
	}
	items, err := s.loadItems(ctx)
	if err != nil {
		return catalog.Source{}, err
	}
	return catalog.Source{Items: items, Sets: sets}, nil
}

func (s *CatalogStore) loadSets(ctx context.Context) ([]catalog.SourceSet, error) {
	rows, err := s.pool.DB().Query(ctx, `SELECT id, name, bonuses FROM item_sets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying item_sets: %w", err)
	}
	defer rows.Close()

	var sets []catalog.SourceSet
	for rows.Next() {
		var id, name string
		var rawBonuses []byte
		if err := rows.Scan(&id, &name, &rawBonuses); err != nil {
			return nil, fmt.Errorf("scanning item_sets row: %w", err)
		}

		var tiers map[string][]dbSetStatRow
		if err := json.Unmarshal(rawBonuses, &tiers); err != nil {
			return nil, fmt.Errorf("decoding bonuses for set %q: %w", id, err)
		}
		bonuses := make(map[string][]catalog.SourceSetStat, len(tiers))
		for count, statList := range tiers {
			converted := make([]catalog.SourceSetStat, 0, len(statList))
			for _, st := range statList {
				converted = append(converted, catalog.SourceSetStat{Stat: st.Stat, Value: st.Value})
			}
			bonuses[count] = converted
		}

		sets = append(sets, catalog.SourceSet{Name: name, ID: id, Bonuses: bonuses})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading item_sets rows: %w", err)
	}
	return sets, nil
}

func (s *CatalogStore) loadItems(ctx context.Context) ([]catalog.SourceItem, error) {
	rows, err := s.pool.DB().Query(ctx, `
		SELECT name, item_type, level, COALESCE(set_id, ''), stats, conditions, image_url
		FROM items
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	var items []catalog.SourceItem
	for rows.Next() {
		var name, itemType, setID, imageURL string
		var level int32
		var rawStats []byte
		var rawConditions []byte
		if err := rows.Scan(&name, &itemType, &level, &setID, &rawStats, &rawConditions, &imageURL); err != nil {
			return nil, fmt.Errorf("scanning items row: %w", err)
		}

		var statRows []dbStatRow
		if err := json.Unmarshal(rawStats, &statRows); err != nil {
			return nil, fmt.Errorf("decoding stats for item %q: %w", name, err)
		}
		stats := make([]catalog.SourceStat, 0, len(statRows))
		for _, st := range statRows {
			stats = append(stats, catalog.SourceStat{Stat: st.Stat, MaxStat: st.MaxStat})
		}

		items = append(items, catalog.SourceItem{
			Name:       name,
			ItemType:   itemType,
			Stats:      stats,
			Level:      level,
			SetID:      setID,
			Conditions: json.RawMessage(rawConditions),
			ImageURL:   imageURL,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading items rows: %w", err)
	}
	return items, nil
}

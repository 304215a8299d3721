// Package presets loads named, versionable objective bundles (weights,
// targets, and flags) from YAML files, offered as a convenience
// alternative to supplying raw weights (§3 "Objective preset").
package presets

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/corvid-labs/equipwright/internal/stats"
)

//go:embed *.yaml
var embedded embed.FS

// Preset is a named weight/target/flag bundle; the CLI copies one into
// an optimizer.Config.
type Preset struct {
	Name              string          `yaml:"name"`
	Description       string          `yaml:"description"`
	Weights           map[string]float64 `yaml:"weights"`
	Targets           map[string]int32   `yaml:"targets"`
	MultiElement      bool            `yaml:"multi_element"`
	ChangedItemWeight float64         `yaml:"changed_item_weight"`
}

// WeightVector resolves the preset's named weights into a dense
// 51-length vector, ignoring any stat name this build doesn't recognize.
func (p *Preset) WeightVector() [stats.NumStats]float64 {
	var out [stats.NumStats]float64
	for name, w := range p.Weights {
		if s, ok := stats.ParseStat(name); ok {
			out[s] = w
		}
	}
	return out
}

// TargetVector resolves the preset's named targets into a dense
// 51-length pointer array; unset entries are nil.
func (p *Preset) TargetVector() [stats.NumStats]*int32 {
	var out [stats.NumStats]*int32
	for name, v := range p.Targets {
		if s, ok := stats.ParseStat(name); ok {
			value := v
			out[s] = &value
		}
	}
	return out
}

// Registry is an immutable, name-indexed collection of presets.
type Registry struct {
	byName map[string]Preset
}

// LoadEmbedded parses every *.yaml file embedded in this package at
// compile time. configs/presets/ at the repo root holds a copy of the
// same files; it is not read at runtime, so edits there do not change
// the loaded presets.
func LoadEmbedded() (*Registry, error) {
	entries, err := embedded.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("presets: read embedded dir: %w", err)
	}

	reg := &Registry{byName: make(map[string]Preset)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := embedded.ReadFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("presets: read %s: %w", entry.Name(), err)
		}
		var p Preset
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("presets: parse %s: %w", entry.Name(), err)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("presets: %s missing name", entry.Name())
		}
		reg.byName[p.Name] = p
	}
	return reg, nil
}

// Get looks up a preset by name.
func (r *Registry) Get(name string) (Preset, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Names returns every preset name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// List returns every preset, sorted by name.
func (r *Registry) List() []Preset {
	names := r.Names()
	out := make([]Preset, 0, len(names))
	for _, n := range names {
		out = append(out, r.byName[n])
	}
	return out
}

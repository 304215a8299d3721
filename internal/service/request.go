// Package service wraps the optimizer core behind a concurrency-bounded
// facade: it translates a transport-agnostic Request into an
// optimizer.Config, runs one optimization under a semaphore, and
// translates the result back into a Response.
package service

import (
	"fmt"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/optimizer"
	"github.com/corvid-labs/equipwright/internal/stats"
)

// DamagingMoveRequest is the transport-level shape of one damage-expectation term.
type DamagingMoveRequest struct {
	Weight              float64
	ElementalDamage      [5]float64
	CriticalDamage       [5]float64
	BaseCriticalPercent  int32
	CriticalModifiable   bool
}

// Request is the engine's structured input (§6), independent of any
// particular transport: the HTTP adapter builds one from its request DTO.
// The CLI does not use it and builds an optimizer.Config directly.
type Request struct {
	Weights                 [stats.NumStats]float64
	Targets                 [stats.NumStats]*int32
	MaxLevel                int32
	InitialItems            [catalog.NumSlots]*uint32
	FixedItems              []int
	BannedItems             []uint32
	ExoAP, ExoMP, ExoRange  bool
	MultiElement            bool
	ChangedItemWeight       float64
	DamagingMoves           []DamagingMoveRequest
	Iterations              int64
	InitialTemperature      float64
	ConsiderCharacteristics bool
}

// Validate checks the request shape this package is responsible for
// (weights length is fixed by the array type): max level, fixed-slot
// range, iterations, and initial temperature, returning
// *optimizer.InvalidStateError on failure. Initial and banned item
// indices are not checked against the catalog.
func (r *Request) Validate() error {
	if r.MaxLevel < 0 {
		return &optimizer.InvalidStateError{Reason: "max_level must be >= 0"}
	}
	for _, slot := range r.FixedItems {
		if slot < 0 || slot >= catalog.NumSlots {
			return &optimizer.InvalidStateError{Reason: fmt.Sprintf("fixed_items slot %d out of range", slot)}
		}
	}
	if r.Iterations < 0 {
		return &optimizer.InvalidStateError{Reason: "iterations must be >= 0"}
	}
	if r.InitialTemperature < 0 {
		return &optimizer.InvalidStateError{Reason: "initial_temperature must be >= 0"}
	}
	return nil
}

// toConfig translates a validated Request into an optimizer.Config. The
// item-index pointers use nil for "absent" at the transport boundary;
// internally the catalog's niche ItemIndex sentinel takes over.
func (r *Request) toConfig() optimizer.Config {
	cfg := optimizer.Config{
		MaxLevel:                r.MaxLevel,
		Weights:                 r.Weights,
		Targets:                 r.Targets,
		ExoAP:                   r.ExoAP,
		ExoMP:                   r.ExoMP,
		ExoRange:                r.ExoRange,
		MultiElement:            r.MultiElement,
		ChangedItemWeight:       r.ChangedItemWeight,
		Iterations:              r.Iterations,
		InitialTemperature:      r.InitialTemperature,
		ConsiderCharacteristics: r.ConsiderCharacteristics,
	}

	for slot, idx := range r.InitialItems {
		if idx == nil {
			cfg.InitialSet[slot] = catalog.NoItem
		} else {
			cfg.InitialSet[slot] = catalog.ItemIndex(*idx)
		}
	}

	fixed := make(map[int]bool, len(r.FixedItems))
	for _, slot := range r.FixedItems {
		fixed[slot] = true
	}
	for slot := 0; slot < catalog.NumSlots; slot++ {
		if !fixed[slot] {
			cfg.Changeable = append(cfg.Changeable, slot)
		}
	}

	for _, b := range r.BannedItems {
		cfg.BanList = append(cfg.BanList, catalog.ItemIndex(b))
	}

	for _, m := range r.DamagingMoves {
		cfg.DamagingMoves = append(cfg.DamagingMoves, optimizer.DamagingMove{
			Weight:              m.Weight,
			ElementalDamage:     m.ElementalDamage,
			CritElementalDamage: m.CriticalDamage,
			BaseCritPercent:     m.BaseCriticalPercent,
			CritModifiable:      m.CriticalModifiable,
		})
	}

	if cfg.Iterations == 0 {
		cfg.Iterations = 1_000_000
	}
	if cfg.InitialTemperature == 0 {
		cfg.InitialTemperature = 1000
	}

	return cfg
}

package optimizer

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/corvid-labs/equipwright/internal/catalog"
	"github.com/corvid-labs/equipwright/internal/equipment"
)

// InvalidItemError reports that an item named in Config.InitialSet does
// not belong to the category its slot requires.
type InvalidItemError struct {
	ItemName      string
	AttemptedSlot int
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("item %q does not fit slot %d", e.ItemName, e.AttemptedSlot)
}

// InvalidStateError reports a request whose shape the driver cannot run
// (reserved for callers translating request validation failures into the
// same error family the engine returns from Run).
type InvalidStateError struct {
	Reason string
}

func (e *InvalidStateError) Error() string { return "invalid state: " + e.Reason }

// ExceededMaxAttemptsError is reserved for a future strict-filter
// neighbor policy that rejects infeasible proposals outright; the
// default proposal algorithm never returns it.
type ExceededMaxAttemptsError struct{ Attempts int }

func (e *ExceededMaxAttemptsError) Error() string {
	return fmt.Sprintf("could not find a neighbor after %d attempts", e.Attempts)
}

// RandomSource is the annealer's test seam: production code uses a
// per-run math/rand/v2 generator, tests substitute a deterministic or
// scripted one.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// defaultRandomSource wraps a math/rand/v2 Rand seeded from runtime
// entropy. One instance per optimization run: runs never share a
// generator, matching the "thread-local generator" model of §5.
type defaultRandomSource struct {
	r *rand.Rand
}

// NewRandomSource returns the default, non-reproducible random source.
func NewRandomSource() RandomSource {
	return &defaultRandomSource{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (d *defaultRandomSource) Float64() float64 { return d.r.Float64() }
func (d *defaultRandomSource) IntN(n int) int   { return d.r.IntN(n) }

// Optimizer drives one optimization run: the catalog reference, config,
// per-category candidate lists, and a random source. It implements
// Annealable[equipment.State] so it can be handed directly to Anneal.
type Optimizer struct {
	cfg        *Config
	cat        *catalog.Catalog
	candidates [10][]catalog.ItemIndex
	rng        RandomSource
}

// New constructs an Optimizer and its initial state from cfg: the
// initial state is built from cfg.InitialSet (failing with
// *InvalidItemError if an item doesn't fit its slot's category), and the
// ten per-category candidate lists are filtered by level cap and ban
// list (§4.G construction steps 1-2).
func New(cfg *Config, cat *catalog.Catalog, rng RandomSource) (*Optimizer, equipment.State, error) {
	initial, err := equipment.NewFromInitial(cfg.InitialSet, cat)
	if err != nil {
		var invalidItem *equipment.InvalidItemError
		if errors.As(err, &invalidItem) {
			return nil, equipment.State{}, &InvalidItemError{ItemName: invalidItem.ItemName, AttemptedSlot: invalidItem.AttemptedSlot}
		}
		return nil, equipment.State{}, err
	}

	if rng == nil {
		rng = NewRandomSource()
	}

	o := &Optimizer{cfg: cfg, cat: cat, rng: rng}
	for t := catalog.ItemType(0); int(t) < 10; t++ {
		for _, idx := range cat.ItemsOfType(t) {
			item := cat.Item(idx)
			if item.Level > cfg.MaxLevel {
				continue
			}
			if cfg.IsBanned(idx) {
				continue
			}
			o.candidates[t] = append(o.candidates[t], idx)
		}
	}

	return o, initial, nil
}

// HasCandidates reports whether any changeable slot has a nonempty
// candidate list. When false, Run returns the initial state unchanged
// without invoking the annealer (§4.G run step: "no forward progress
// possible" is a normal, non-error outcome).
func (o *Optimizer) HasCandidates() bool {
	for _, slot := range o.cfg.Changeable {
		if len(o.candidates[catalog.SlotType(slot)]) > 0 {
			return true
		}
	}
	return false
}

// Run executes the full optimizer driver: if no changeable slot has a
// candidate, the initial state is returned unchanged; otherwise the
// annealer runs for cfg.Iterations iterations starting from initial's
// energy.
func (o *Optimizer) Run(initial equipment.State) (equipment.State, error) {
	if !o.HasCandidates() {
		return initial, nil
	}

	bonuses := initial.SetBonuses(o.cat)
	energy := Energy(o.cfg, o.cat, &initial, bonuses)

	return Anneal[equipment.State](o, initial, energy, o.cfg.Iterations)
}

// Random implements Annealable.
func (o *Optimizer) Random() float64 { return o.rng.Float64() }

// Temperature implements Annealable using the fixed exponential-quench
// schedule (§4.F) parameterized by cfg.InitialTemperature.
func (o *Optimizer) Temperature(f float64) float64 {
	return Temperature(o.cfg.InitialTemperature, f)
}

// Neighbor implements Annealable's proposal step (§4.G neighbor
// proposal): pick a changeable slot with a nonempty candidate list,
// propose either a candidate item or unequip, apply it with incremental
// cache maintenance, and return the resulting state's full energy. Never
// rejects for infeasibility; that is priced into Energy.
func (o *Optimizer) Neighbor(current equipment.State) (equipment.State, float64, error) {
	next := current.Clone()

	slot, proposal := o.pickProposal()

	if old := next.Slot(slot); old.IsPresent() {
		next.RemoveItem(o.cat, old)
	}
	if proposal.IsPresent() {
		next.AddItem(o.cat, proposal)
	}
	next.SetSlot(slot, proposal)

	bonuses := next.SetBonuses(o.cat)
	energy := Energy(o.cfg, o.cat, &next, bonuses)
	return next, energy, nil
}

// pickProposal implements proposal steps 1-3: uniformly choose a
// changeable slot (retrying if its category has no candidates), then
// uniformly choose among its candidates plus one "unequip" option.
func (o *Optimizer) pickProposal() (int, catalog.ItemIndex) {
	for {
		slot := o.cfg.Changeable[o.rng.IntN(len(o.cfg.Changeable))]
		bucket := o.candidates[catalog.SlotType(slot)]
		if len(bucket) == 0 {
			continue
		}
		idx := o.rng.IntN(len(bucket) + 1)
		if idx == len(bucket) {
			return slot, catalog.NoItem
		}
		return slot, bucket[idx]
	}
}

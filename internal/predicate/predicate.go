// Package predicate implements the wearability-restriction tree: a
// recursive AND/OR structure over leaf comparisons that reports how far a
// character is from satisfying an item's restrictions, rather than a
// simple yes/no.
//
// The tree is a value-typed tagged sum, not an interface hierarchy: the
// hot path (one evaluation per equipped item per annealing iteration)
// collapses better on a branch-predicted switch than on virtual dispatch.
package predicate

import "github.com/corvid-labs/equipwright/internal/stats"

// Op is a leaf comparison operator.
type Op int

const (
	// GreaterThan is satisfied when the stat strictly exceeds Value.
	GreaterThan Op = iota
	// LessThan is satisfied when the stat is strictly below Value.
	LessThan
)

// BooleanOp combines child predicates.
type BooleanOp int

const (
	// And requires every child to be satisfied; violations sum.
	And BooleanOp = iota
	// Or requires at least one child to be satisfied; violation is the
	// minimum across children, so one satisfied child zeroes the subtree.
	Or
)

// Kind discriminates the variants of Predicate.
type Kind int

const (
	// Null is always satisfied.
	Null Kind = iota
	// Leaf compares a single stat against a threshold.
	Leaf
	// SetBonusLeaf compares the total active set-bonus count against a threshold.
	SetBonusLeaf
	// Node combines Children with a BooleanOp.
	Node
)

// leafPenalty scales a leaf's violation magnitude. AP and MP are small,
// single-digit stats, so their violations are scaled up to dominate
// energy comparisons against stat-reward terms at typical weights.
const leafPenalty = 100

// setBonusPenalty scales every SetBonusLeaf violation for the same reason.
const setBonusPenalty = 100

// Predicate is a node in the wearability-restriction tree.
//
// Only the fields relevant to Kind are meaningful: Leaf uses Stat/CmpOp/Value,
// SetBonusLeaf uses CmpOp/Value, Node uses BoolOp/Children.
type Predicate struct {
	Kind     Kind
	Stat     stats.Stat
	CmpOp    Op
	Value    int32
	BoolOp   BooleanOp
	Children []Predicate
}

// NewNull returns the always-satisfied predicate.
func NewNull() Predicate { return Predicate{Kind: Null} }

// NewLeaf returns a single-stat comparison leaf.
func NewLeaf(stat stats.Stat, op Op, value int32) Predicate {
	return Predicate{Kind: Leaf, Stat: stat, CmpOp: op, Value: value}
}

// NewSetBonusLeaf returns a leaf comparing against the total set-bonus count.
func NewSetBonusLeaf(op Op, value int32) Predicate {
	return Predicate{Kind: SetBonusLeaf, CmpOp: op, Value: value}
}

// NewNode returns an AND/OR combination of children.
func NewNode(op BooleanOp, children ...Predicate) Predicate {
	return Predicate{Kind: Node, BoolOp: op, Children: children}
}

// Violation returns the nonnegative distance from satisfying p against the
// given post-aggregation stat vector and total set-bonus count (sum of
// (member_count - 1) across every active set). Zero means satisfied.
func (p Predicate) Violation(sv *stats.Vector, setBonusTotal int32) int32 {
	switch p.Kind {
	case Null:
		return 0
	case Leaf:
		v := leafViolation(p.CmpOp, p.Value, sv.Get(p.Stat))
		if p.Stat == stats.AP || p.Stat == stats.MP {
			v *= leafPenalty
		}
		return v
	case SetBonusLeaf:
		return leafViolation(p.CmpOp, p.Value, setBonusTotal) * setBonusPenalty
	case Node:
		return nodeViolation(p.BoolOp, p.Children, sv, setBonusTotal)
	default:
		return 0
	}
}

func leafViolation(op Op, value, actual int32) int32 {
	var v int32
	switch op {
	case GreaterThan:
		v = (value + 1) - actual
	case LessThan:
		v = actual - (value - 1)
	}
	if v < 0 {
		return 0
	}
	return v
}

func nodeViolation(op BooleanOp, children []Predicate, sv *stats.Vector, setBonusTotal int32) int32 {
	if len(children) == 0 {
		return 0
	}
	switch op {
	case And:
		var total int32
		for _, c := range children {
			total += c.Violation(sv, setBonusTotal)
		}
		return total
	case Or:
		min := children[0].Violation(sv, setBonusTotal)
		for _, c := range children[1:] {
			if v := c.Violation(sv, setBonusTotal); v < min {
				min = v
			}
		}
		return min
	default:
		return 0
	}
}

package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/corvid-labs/equipwright/internal/stats"
)

func TestNullAlwaysSatisfied(t *testing.T) {
	var sv stats.Vector
	assert.EqualValues(t, 0, NewNull().Violation(&sv, 0))
}

func TestLeafGreaterThan(t *testing.T) {
	p := NewLeaf(stats.Vitality, GreaterThan, 100)

	var sv stats.Vector
	sv.Set(stats.Vitality, 101)
	assert.EqualValues(t, 0, p.Violation(&sv, 0))

	sv.Set(stats.Vitality, 100)
	assert.EqualValues(t, 1, p.Violation(&sv, 0))

	sv.Set(stats.Vitality, 50)
	assert.EqualValues(t, 51, p.Violation(&sv, 0))
}

func TestLeafLessThan(t *testing.T) {
	p := NewLeaf(stats.Vitality, LessThan, 100)

	var sv stats.Vector
	sv.Set(stats.Vitality, 99)
	assert.EqualValues(t, 0, p.Violation(&sv, 0))

	sv.Set(stats.Vitality, 100)
	assert.EqualValues(t, 1, p.Violation(&sv, 0))

	sv.Set(stats.Vitality, 150)
	assert.EqualValues(t, 51, p.Violation(&sv, 0))
}

func TestLeafAPMPScaledBy100(t *testing.T) {
	p := NewLeaf(stats.AP, GreaterThan, 6)

	var sv stats.Vector
	sv.Set(stats.AP, 6)
	assert.EqualValues(t, 100, p.Violation(&sv, 0))

	sv.Set(stats.AP, 5)
	assert.EqualValues(t, 200, p.Violation(&sv, 0))

	sv.Set(stats.AP, 7)
	assert.EqualValues(t, 0, p.Violation(&sv, 0))
}

func TestSetBonusLeafScaledBy100(t *testing.T) {
	p := NewSetBonusLeaf(LessThan, 3)
	var sv stats.Vector

	assert.EqualValues(t, 100, p.Violation(&sv, 3))
	assert.EqualValues(t, 0, p.Violation(&sv, 2))
}

func TestNodeAndSumsChildren(t *testing.T) {
	p := NewNode(And,
		NewLeaf(stats.Vitality, GreaterThan, 100),
		NewLeaf(stats.Strength, GreaterThan, 50),
	)
	var sv stats.Vector
	sv.Set(stats.Vitality, 90)
	sv.Set(stats.Strength, 40)
	assert.EqualValues(t, 11+11, p.Violation(&sv, 0))
}

func TestNodeOrTakesMinimum(t *testing.T) {
	p := NewNode(Or,
		NewLeaf(stats.Vitality, GreaterThan, 100),
		NewLeaf(stats.Strength, GreaterThan, 50),
	)
	var sv stats.Vector
	sv.Set(stats.Vitality, 90)
	sv.Set(stats.Strength, 200)
	assert.EqualValues(t, 0, p.Violation(&sv, 0))

	sv.Set(stats.Strength, 40)
	assert.EqualValues(t, 11, p.Violation(&sv, 0))
}

func TestNodeEmptyChildrenIsSatisfied(t *testing.T) {
	var sv stats.Vector
	assert.EqualValues(t, 0, NewNode(And).Violation(&sv, 0))
	assert.EqualValues(t, 0, NewNode(Or).Violation(&sv, 0))
}

func TestPropertyLeafZeroIffSatisfied(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		threshold := int32(rapid.IntRange(-1000, 1000).Draw(t, "threshold"))
		actual := int32(rapid.IntRange(-1000, 1000).Draw(t, "actual"))

		p := NewLeaf(stats.Vitality, GreaterThan, threshold)
		var sv stats.Vector
		sv.Set(stats.Vitality, actual)
		v := p.Violation(&sv, 0)
		if actual > threshold {
			assert.EqualValues(t, 0, v)
		} else {
			assert.Greater(t, v, int32(0))
		}
	})
}

func TestPropertySetBonusLeafZeroIffSatisfied(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		threshold := int32(rapid.IntRange(0, 20).Draw(t, "threshold"))
		total := int32(rapid.IntRange(0, 20).Draw(t, "total"))

		p := NewSetBonusLeaf(LessThan, threshold)
		var sv stats.Vector
		v := p.Violation(&sv, total)
		if total < threshold {
			assert.EqualValues(t, 0, v)
		} else {
			assert.Greater(t, v, int32(0))
		}
	})
}

func TestPropertyOrEqualsMinimumOfChildren(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(t, "n")
		var children []Predicate
		var sv stats.Vector
		var expectedMin int32 = -1
		for i := 0; i < n; i++ {
			threshold := int32(rapid.IntRange(-100, 100).Draw(t, "threshold"))
			actual := int32(rapid.IntRange(-100, 100).Draw(t, "actual"))
			sv.Set(stats.Strength, actual)
			leaf := NewLeaf(stats.Strength, GreaterThan, threshold)
			v := leaf.Violation(&sv, 0)
			if expectedMin == -1 || v < expectedMin {
				expectedMin = v
			}
			children = append(children, NewLeaf(stats.Strength, GreaterThan, threshold))
		}

		// re-evaluate independently against a single shared vector, since
		// every child reads the same stat here.
		p := NewNode(Or, children...)
		got := p.Violation(&sv, 0)
		var want int32 = children[0].Violation(&sv, 0)
		for _, c := range children[1:] {
			if v := c.Violation(&sv, 0); v < want {
				want = v
			}
		}
		assert.Equal(t, want, got)
	})
}

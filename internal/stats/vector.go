package stats

// Vector is a fixed-width signed-integer vector over the 51 stats. Its
// length never changes after construction; Add/Sub mutate in place and
// never reallocate, keeping the hot annealing loop allocation-free.
type Vector [NumStats]int32

// Get returns the value at s.
func (v *Vector) Get(s Stat) int32 {
	return v[s]
}

// Set assigns the value at s.
func (v *Vector) Set(s Stat, value int32) {
	v[s] = value
}

// Add performs a componentwise in-place v += other.
func (v *Vector) Add(other *Vector) {
	for i := range v {
		v[i] += other[i]
	}
}

// Sub performs a componentwise in-place v -= other.
func (v *Vector) Sub(other *Vector) {
	for i := range v {
		v[i] -= other[i]
	}
}

// Plus returns a new vector equal to v + other, leaving both inputs
// unmodified. Used outside the hot loop where an extra copy is cheap.
func (v Vector) Plus(other Vector) Vector {
	out := v
	out.Add(&other)
	return out
}

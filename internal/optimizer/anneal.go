package optimizer

import "math"

// quench is the fixed cooling-schedule exponent (§4.F).
const quench = 5.0

// coolingConstant returns k in T(f) = T0 * exp(k * f^quench), derived so
// that T(0.95) = 0.01 regardless of T0; T(1) lies below that.
func coolingConstant(initialTemperature float64) float64 {
	return math.Log(0.01/initialTemperature) / math.Pow(0.95, quench)
}

// Temperature evaluates the exponential-quench cooling schedule at
// iteration fraction f = (i+1)/n. It starts at initialTemperature, falls
// to 0.01 at f = 0.95, and keeps falling over the last 5%.
func Temperature(initialTemperature, f float64) float64 {
	k := coolingConstant(initialTemperature)
	return initialTemperature * math.Exp(k*math.Pow(f, quench))
}

// Annealable is the generic state the Metropolis loop operates over. T
// is typically equipment.State; Anneal never inspects it beyond passing
// it to Neighbor.
type Annealable[T any] interface {
	// Random returns a uniform sample in [0, 1).
	Random() float64
	// Temperature returns the schedule's temperature at iteration
	// fraction f = (i+1)/n.
	Temperature(f float64) float64
	// Neighbor proposes a candidate successor to current and its energy.
	Neighbor(current T) (T, float64, error)
}

// AcceptProbability is the Metropolis acceptance rule (§4.F step 3):
// always accept an improving move, otherwise accept with probability
// exp((current-neighbor)/temperature).
func AcceptProbability(energyCurrent, energyNeighbor, temperature float64) float64 {
	if energyNeighbor < energyCurrent {
		return 1.0
	}
	return math.Exp((energyCurrent - energyNeighbor) / temperature)
}

// Anneal runs the generic Metropolis loop for n iterations starting from
// (initialState, initialEnergy), returning the final (possibly rejected
// proposals aside) current state. No reheating, no best-seen tracking:
// the schedule's late-run quench is what forces descent.
func Anneal[T any](a Annealable[T], initialState T, initialEnergy float64, n int64) (T, error) {
	current := initialState
	currentEnergy := initialEnergy
	total := float64(n)

	for i := int64(0); i < n; i++ {
		f := (float64(i) + 1.0) / total
		t := a.Temperature(f)

		neighbor, neighborEnergy, err := a.Neighbor(current)
		if err != nil {
			return current, err
		}

		p := AcceptProbability(currentEnergy, neighborEnergy, t)
		if p >= a.Random() {
			current = neighbor
			currentEnergy = neighborEnergy
		}
	}

	return current, nil
}

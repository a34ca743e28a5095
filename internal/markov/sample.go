package markov

import (
	"fmt"

	"github.com/davesmith10/tiedye/internal/dye"
)

// Source is the randomness a Matrix samples from. *math/rand/v2.Rand
// satisfies it.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Sample draws a state with the given weights, ordered as States. The
// weights must form a distribution.
func (m *Matrix) Sample(src Source, weights []float64) (dye.Color, error) {
	if len(weights) != len(m.states) {
		return dye.Color{}, fmt.Errorf("%w: %d weights for %d states", ErrDistribution, len(weights), len(m.states))
	}
	if err := checkDistribution(weights); err != nil {
		return dye.Color{}, err
	}

	u := src.Float64()
	last := -1
	var acc float64
	for i, w := range weights {
		if w == 0 {
			continue
		}
		last = i
		acc += w
		if u < acc {
			return m.states[i], nil
		}
	}
	// u landed in the rounding gap above the final cumulative sum.
	return m.states[last], nil
}

// SampleNext draws the color following from.
func (m *Matrix) SampleNext(src Source, from dye.Color) (dye.Color, error) {
	row, err := m.Row(from)
	if err != nil {
		return dye.Color{}, err
	}
	return m.Sample(src, row)
}

// SampleNextBlended draws the next color from the mean of the rows of a
// and b.
func (m *Matrix) SampleNextBlended(src Source, a, b dye.Color) (dye.Color, error) {
	weights, err := m.Blend(a, b)
	if err != nil {
		return dye.Color{}, err
	}
	return m.Sample(src, weights)
}

// Uniform picks a state uniformly at random.
func (m *Matrix) Uniform(src Source) dye.Color {
	return m.states[src.IntN(len(m.states))]
}

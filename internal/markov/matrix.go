// Package markov builds the color transition model of a tie-dye design and
// samples colors from it.
package markov

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/davesmith10/tiedye/internal/dye"
)

var (
	// ErrInvalidConfiguration reports a palette, background or pattern the
	// generator cannot work with.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDistribution reports a probability row that does not sum to 1.
	// It always indicates a bug in matrix construction.
	ErrDistribution = errors.New("probability distribution does not sum to 1")
)

// Transition constants.
const (
	Persistence      = 0.9 // dye → same dye
	Bleed            = 0.1 // dye → background
	BackgroundStay   = 0.7 // background → background, before correction
	BackgroundSpread = 0.3 // background → any dye, split evenly

	// Tolerance is the allowed deviation of a row sum from 1.
	Tolerance = 1e-9
)

// Matrix is a square stochastic matrix over the state space of a design:
// the dye colors in order, followed by the background.
type Matrix struct {
	states []dye.Color
	index  map[dye.Color]int
	probs  [][]float64
}

// NewMatrix builds the transition matrix for colors dyed onto background.
//
// Each dye persists with probability Persistence and bleeds into the
// background otherwise. The background stays itself with probability
// BackgroundStay and spreads the rest evenly across the dyes; its own entry
// is assigned last, as one minus the dye entries, so the row sums to 1.
//
// The background must not also appear among colors, and colors must be
// distinct.
func NewMatrix(colors []dye.Color, background dye.Color) (*Matrix, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: empty palette", ErrInvalidConfiguration)
	}

	n := len(colors) + 1
	m := &Matrix{
		states: make([]dye.Color, 0, n),
		index:  make(map[dye.Color]int, n),
		probs:  make([][]float64, n),
	}
	for _, c := range colors {
		if c == background {
			return nil, fmt.Errorf("%w: background %s is also listed as a dye", ErrInvalidConfiguration, dye.Name(c))
		}
		if _, dup := m.index[c]; dup {
			return nil, fmt.Errorf("%w: dye %s listed twice", ErrInvalidConfiguration, dye.Name(c))
		}
		m.index[c] = len(m.states)
		m.states = append(m.states, c)
	}
	bg := len(m.states)
	m.index[background] = bg
	m.states = append(m.states, background)

	for i := range colors {
		row := make([]float64, n)
		row[i] = Persistence
		row[bg] = Bleed
		m.probs[i] = row
	}
	m.probs[bg] = backgroundRow(len(colors))

	return m, nil
}

// backgroundRow returns the background's row for a palette of n dyes, with
// the background in the last position.
func backgroundRow(n int) []float64 {
	row := make([]float64, n+1)
	other := BackgroundSpread / float64(n)
	var sum float64
	for i := 0; i < n; i++ {
		row[i] = other
		sum += other
	}
	row[n] = 1 - sum
	return row
}

// States returns the state space: the dyes followed by the background.
func (m *Matrix) States() []dye.Color {
	return append([]dye.Color(nil), m.states...)
}

// Len returns the number of states.
func (m *Matrix) Len() int { return len(m.states) }

// Background returns the background color.
func (m *Matrix) Background() dye.Color { return m.states[len(m.states)-1] }

// Dyes returns the non-background colors.
func (m *Matrix) Dyes() []dye.Color {
	return append([]dye.Color(nil), m.states[:len(m.states)-1]...)
}

// Index returns the position of c in States.
func (m *Matrix) Index(c dye.Color) (int, bool) {
	i, ok := m.index[c]
	return i, ok
}

// Prob returns P(from → to), or 0 if either color is not a state.
func (m *Matrix) Prob(from, to dye.Color) float64 {
	i, ok := m.index[from]
	if !ok {
		return 0
	}
	j, ok := m.index[to]
	if !ok {
		return 0
	}
	return m.probs[i][j]
}

// Row returns the destination probabilities of from, ordered as States.
func (m *Matrix) Row(from dye.Color) ([]float64, error) {
	i, ok := m.index[from]
	if !ok {
		return nil, fmt.Errorf("%w: color %s is not in the palette", ErrInvalidConfiguration, dye.Name(from))
	}
	return append([]float64(nil), m.probs[i]...), nil
}

// Blend returns the elementwise mean of the rows of a and b.
func (m *Matrix) Blend(a, b dye.Color) ([]float64, error) {
	ra, err := m.Row(a)
	if err != nil {
		return nil, err
	}
	rb, err := m.Row(b)
	if err != nil {
		return nil, err
	}
	for i := range ra {
		ra[i] = (ra[i] + rb[i]) / 2
	}
	return ra, nil
}

// Validate checks that every row sums to 1.
func (m *Matrix) Validate() error {
	for i, row := range m.probs {
		if err := checkDistribution(row); err != nil {
			return fmt.Errorf("row %s: %w", dye.Name(m.states[i]), err)
		}
	}
	return nil
}

func checkDistribution(weights []float64) error {
	var sum float64
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%w: negative or NaN weight %v", ErrDistribution, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > Tolerance {
		return fmt.Errorf("%w: sum is %v", ErrDistribution, sum)
	}
	return nil
}

type rowJSON struct {
	From  string             `json:"from"`
	Probs map[string]float64 `json:"probs"`
}

// MarshalJSON renders the matrix as a list of rows keyed by color hex.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	rows := make([]rowJSON, len(m.states))
	for i, from := range m.states {
		probs := make(map[string]float64, len(m.states))
		for j, to := range m.states {
			probs[to.Hex()] = m.probs[i][j]
		}
		rows[i] = rowJSON{From: from.Hex(), Probs: probs}
	}
	return json.Marshal(rows)
}

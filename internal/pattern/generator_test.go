package pattern

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davesmith10/tiedye/internal/dye"
	"github.com/davesmith10/tiedye/internal/markov"
	"github.com/davesmith10/tiedye/internal/raster"
)

var (
	blue  = dye.Color{50, 50, 255}
	pink  = dye.Color{255, 52, 179}
	green = dye.Color{0, 205, 0}
	white = dye.White
)

var allModes = []Mode{Horizontal, Vertical, Splatter}

// scriptSource replays scripted draws and counts them.
type scriptSource struct {
	floats []float64
	ints   []int
	nFloat int
	nInt   int
}

func (s *scriptSource) Float64() float64 {
	s.nFloat++
	if len(s.floats) == 0 {
		return 0.5
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptSource) IntN(n int) int {
	s.nInt++
	if len(s.ints) == 0 {
		return 0
	}
	i := s.ints[0]
	s.ints = s.ints[1:]
	return i % n
}

func newMatrix(t *testing.T, colors ...dye.Color) *markov.Matrix {
	t.Helper()
	m, err := markov.NewMatrix(colors, white)
	require.NoError(t, err)
	return m
}

func compose(t *testing.T, m *markov.Matrix, mode Mode, seed uint64, width, height int) *raster.Image {
	t.Helper()
	g, err := New(m, mode, rand.New(rand.NewPCG(seed, seed)))
	require.NoError(t, err)
	img, err := g.Compose(width, height)
	require.NoError(t, err)
	return img
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"h", Horizontal},
		{"V", Vertical},
		{"s", Splatter},
		{"splatter", Splatter},
		{" horizontal ", Horizontal},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, in := range []string{"", "x", "hv", "diagonal"} {
		_, err := ParseMode(in)
		assert.ErrorIs(t, err, markov.ErrInvalidConfiguration, "%q", in)
	}
}

func TestModeStrings(t *testing.T) {
	assert.Equal(t, "h", Horizontal.Token())
	assert.Equal(t, "VERTICAL", Vertical.String())
	assert.Equal(t, "SPLATTER", Splatter.String())
	assert.False(t, Mode('x').Valid())
}

func TestNewRejects(t *testing.T) {
	m := newMatrix(t, blue)
	src := rand.New(rand.NewPCG(1, 1))

	_, err := New(m, Mode('d'), src)
	assert.ErrorIs(t, err, markov.ErrInvalidConfiguration)
	_, err = New(nil, Horizontal, src)
	assert.ErrorIs(t, err, markov.ErrInvalidConfiguration)
	_, err = New(m, Horizontal, nil)
	assert.ErrorIs(t, err, markov.ErrInvalidConfiguration)
}

func TestComposeDeterministic(t *testing.T) {
	m := newMatrix(t, blue, pink, green)
	for _, mode := range allModes {
		a := compose(t, m, mode, 42, 40, 30)
		b := compose(t, m, mode, 42, 40, 30)
		assert.True(t, a.Equal(b), "mode %s", mode)
	}
}

func TestComposeOnlyPaletteColors(t *testing.T) {
	m := newMatrix(t, blue, pink, green)
	for _, mode := range allModes {
		img := compose(t, m, mode, 3, 50, 50)
		require.Equal(t, 2500, img.Len())
		for c := range img.Histogram() {
			_, ok := m.Index(c)
			assert.True(t, ok, "mode %s produced %s", mode, c)
		}
	}
}

func TestComposeEmpty(t *testing.T) {
	m := newMatrix(t, blue)
	for _, mode := range allModes {
		for _, dims := range [][2]int{{0, 10}, {10, 0}, {-3, 4}} {
			img := compose(t, m, mode, 1, dims[0], dims[1])
			assert.Zero(t, img.Len(), "mode %s dims %v", mode, dims)
		}
	}
}

// assertChain checks that each pixel in order is reachable from the one
// before it.
func assertChain(t *testing.T, m *markov.Matrix, img *raster.Image, order [][2]int) {
	t.Helper()
	for i := 1; i < len(order); i++ {
		p, q := order[i-1], order[i]
		from, to := img.Pixel(p[0], p[1]), img.Pixel(q[0], q[1])
		assert.Positive(t, m.Prob(from, to), "%v=%s → %v=%s", p, from, q, to)
	}
}

func TestHorizontalSingleColumn(t *testing.T) {
	m := newMatrix(t, blue, pink, green)
	img := compose(t, m, Horizontal, 9, 1, 200)

	var order [][2]int
	for y := 0; y < img.Height; y++ {
		order = append(order, [2]int{0, y})
	}
	assertChain(t, m, img, order)
}

func TestHorizontalCarriesCursorAcrossRows(t *testing.T) {
	m := newMatrix(t, blue, pink, green)
	img := compose(t, m, Horizontal, 5, 7, 40)

	var order [][2]int
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			order = append(order, [2]int{x, y})
		}
	}
	assertChain(t, m, img, order)
}

func TestVerticalCarriesCursorAcrossColumns(t *testing.T) {
	m := newMatrix(t, blue, pink, green)
	img := compose(t, m, Vertical, 5, 40, 7)

	var order [][2]int
	for x := 0; x < img.Width; x++ {
		for y := 0; y < img.Height; y++ {
			order = append(order, [2]int{x, y})
		}
	}
	assertChain(t, m, img, order)
}

func TestVerticalIsTransposedHorizontal(t *testing.T) {
	m := newMatrix(t, blue, pink)
	h := compose(t, m, Horizontal, 11, 6, 9)
	v := compose(t, m, Vertical, 11, 9, 6)
	for y := 0; y < h.Height; y++ {
		for x := 0; x < h.Width; x++ {
			assert.Equal(t, h.Pixel(x, y), v.Pixel(y, x))
		}
	}
}

func TestSplatterSingleRowMatchesHorizontal(t *testing.T) {
	m := newMatrix(t, blue, pink, green)
	for seed := uint64(0); seed < 5; seed++ {
		h := compose(t, m, Horizontal, seed, 64, 1)
		s := compose(t, m, Splatter, seed, 64, 1)
		assert.True(t, h.Equal(s), "seed %d", seed)
	}
}

func TestSplatterBlendsLeftAndAbove(t *testing.T) {
	m := newMatrix(t, blue, pink)

	// States are blue, pink, white. Rows:
	//   blue  [0.9  0    0.1]
	//   pink  [0    0.9  0.1]
	//   white [0.15 0.15 0.7]
	src := &scriptSource{
		ints: []int{0}, // start on blue
		floats: []float64{
			0.0,  // (0,0) from blue → blue
			0.95, // (1,0) from blue → white
			// (0,1) blend(white, blue) = [0.525 0.075 0.4]; pink is only
			// reachable through the blend.
			0.55,
			// (1,1) blend(pink, white) = [0.075 0.525 0.4]; blending the
			// above pixel with itself would give white here.
			0.58,
		},
	}
	g, err := New(m, Splatter, src)
	require.NoError(t, err)
	img, err := g.Compose(2, 2)
	require.NoError(t, err)

	assert.Equal(t, blue, img.Pixel(0, 0))
	assert.Equal(t, white, img.Pixel(1, 0))
	assert.Equal(t, pink, img.Pixel(0, 1))
	assert.Equal(t, pink, img.Pixel(1, 1))
}

func TestSplatterBlendedWeights(t *testing.T) {
	m := newMatrix(t, blue, pink)

	left, above := white, blue
	got, err := m.Blend(left, above)
	require.NoError(t, err)

	rl, _ := m.Row(left)
	ra, _ := m.Row(above)
	for i := range got {
		assert.Equal(t, (rl[i]+ra[i])/2, got[i])
	}
}

func TestComposeDrawCount(t *testing.T) {
	m := newMatrix(t, blue, pink)
	for _, mode := range allModes {
		src := &scriptSource{}
		g, err := New(m, mode, src)
		require.NoError(t, err)
		_, err = g.Compose(13, 17)
		require.NoError(t, err)
		assert.Equal(t, 1, src.nInt, "mode %s", mode)
		assert.Equal(t, 13*17, src.nFloat, "mode %s", mode)
	}
}

func TestComposeReusesGenerator(t *testing.T) {
	m := newMatrix(t, blue, pink, green)
	g, err := New(m, Splatter, rand.New(rand.NewPCG(8, 8)))
	require.NoError(t, err)

	a, err := g.Compose(10, 10)
	require.NoError(t, err)
	b, err := g.Compose(5, 3)
	require.NoError(t, err)
	assert.Equal(t, 100, a.Len())
	assert.Equal(t, 15, b.Len())
}

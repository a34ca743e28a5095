// Package pattern fills an image pixel by pixel from a transition matrix.
package pattern

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/davesmith10/tiedye/internal/dye"
	"github.com/davesmith10/tiedye/internal/markov"
	"github.com/davesmith10/tiedye/internal/raster"
)

// Default image size.
const (
	DefaultWidth  = 100
	DefaultHeight = 100
)

// Generator composes images for one design. It holds no per-image state;
// each Compose call threads its own cursor through the scan.
type Generator struct {
	matrix *markov.Matrix
	mode   Mode
	src    markov.Source
	log    *logrus.Entry
}

// New returns a generator drawing from src.
func New(m *markov.Matrix, mode Mode, src markov.Source) (*Generator, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil transition matrix", markov.ErrInvalidConfiguration)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: unknown pattern %s", markov.ErrInvalidConfiguration, mode)
	}
	if src == nil {
		return nil, fmt.Errorf("%w: nil random source", markov.ErrInvalidConfiguration)
	}
	return &Generator{
		matrix: m,
		mode:   mode,
		src:    src,
		log:    logrus.WithField("component", "pattern"),
	}, nil
}

// Mode returns the generator's pattern mode.
func (g *Generator) Mode() Mode { return g.mode }

// Compose generates a width×height image. Non-positive dimensions give an
// empty image.
func (g *Generator) Compose(width, height int) (*raster.Image, error) {
	img := raster.New(width, height, g.matrix.Background())
	cursor := g.matrix.Uniform(g.src)

	g.log.WithFields(logrus.Fields{
		"pattern": g.mode.String(),
		"width":   img.Width,
		"height":  img.Height,
		"start":   dye.Name(cursor),
	}).Debug("composing image")

	var err error
	switch g.mode {
	case Horizontal:
		_, err = g.scanRows(img, cursor)
	case Vertical:
		_, err = g.scanColumns(img, cursor)
	default:
		_, err = g.scanSplatter(img, cursor)
	}
	if err != nil {
		return nil, fmt.Errorf("%s scan: %w", g.mode, err)
	}
	return img, nil
}

// scanRows fills img across then down, carrying cursor from pixel to pixel
// and from the end of one row to the start of the next. It returns the
// final cursor.
func (g *Generator) scanRows(img *raster.Image, cursor dye.Color) (dye.Color, error) {
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			next, err := g.matrix.SampleNext(g.src, cursor)
			if err != nil {
				return cursor, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			img.SetPixel(x, y, next)
			cursor = next
		}
	}
	return cursor, nil
}

// scanColumns fills img down then across.
func (g *Generator) scanColumns(img *raster.Image, cursor dye.Color) (dye.Color, error) {
	for x := 0; x < img.Width; x++ {
		for y := 0; y < img.Height; y++ {
			next, err := g.matrix.SampleNext(g.src, cursor)
			if err != nil {
				return cursor, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			img.SetPixel(x, y, next)
			cursor = next
		}
	}
	return cursor, nil
}

// scanSplatter fills img across then down. The first row follows the
// cursor alone; every later pixel blends the cursor with the pixel above
// it, which is read but never becomes the cursor.
func (g *Generator) scanSplatter(img *raster.Image, cursor dye.Color) (dye.Color, error) {
	for y := 0; y < img.Height; y++ {
		border := y == 0
		for x := 0; x < img.Width; x++ {
			var (
				next dye.Color
				err  error
			)
			if border {
				next, err = g.matrix.SampleNext(g.src, cursor)
			} else {
				next, err = g.matrix.SampleNextBlended(g.src, cursor, img.Pixel(x, y-1))
			}
			if err != nil {
				return cursor, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			img.SetPixel(x, y, next)
			cursor = next
		}
	}
	return cursor, nil
}

package pipeline

import (
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/davesmith10/tiedye/internal/dye"
	"github.com/davesmith10/tiedye/internal/export"
	"github.com/davesmith10/tiedye/internal/markov"
	"github.com/davesmith10/tiedye/internal/pattern"
	"github.com/davesmith10/tiedye/internal/raster"
)

// MaxColors is the most dyes a design may use.
const MaxColors = 6

// Options controls the full design → image pipeline.
type Options struct {
	Colors     []dye.Color  // dyes, 1 to MaxColors, distinct
	Background dye.Color    // must not be among Colors
	Pattern    pattern.Mode // h, v or s
	Width      int          // default pattern.DefaultWidth
	Height     int          // default pattern.DefaultHeight
	Seed       uint64       // random seed; equal seeds give equal images
	Encoder    export.EncoderOptions
}

// Result holds the output of a pipeline run.
type Result struct {
	Data   []byte // encoded image
	Image  *raster.Image
	Matrix *markov.Matrix
}

// Designer composes any number of images from one set of options. Each
// image continues the designer's random stream, so successive images
// differ but the whole sequence is fixed by the seed.
type Designer struct {
	opts   Options
	matrix *markov.Matrix
	gen    *pattern.Generator
}

// NewDesigner validates opts and builds the transition matrix.
func NewDesigner(opts Options) (*Designer, error) {
	if len(opts.Colors) > MaxColors {
		return nil, fmt.Errorf("%w: %d dyes, at most %d allowed", markov.ErrInvalidConfiguration, len(opts.Colors), MaxColors)
	}
	if opts.Width == 0 {
		opts.Width = pattern.DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = pattern.DefaultHeight
	}

	m, err := markov.NewMatrix(opts.Colors, opts.Background)
	if err != nil {
		return nil, fmt.Errorf("transition matrix: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("transition matrix: %w", err)
	}

	gen, err := pattern.New(m, opts.Pattern, rand.New(rand.NewPCG(opts.Seed, opts.Seed)))
	if err != nil {
		return nil, err
	}
	return &Designer{opts: opts, matrix: m, gen: gen}, nil
}

// Matrix returns the designer's transition matrix.
func (d *Designer) Matrix() *markov.Matrix { return d.matrix }

// Options returns the options the designer was built with, defaults
// filled in.
func (d *Designer) Options() Options { return d.opts }

// Compose generates the next image.
func (d *Designer) Compose() (*raster.Image, error) {
	img, err := d.gen.Compose(d.opts.Width, d.opts.Height)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	return img, nil
}

// Encode encodes img with the designer's encoder options.
func (d *Designer) Encode(img *raster.Image) ([]byte, error) {
	data, err := export.Encode(img, d.opts.Encoder)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// Run executes the full pipeline: validate → transition matrix → compose →
// encode.
func Run(opts Options) (*Result, error) {
	// 1. Build the transition model
	d, err := NewDesigner(opts)
	if err != nil {
		return nil, err
	}

	// 2. Scan the image
	img, err := d.Compose()
	if err != nil {
		return nil, err
	}

	// 3. Encode
	data, err := d.Encode(img)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"component": "pipeline",
		"pattern":   d.opts.Pattern.String(),
		"width":     img.Width,
		"height":    img.Height,
		"seed":      d.opts.Seed,
		"bytes":     len(data),
	}).Debug("design generated")

	return &Result{
		Data:   data,
		Image:  img,
		Matrix: d.matrix,
	}, nil
}

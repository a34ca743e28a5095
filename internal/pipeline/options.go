package pipeline

import (
	"fmt"
	"math/rand/v2"

	"github.com/davesmith10/tiedye/internal/config"
	"github.com/davesmith10/tiedye/internal/dye"
	"github.com/davesmith10/tiedye/internal/export"
	"github.com/davesmith10/tiedye/internal/pattern"
)

// FromDesign parses a configured design into pipeline options. A design
// without a seed gets a random one, recorded in the returned options.
func FromDesign(d config.Design) (Options, error) {
	var opts Options

	for _, s := range d.Colors {
		c, err := dye.Parse(s)
		if err != nil {
			return opts, fmt.Errorf("colors: %w", err)
		}
		opts.Colors = append(opts.Colors, c)
	}

	bg := d.Background
	if bg == "" {
		bg = "w"
	}
	c, err := dye.Parse(bg)
	if err != nil {
		return opts, fmt.Errorf("background: %w", err)
	}
	opts.Background = c

	if opts.Pattern, err = pattern.ParseMode(d.Pattern); err != nil {
		return opts, err
	}

	opts.Width, opts.Height = d.Width, d.Height
	if d.Seed != nil {
		opts.Seed = *d.Seed
	} else {
		opts.Seed = rand.Uint64()
	}

	format := export.Format(d.Format)
	switch {
	case d.Format != "":
		format, err = export.ParseFormat(d.Format)
	case d.Output != "":
		format, err = export.FormatFromPath(d.Output)
	}
	if err != nil {
		return opts, err
	}
	opts.Encoder = export.EncoderOptions{
		Format:  format,
		Quality: d.Quality,
		Scale:   d.Scale,
	}
	return opts, nil
}

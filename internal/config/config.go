// Package config loads design settings from files and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "TIEDYE_"

// Design holds everything needed to generate and save one image. Colors
// and Background hold dye keys, names or hex colors, as accepted by
// dye.Parse.
type Design struct {
	Colors     []string `toml:"colors" yaml:"colors"`
	Background string   `toml:"background" yaml:"background"`
	Pattern    string   `toml:"pattern" yaml:"pattern"`
	Width      int      `toml:"width" yaml:"width"`
	Height     int      `toml:"height" yaml:"height"`
	Seed       *uint64  `toml:"seed,omitempty" yaml:"seed,omitempty"`
	Output     string   `toml:"output" yaml:"output"`
	Format     string   `toml:"format" yaml:"format"`
	Scale      int      `toml:"scale" yaml:"scale"`
	Quality    int      `toml:"quality" yaml:"quality"`
}

// Default returns the settings used when nothing else is given.
func Default() Design {
	return Design{
		Background: "w",
		Pattern:    "s",
		Width:      100,
		Height:     100,
		Output:     "tiedye.png",
		Scale:      1,
		Quality:    90,
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) design file on top of
// the defaults.
func Load(path string) (Design, error) {
	d := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("reading design: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &d)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &d)
	default:
		return d, fmt.Errorf("unknown design file type %q (want .toml, .yaml or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return d, fmt.Errorf("parsing design %s: %w", path, err)
	}
	return d, nil
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// into the process environment. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields of d from TIEDYE_* variables found by lookup
// (usually os.LookupEnv).
func ApplyEnv(d *Design, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}

	if v, ok := lookup(EnvPrefix + "COLORS"); ok && v != "" {
		d.Colors = SplitList(v)
	}
	str("BACKGROUND", &d.Background)
	str("PATTERN", &d.Pattern)
	str("OUTPUT", &d.Output)
	str("FORMAT", &d.Format)
	for name, dst := range map[string]*int{
		"WIDTH":   &d.Width,
		"HEIGHT":  &d.Height,
		"SCALE":   &d.Scale,
		"QUALITY": &d.Quality,
	} {
		if err := num(name, dst); err != nil {
			return err
		}
	}
	if v, ok := lookup(EnvPrefix + "SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", EnvPrefix, err)
		}
		d.Seed = &seed
	}
	return nil
}

// SplitList splits a comma-separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

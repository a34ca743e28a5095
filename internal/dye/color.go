// Package dye defines the colors a design is dyed with.
package dye

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque RGB triple. It is comparable and used directly as a
// map key.
type Color struct {
	R, G, B uint8
}

// RGBA implements image/color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (c Color) String() string {
	return Name(c)
}

// Named is an entry of the dye key table.
type Named struct {
	Key   string
	Name  string
	Color Color
}

// Palette lists the dyes available by key, in menu order.
var Palette = []Named{
	{Key: "b", Name: "BLUE", Color: Color{50, 50, 255}},
	{Key: "v", Name: "VIOLET", Color: Color{209, 95, 238}},
	{Key: "p", Name: "PINK", Color: Color{255, 52, 179}},
	{Key: "y", Name: "YELLOW", Color: Color{255, 255, 0}},
	{Key: "o", Name: "ORANGE", Color: Color{255, 128, 0}},
	{Key: "g", Name: "GREEN", Color: Color{0, 205, 0}},
	{Key: "w", Name: "WHITE", Color: Color{255, 255, 255}},
}

// White is the default background.
var White = Color{255, 255, 255}

// Lookup returns the named dye for a key such as "b".
func Lookup(key string) (Named, bool) {
	for _, n := range Palette {
		if n.Key == key {
			return n, true
		}
	}
	return Named{}, false
}

// Name returns a human-readable name for c: the dye name if c is one of the
// named dyes, its hex form otherwise.
func Name(c Color) string {
	for _, n := range Palette {
		if n.Color == c {
			return n.Name
		}
	}
	return c.Hex()
}

// Parse accepts a dye key ("b"), a dye name ("blue") or a hex color
// ("#3250ff" or "3250ff").
func Parse(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	lower := strings.ToLower(s)
	if n, ok := Lookup(lower); ok {
		return n.Color, nil
	}
	for _, n := range Palette {
		if strings.EqualFold(n.Name, s) {
			return n.Color, nil
		}
	}

	if !strings.HasPrefix(lower, "#") {
		lower = "#" + lower
	}
	cf, err := colorful.Hex(lower)
	if err != nil {
		return Color{}, fmt.Errorf("unknown color %q: not a dye key, dye name or hex color", s)
	}
	r, g, b := cf.RGB255()
	return Color{r, g, b}, nil
}

// ParseList parses a comma-separated list of colors.
func ParseList(s string) ([]Color, error) {
	var colors []Color
	for _, field := range strings.Split(s, ",") {
		if strings.TrimSpace(field) == "" {
			continue
		}
		c, err := Parse(field)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, nil
}

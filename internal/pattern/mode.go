package pattern

import (
	"fmt"
	"strings"

	"github.com/davesmith10/tiedye/internal/markov"
)

// Mode selects the scan order and conditioning rule of a pattern.
type Mode byte

// Pattern modes, keyed by their menu token.
const (
	Horizontal Mode = 'h'
	Vertical   Mode = 'v'
	Splatter   Mode = 's'
)

// ParseMode converts a pattern token ("h", "v", "s") or name
// ("horizontal", "vertical", "splatter") to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "horizontal":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	case "s", "splatter":
		return Splatter, nil
	default:
		return 0, fmt.Errorf("%w: unknown pattern %q", markov.ErrInvalidConfiguration, s)
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m == Horizontal || m == Vertical || m == Splatter
}

// Token returns the single-letter menu token of m.
func (m Mode) Token() string { return string(rune(m)) }

func (m Mode) String() string {
	switch m {
	case Horizontal:
		return "HORIZONTAL"
	case Vertical:
		return "VERTICAL"
	case Splatter:
		return "SPLATTER"
	default:
		return fmt.Sprintf("Mode(%d)", byte(m))
	}
}

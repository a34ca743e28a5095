// Package preview draws images in a terminal.
//
// Each character cell shows two pixels stacked vertically: an upper half
// block colored with the top pixel as foreground and the bottom pixel as
// background.
package preview

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/anthonynsimon/bild/transform"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	upperHalf    = "▀"
	defaultWidth = 80
)

// Options controls rendering.
type Options struct {
	// MaxWidth is the widest output in cells; wider images are scaled
	// down. Zero means no limit.
	MaxWidth int
	// Profile is the terminal color profile. The zero value is true color.
	Profile termenv.Profile
}

// TerminalWidth returns the width of f if it is a terminal, otherwise a
// default of 80 columns.
func TerminalWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// DetectOptions returns options fitted to stdout.
func DetectOptions() Options {
	return Options{
		MaxWidth: TerminalWidth(os.Stdout),
		Profile:  termenv.EnvColorProfile(),
	}
}

// Render writes img to w, one line per two pixel rows.
func Render(w io.Writer, img image.Image, opts Options) error {
	img = fit(img, opts.MaxWidth)
	b := img.Bounds()

	out := termenv.NewOutput(w, termenv.WithProfile(opts.Profile))
	bw := bufio.NewWriter(w)
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			s := out.String(upperHalf).Foreground(out.Color(hex(img.At(x, y))))
			if y+1 < b.Max.Y {
				s = s.Background(out.Color(hex(img.At(x, y+1))))
			}
			if _, err := bw.WriteString(s.String()); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// fit scales img down to at most maxWidth pixels wide, keeping its aspect
// ratio.
func fit(img image.Image, maxWidth int) image.Image {
	b := img.Bounds()
	if maxWidth <= 0 || b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	if h < 1 {
		h = 1
	}
	return transform.Resize(img, maxWidth, h, transform.NearestNeighbor)
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

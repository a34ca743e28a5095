package export

import (
	"bytes"
	"fmt"
	"image"
	"sort"

	"github.com/davesmith10/tiedye/internal/dye"
)

// ColorCount is one entry of an image's color histogram.
type ColorCount struct {
	Color dye.Color
	Count int
}

// ImageInfo contains metadata about an encoded image.
type ImageInfo struct {
	Width  int
	Height int
	Format string
	Colors []ColorCount // most frequent first
}

// Inspect decodes data and reports its dimensions, format and color
// histogram. Alpha is ignored.
func Inspect(data []byte) (*ImageInfo, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image data")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	b := img.Bounds()
	counts := make(map[dye.Color]int)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			counts[dye.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)}]++
		}
	}

	colors := make([]ColorCount, 0, len(counts))
	for c, n := range counts {
		colors = append(colors, ColorCount{Color: c, Count: n})
	}
	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Count != colors[j].Count {
			return colors[i].Count > colors[j].Count
		}
		return colors[i].Color.Hex() < colors[j].Color.Hex()
	})

	return &ImageInfo{
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: format,
		Colors: colors,
	}, nil
}

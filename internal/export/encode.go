// Package export encodes generated images to files and inspects them.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an output image format.
type Format string

// Supported formats.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ParseFormat converts a format name or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tiff", "tif":
		return TIFF, nil
	default:
		return "", fmt.Errorf("unknown image format: %q", s)
	}
}

// FormatFromPath picks a format from a file name's extension, falling back
// to PNG when there is none.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return PNG, nil
	}
	return ParseFormat(ext)
}

// EncoderOptions controls image encoding.
type EncoderOptions struct {
	Format  Format // default PNG
	Quality int    // JPEG quality 1-100, default 90
	Scale   int    // integer upscale factor, default 1
}

// Encode scales img by opts.Scale and encodes it.
func Encode(img image.Image, opts EncoderOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = PNG
	}
	if opts.Quality == 0 {
		opts.Quality = 90
	}

	if img.Bounds().Empty() {
		return nil, fmt.Errorf("cannot encode empty %s image", img.Bounds().Size())
	}

	scaled, err := Scale(img, opts.Scale)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch opts.Format {
	case PNG:
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, scaled)
	case JPEG:
		err = jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: clampQuality(opts.Quality)})
	case BMP:
		err = bmp.Encode(&buf, scaled)
	case TIFF:
		err = tiff.Encode(&buf, scaled, &tiff.Options{Compression: tiff.Deflate})
	default:
		return nil, fmt.Errorf("unknown image format: %q", opts.Format)
	}
	if err != nil {
		return nil, fmt.Errorf("%s encode: %w", opts.Format, err)
	}
	return buf.Bytes(), nil
}

// Scale enlarges img by an integer factor with nearest-neighbor sampling so
// every output pixel keeps a palette color. Factors of 0 and 1 return img
// unchanged.
func Scale(img image.Image, factor int) (image.Image, error) {
	if factor < 0 {
		return nil, fmt.Errorf("invalid scale factor %d", factor)
	}
	b := img.Bounds()
	if factor <= 1 || b.Empty() {
		return img, nil
	}
	return transform.Resize(img, b.Dx()*factor, b.Dy()*factor, transform.NearestNeighbor), nil
}

func clampQuality(q int) int {
	if q < 1 {
		return 1
	}
	if q > 100 {
		return 100
	}
	return q
}

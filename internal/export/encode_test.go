package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davesmith10/tiedye/internal/dye"
	"github.com/davesmith10/tiedye/internal/raster"
)

var (
	blue = dye.Color{R: 50, G: 50, B: 255}
	pink = dye.Color{R: 255, G: 52, B: 179}
)

// stripes returns a 4x3 image with a blue first column and a pink last row.
func stripes() *raster.Image {
	img := raster.New(4, 3, dye.White)
	for y := 0; y < 3; y++ {
		img.SetPixel(0, y, blue)
	}
	for x := 0; x < 4; x++ {
		img.SetPixel(x, 2, pink)
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"png": PNG, ".PNG": PNG, "jpg": JPEG, "jpeg": JPEG,
		"bmp": BMP, "tif": TIFF, ".tiff": TIFF,
	}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("gif")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	f, err := FormatFromPath("out/design.tif")
	require.NoError(t, err)
	assert.Equal(t, TIFF, f)

	f, err = FormatFromPath("design")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	_, err = FormatFromPath("design.webp")
	assert.Error(t, err)
}

func TestLosslessRoundTrip(t *testing.T) {
	img := stripes()
	want := img.Histogram()

	for _, format := range []Format{PNG, BMP, TIFF} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(img, EncoderOptions{Format: format})
			require.NoError(t, err)

			info, err := Inspect(data)
			require.NoError(t, err)
			assert.Equal(t, 4, info.Width)
			assert.Equal(t, 3, info.Height)
			assert.Equal(t, string(format), info.Format)

			got := make(map[dye.Color]int)
			for _, cc := range info.Colors {
				got[cc.Color] = cc.Count
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestJPEGDimensions(t *testing.T) {
	data, err := Encode(stripes(), EncoderOptions{Format: JPEG, Quality: 150})
	require.NoError(t, err)
	require.True(t, len(data) > 2 && data[0] == 0xFF && data[1] == 0xD8, "not a JPEG")

	info, err := Inspect(data)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", info.Format)
	assert.Equal(t, 4, info.Width)
	assert.Equal(t, 3, info.Height)
}

func TestScale(t *testing.T) {
	img := stripes()
	data, err := Encode(img, EncoderOptions{Scale: 3})
	require.NoError(t, err)

	info, err := Inspect(data)
	require.NoError(t, err)
	assert.Equal(t, 12, info.Width)
	assert.Equal(t, 9, info.Height)

	want := img.Histogram()
	require.Len(t, info.Colors, len(want))
	total := 0
	for _, cc := range info.Colors {
		assert.Contains(t, want, cc.Color)
		total += cc.Count
	}
	assert.Equal(t, 12*9, total)
	// Most frequent first: 6 white, 4 pink, 2 blue source pixels.
	assert.Equal(t, dye.White, info.Colors[0].Color)
	assert.Equal(t, blue, info.Colors[2].Color)

	_, err = Scale(img, -1)
	assert.Error(t, err)
	same, err := Scale(img, 1)
	require.NoError(t, err)
	assert.Same(t, img, same)
}

func TestEncodeEmpty(t *testing.T) {
	_, err := Encode(raster.New(0, 5, dye.White), EncoderOptions{})
	assert.Error(t, err)
}

func TestInspectRejects(t *testing.T) {
	_, err := Inspect(nil)
	assert.Error(t, err)
	_, err = Inspect([]byte("not an image"))
	assert.Error(t, err)
}

func TestClampQuality(t *testing.T) {
	assert.Equal(t, 1, clampQuality(-5))
	assert.Equal(t, 100, clampQuality(101))
	assert.Equal(t, 42, clampQuality(42))
}

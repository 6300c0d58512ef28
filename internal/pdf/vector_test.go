package pdf

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10" viewBox="0 0 10 10">
<path d="M 0 0 L 10 0 L 10 10 L 0 10 Z" fill="#ff0000"/>
</svg>`

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected *color.RGBA
	}{
		{"#4D406E", &color.RGBA{R: 0x4d, G: 0x40, B: 0x6e, A: 0xff}},
		{"#fff", &color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{"rgb(160, 138, 236)", &color.RGBA{R: 160, G: 138, B: 236, A: 0xff}},
		{"RGB(1,2,3)", &color.RGBA{R: 1, G: 2, B: 3, A: 0xff}},
		{"black", &color.RGBA{A: 0xff}},
		{"none", nil},
		{"", nil},
		{"#12345", nil},
		{"rgb(300, 0, 0)", nil},
		{"currentColor", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseColor(tt.input))
		})
	}
}

func TestParseVector(t *testing.T) {
	img, err := ParseVector([]byte(squareSVG))
	require.NoError(t, err)

	assert.Equal(t, 10.0, img.Width)
	assert.Equal(t, 10.0, img.Height)
	require.Len(t, img.Paths, 1)
	assert.Equal(t, &color.RGBA{R: 0xff, A: 0xff}, img.Paths[0].Color)
	assert.NotEmpty(t, img.Paths[0].Segments)
}

func TestParseVector_BundledAssets(t *testing.T) {
	for _, path := range []string{iconAssetPath, logoAssetPath} {
		t.Run(path, func(t *testing.T) {
			img, err := loadVector(bundledAssets, path)
			require.NoError(t, err)
			assert.Greater(t, img.Width, 0.0)
			assert.NotEmpty(t, img.Paths)
		})
	}
}

func TestParseVector_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not xml", "this is not an svg"},
		{"no paths", `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVector([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestRasterize(t *testing.T) {
	img, err := ParseVector([]byte(squareSVG))
	require.NoError(t, err)

	rgba, err := Rasterize(img, 20)
	require.NoError(t, err)
	assert.Equal(t, 20, rgba.Bounds().Dx())
	assert.Equal(t, 20, rgba.Bounds().Dy())

	c := rgba.RGBAAt(10, 10)
	assert.Equal(t, uint8(0xff), c.R)
	assert.Equal(t, uint8(0xff), c.A)

	_, err = Rasterize(img, 0)
	assert.Error(t, err)
}

func TestRasterAssetFromVector(t *testing.T) {
	img, err := ParseVector([]byte(squareSVG))
	require.NoError(t, err)

	asset, err := RasterAssetFromVector("square", img, 32)
	require.NoError(t, err)
	w, h := asset.Size()
	assert.Equal(t, 32.0, w)
	assert.Equal(t, 32.0, h)

	_, err = NewRasterAsset("broken", []byte("not a png"))
	assert.Error(t, err)
}

func TestFitSize(t *testing.T) {
	logo := NewVectorAsset(&VectorImage{Width: 200, Height: 40})
	w, h := fitSize(logo, 100, 100)
	assert.InDelta(t, 100.0, w, 1e-9)
	assert.InDelta(t, 20.0, h, 1e-9)
}

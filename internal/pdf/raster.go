package pdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/vector"
)

// Rasterize renders img into an RGBA image widthPx pixels wide with a
// transparent background.
func Rasterize(img *VectorImage, widthPx int) (*image.RGBA, error) {
	if widthPx <= 0 {
		return nil, fmt.Errorf("invalid raster width: %d", widthPx)
	}
	scale := float32(widthPx) / float32(img.Width)
	heightPx := int(math.Ceil(img.Height * float64(scale)))
	if heightPx <= 0 {
		return nil, fmt.Errorf("invalid raster height for %gx%g", img.Width, img.Height)
	}

	dst := image.NewRGBA(image.Rect(0, 0, widthPx, heightPx))
	for _, p := range img.Paths {
		c := color.RGBA{A: 0xff}
		if p.Color != nil {
			c = *p.Color
		}

		z := vector.NewRasterizer(widthPx, heightPx)
		z.DrawOp = draw.Over
		pt := func(x, y float64) (float32, float32) { return float32(x) * scale, float32(y) * scale }

		var cx, cy float64
		for _, seg := range p.Segments {
			switch seg.Cmd {
			case 'M':
				cx, cy = seg.Arg[0], seg.Arg[1]
				z.MoveTo(pt(cx, cy))
			case 'L':
				cx, cy = seg.Arg[0], seg.Arg[1]
				z.LineTo(pt(cx, cy))
			case 'H':
				cx = seg.Arg[0]
				z.LineTo(pt(cx, cy))
			case 'V':
				cy = seg.Arg[0]
				z.LineTo(pt(cx, cy))
			case 'C':
				c0x, c0y := pt(seg.Arg[0], seg.Arg[1])
				c1x, c1y := pt(seg.Arg[2], seg.Arg[3])
				cx, cy = seg.Arg[4], seg.Arg[5]
				ex, ey := pt(cx, cy)
				z.CubeTo(c0x, c0y, c1x, c1y, ex, ey)
			case 'Q':
				qx, qy := pt(seg.Arg[0], seg.Arg[1])
				cx, cy = seg.Arg[2], seg.Arg[3]
				ex, ey := pt(cx, cy)
				z.QuadTo(qx, qy, ex, ey)
			case 'Z':
				z.ClosePath()
			}
		}
		z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
	}
	return dst, nil
}

// RasterAsset is a PNG image embedded into the document on first use
type RasterAsset struct {
	name   string
	data   []byte
	width  int
	height int
}

// NewRasterAsset checks that data is a PNG and records its pixel size.
// name identifies the image inside the document.
func NewRasterAsset(name string, data []byte) (*RasterAsset, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid PNG asset %s: %w", name, err)
	}
	return &RasterAsset{name: name, data: data, width: cfg.Width, height: cfg.Height}, nil
}

// RasterAssetFromVector rasterizes img to a PNG-backed asset
func RasterAssetFromVector(name string, img *VectorImage, widthPx int) (*RasterAsset, error) {
	rgba, err := Rasterize(img, widthPx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return NewRasterAsset(name, buf.Bytes())
}

// Size returns the pixel dimensions
func (a *RasterAsset) Size() (float64, float64) {
	return float64(a.width), float64(a.height)
}

// Draw places the image with its top-left corner at (x, top). A failed
// registration is cleared from the document so the rest of it can still
// be produced.
func (a *RasterAsset) Draw(doc *fpdf.Fpdf, x, top, width, height float64) error {
	if err := doc.Error(); err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader(a.name, opts, bytes.NewReader(a.data))
	if err := doc.Error(); err != nil {
		doc.ClearError()
		return fmt.Errorf("failed to register image %s: %w", a.name, err)
	}
	doc.ImageOptions(a.name, x, top, width, height, false, opts, 0, "")
	return nil
}

package pdf

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
)

// defaultViewBoxWidth is assumed when an SVG declares no usable extent
const defaultViewBoxWidth = 100

// VectorPath is one filled outline of a vector image
type VectorPath struct {
	Segments []fpdf.SVGBasicSegmentType
	// Color is nil when the path declares neither fill nor stroke
	Color *color.RGBA
}

// VectorImage is a parsed SVG: path geometry in view-box units plus the
// colour of each path.
type VectorImage struct {
	Width  float64
	Height float64
	Paths  []VectorPath
}

type svgPathAttrs struct {
	D      string `xml:"d,attr"`
	Fill   string `xml:"fill,attr"`
	Stroke string `xml:"stroke,attr"`
}

type svgAttrs struct {
	ViewBox string         `xml:"viewBox,attr"`
	Width   string         `xml:"width,attr"`
	Height  string         `xml:"height,attr"`
	Paths   []svgPathAttrs `xml:"path"`
}

// ParseVector reads the top-level paths of an SVG document. Geometry comes
// from fpdf's basic SVG parser; the view box and colours are read from the
// element attributes.
func ParseVector(data []byte) (*VectorImage, error) {
	sig, err := fpdf.SVGBasicParse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG paths: %w", err)
	}

	var attrs svgAttrs
	if err := xml.Unmarshal(data, &attrs); err != nil {
		return nil, fmt.Errorf("failed to parse SVG attributes: %w", err)
	}

	img := &VectorImage{}
	img.Width, img.Height = viewBoxExtent(attrs.ViewBox)
	if img.Width <= 0 {
		img.Width, img.Height = sig.Wd, sig.Ht
	}
	if img.Width <= 0 {
		img.Width = defaultViewBoxWidth
	}
	if img.Height <= 0 {
		img.Height = img.Width
	}

	for i, segs := range sig.Segments {
		p := VectorPath{Segments: segs}
		if i < len(attrs.Paths) {
			p.Color = pathColor(attrs.Paths[i])
		}
		img.Paths = append(img.Paths, p)
	}
	if len(img.Paths) == 0 {
		return nil, fmt.Errorf("SVG has no drawable paths")
	}
	return img, nil
}

func viewBoxExtent(vb string) (float64, float64) {
	parts := strings.Fields(strings.ReplaceAll(vb, ",", " "))
	if len(parts) != 4 {
		return 0, 0
	}
	w, errW := strconv.ParseFloat(parts[2], 64)
	h, errH := strconv.ParseFloat(parts[3], 64)
	if errW != nil || errH != nil {
		return 0, 0
	}
	return w, h
}

// pathColor prefers the fill colour and falls back to the stroke colour
func pathColor(p svgPathAttrs) *color.RGBA {
	if c := ParseColor(p.Fill); c != nil {
		return c
	}
	return ParseColor(p.Stroke)
}

var rgbFuncPattern = regexp.MustCompile(`(?i)^rgb\s*\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*\)$`)

// ParseColor understands #rgb, #rrggbb, rgb(r, g, b), black and white.
// It returns nil for "none" and anything it does not recognise.
func ParseColor(s string) *color.RGBA {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "none":
		return nil
	case "black":
		return &color.RGBA{A: 0xff}
	case "white":
		return &color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}

	if hex, ok := strings.CutPrefix(s, "#"); ok {
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return nil
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil
		}
		return &color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	}

	m := rgbFuncPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	var ch [3]uint8
	for i := range ch {
		v, err := strconv.Atoi(m[i+1])
		if err != nil || v > 255 {
			return nil
		}
		ch[i] = uint8(v)
	}
	return &color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}
}

// VectorAsset draws a VectorImage with PDF path operators
type VectorAsset struct {
	img *VectorImage
}

// NewVectorAsset wraps img as a drawable asset
func NewVectorAsset(img *VectorImage) *VectorAsset {
	return &VectorAsset{img: img}
}

// Size returns the view-box extent
func (a *VectorAsset) Size() (float64, float64) {
	return a.img.Width, a.img.Height
}

// Draw fills every path scaled by width over the view-box width, with the
// view-box origin at (x, top). Paths without a colour are filled black.
func (a *VectorAsset) Draw(doc *fpdf.Fpdf, x, top, width, _ float64) error {
	scale := width / a.img.Width
	px := func(v float64) float64 { return x + v*scale }
	py := func(v float64) float64 { return top + v*scale }

	for _, p := range a.img.Paths {
		c := color.RGBA{A: 0xff}
		if p.Color != nil {
			c = *p.Color
		}
		doc.SetFillColor(int(c.R), int(c.G), int(c.B))

		var cx, cy float64
		for _, seg := range p.Segments {
			switch seg.Cmd {
			case 'M':
				cx, cy = seg.Arg[0], seg.Arg[1]
				doc.MoveTo(px(cx), py(cy))
			case 'L':
				cx, cy = seg.Arg[0], seg.Arg[1]
				doc.LineTo(px(cx), py(cy))
			case 'H':
				cx = seg.Arg[0]
				doc.LineTo(px(cx), py(cy))
			case 'V':
				cy = seg.Arg[0]
				doc.LineTo(px(cx), py(cy))
			case 'C':
				cx, cy = seg.Arg[4], seg.Arg[5]
				doc.CurveBezierCubicTo(px(seg.Arg[0]), py(seg.Arg[1]), px(seg.Arg[2]), py(seg.Arg[3]), px(cx), py(cy))
			case 'Q':
				cx, cy = seg.Arg[2], seg.Arg[3]
				doc.CurveTo(px(seg.Arg[0]), py(seg.Arg[1]), px(cx), py(cy))
			case 'Z':
				doc.ClosePath()
			}
		}
		doc.DrawPath("F")
	}
	return doc.Error()
}

package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/a3tai/harvest-report/internal/harvest"
)

const (
	fontFamily = "Helvetica"
	styleBold  = "B"
	styleReg   = ""

	// ReportPages is the number of pages every harvest report has
	ReportPages = 2
)

// Renderer lays out harvest records as two-page A4 reports
type Renderer struct {
	layout       Layout
	labels       Labels
	assets       Assets
	customAssets bool
	creator      string
}

// Option configures a Renderer
type Option func(*Renderer)

// WithLayout overrides the page geometry
func WithLayout(l Layout) Option {
	return func(r *Renderer) { r.layout = l }
}

// WithLabels overrides the printed labels
func WithLabels(l Labels) Option {
	return func(r *Renderer) { r.labels = l }
}

// WithAssets replaces the bundled icon and logo
func WithAssets(a Assets) Option {
	return func(r *Renderer) {
		r.assets = a
		r.customAssets = true
	}
}

// WithCreator sets the creator recorded in the document metadata
func WithCreator(name string) Option {
	return func(r *Renderer) { r.creator = name }
}

// NewRenderer creates a renderer with the default layout, labels and the
// bundled assets unless overridden.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		layout:  DefaultLayout(),
		labels:  DefaultLabels(),
		creator: "harvest-report",
	}
	for _, opt := range opts {
		opt(r)
	}
	if !r.customAssets {
		r.assets = DefaultAssets()
	}
	return r
}

// Layout returns the geometry the renderer draws with
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render produces the report for rec. reportID is stored in the document
// subject. The returned bytes have been checked to parse as a PDF with the
// expected number of pages.
func (r *Renderer) Render(ctx context.Context, rec harvest.Record, reportID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := r.layout
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetTitle(r.labels.Title, true)
	doc.SetSubject(fmt.Sprintf("Harvest report %s", reportID), true)
	doc.SetCreator(r.creator, true)
	doc.SetTextColor(l.TextColor.R, l.TextColor.G, l.TextColor.B)
	doc.SetDrawColor(l.TextColor.R, l.TextColor.G, l.TextColor.B)

	// Page 1: name and crop
	doc.AddPage()
	r.drawTitleAndRule(doc)
	textX, y := r.drawHeader(doc)
	r.drawLabelValue(doc, r.labels.Name, rec.FullName, textX, y)
	y -= l.LineGap
	r.drawLabelValue(doc, r.labels.Crop, string(rec.Crop), textX, y)
	r.drawFooterLogo(doc)

	// Page 2: tonnage, wrapped to the section width
	doc.AddPage()
	r.drawTitleAndRule(doc)
	textX, y = r.drawHeader(doc)
	tons := harvest.FormatTons(rec.Tons)
	lines := r.wrapValue(doc, r.labels.Tons, tons, l.SectionX+l.SectionWidth-l.BodyRightPadding-textX)
	if len(lines) <= 1 {
		r.drawLabelValue(doc, r.labels.Tons, tons, textX, y)
	} else {
		r.drawLabelValueLines(doc, r.labels.Tons, lines, textX, y, l.LineGap)
	}
	r.drawFooterLogo(doc)

	r.drawPageNumbers(doc)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &RenderError{Op: "serialize", Err: err}
	}

	data := buf.Bytes()
	if _, err := Verify(data, ReportPages); err != nil {
		return nil, &RenderError{Op: "verify", Err: err}
	}
	return data, nil
}

func (r *Renderer) drawTitleAndRule(doc *fpdf.Fpdf) {
	l := r.layout
	doc.SetFont(fontFamily, styleBold, l.TitleSize)
	title := winAnsi(r.labels.Title)
	tw := doc.GetStringWidth(title)
	doc.Text((l.PageWidth-tw)/2, l.top(l.TitleY), title)

	doc.SetLineWidth(l.RuleWidth)
	doc.Line(l.SectionX, l.top(l.LineY), l.SectionX+l.SectionWidth, l.top(l.LineY))
}

// drawHeader draws the icon and subtitle and returns the x of the body
// text column and the baseline of the first body line.
func (r *Renderer) drawHeader(doc *fpdf.Fpdf) (float64, float64) {
	l := r.layout
	headerX := l.SectionX
	headerY := l.SectionTopY - l.HeaderBarH
	iconX := headerX + l.IconOffsetX
	iconRightX := iconX

	if r.assets.Icon != nil {
		w, h := fitSize(r.assets.Icon, l.IconSize, l.IconSize)
		iconY := headerY + (l.HeaderBarH-h)/2 + l.IconShiftY
		if err := r.assets.Icon.Draw(doc, iconX, l.top(iconY+h), w, h); err != nil {
			log.Printf("Skipping header icon: %v", err)
		} else {
			iconRightX = iconX + w
		}
	}

	subX := iconRightX + l.HeaderGap
	subY := headerY + (l.HeaderBarH-l.SubtitleSize)/2 + l.SubtitleShiftY
	doc.SetFont(fontFamily, styleBold, l.SubtitleSize)
	doc.Text(subX, l.top(subY), winAnsi(r.labels.Subtitle))

	return subX + l.BodyExtraIndent, subY - l.GapAfterSubtitle
}

// drawLabelValue prints "label value" on one baseline
func (r *Renderer) drawLabelValue(doc *fpdf.Fpdf, label, value string, x, y float64) {
	l := r.layout
	if value == "" {
		value = r.labels.Missing
	}
	lw := r.drawLabel(doc, label, x, y)
	doc.SetFont(fontFamily, styleReg, l.ValueSize)
	doc.Text(x+lw, l.top(y), winAnsi(value))
}

// drawLabelValueLines prints the first line after the label and every
// following line at x, lineGap apart.
func (r *Renderer) drawLabelValueLines(doc *fpdf.Fpdf, label string, lines []string, x, y, lineGap float64) {
	l := r.layout
	lw := r.drawLabel(doc, label, x, y)
	doc.SetFont(fontFamily, styleReg, l.ValueSize)
	doc.Text(x+lw, l.top(y), winAnsi(lines[0]))
	for _, line := range lines[1:] {
		y -= lineGap
		doc.Text(x, l.top(y), winAnsi(line))
	}
}

func (r *Renderer) drawLabel(doc *fpdf.Fpdf, label string, x, y float64) float64 {
	l := r.layout
	text := winAnsi(label + " ")
	doc.SetFont(fontFamily, styleBold, l.LabelSize)
	doc.Text(x, l.top(y), text)
	return doc.GetStringWidth(text)
}

// wrapValue splits value into lines no wider than maxWidth in the value
// font. The first line shares its baseline with label and gets the width
// the label leaves over.
func (r *Renderer) wrapValue(doc *fpdf.Fpdf, label, value string, maxWidth float64) []string {
	doc.SetFont(fontFamily, styleBold, r.layout.LabelSize)
	labelWidth := doc.GetStringWidth(winAnsi(label + " "))
	doc.SetFont(fontFamily, styleReg, r.layout.ValueSize)
	return WrapHanging(value, maxWidth-labelWidth, maxWidth, func(s string) float64 {
		return doc.GetStringWidth(winAnsi(s))
	})
}

func (r *Renderer) drawFooterLogo(doc *fpdf.Fpdf) {
	if r.assets.Logo == nil {
		return
	}
	l := r.layout
	lw, lh := r.assets.Logo.Size()
	w := l.FooterLogoWidth
	h := w
	if lw > 0 {
		h = w * lh / lw
	}
	if err := r.assets.Logo.Draw(doc, (l.PageWidth-w)/2, l.top(l.FooterLogoY), w, h); err != nil {
		log.Printf("Skipping footer logo: %v", err)
	}
}

// drawPageNumbers revisits every page once the document is complete and
// centres "<page>/<total>" at the bottom.
func (r *Renderer) drawPageNumbers(doc *fpdf.Fpdf) {
	l := r.layout
	total := doc.PageCount()
	for i := 1; i <= total; i++ {
		doc.SetPage(i)
		selectFont(doc, styleReg, l.FooterPageSize)
		label := fmt.Sprintf("%d/%d", i, total)
		w := doc.GetStringWidth(label)
		doc.Text((l.PageWidth-w)/2, l.top(l.FooterPageY), label)
	}
}

// selectFont writes a font selection into the current page. SetFont skips
// a font that is already active, but a revisited page's content stream
// may have last used a different one.
func selectFont(doc *fpdf.Fpdf, style string, size float64) {
	other := styleBold
	if style == styleBold {
		other = styleReg
	}
	doc.SetFont(fontFamily, other, size)
	doc.SetFont(fontFamily, style, size)
}

// winAnsi encodes s for the standard PDF fonts, which use Windows-1252.
// Characters outside that code page are replaced.
func winAnsi(s string) string {
	out, err := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder()).String(s)
	if err != nil {
		return s
	}
	return out
}

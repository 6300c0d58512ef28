package pdf

// Layout is the fixed page geometry of a harvest report. Vertical positions
// are measured from the bottom edge of the page, in points.
type Layout struct {
	PageWidth  float64
	PageHeight float64

	TitleSize float64
	TitleY    float64
	LineY     float64
	RuleWidth float64

	SectionWidth float64
	SectionX     float64
	SectionTopY  float64
	HeaderBarH   float64

	SubtitleSize float64
	LabelSize    float64
	ValueSize    float64

	IconSize       float64
	IconOffsetX    float64
	IconShiftY     float64
	HeaderGap      float64
	SubtitleShiftY float64

	LineGap           float64
	GapAfterSubtitle  float64
	BodyExtraIndent   float64
	BodyRightPadding  float64
	FooterLogoY       float64
	FooterLogoWidth   float64
	FooterPageY       float64
	FooterPageSize    float64

	TextColor RGB
}

// RGB is an 8-bit colour
type RGB struct {
	R, G, B int
}

// DefaultLayout returns the A4 report geometry
func DefaultLayout() Layout {
	const (
		pageW    = 595.28
		pageH    = 841.89
		titleY   = pageH - 150
		lineY    = titleY - 25
		sectionW = 380
		lineGap  = 50
	)
	return Layout{
		PageWidth:  pageW,
		PageHeight: pageH,

		TitleSize: 40,
		TitleY:    titleY,
		LineY:     lineY,
		RuleWidth: 2,

		SectionWidth: sectionW,
		SectionX:     (pageW - sectionW) / 2,
		SectionTopY:  lineY - 25,
		HeaderBarH:   44,

		SubtitleSize: 24,
		LabelSize:    20,
		ValueSize:    20,

		IconSize:       66.7,
		IconOffsetX:    8,
		IconShiftY:     55,
		HeaderGap:      30,
		SubtitleShiftY: 10,

		LineGap:          lineGap,
		GapAfterSubtitle: lineGap,
		BodyExtraIndent:  0,
		BodyRightPadding: 14,
		FooterLogoY:      150,
		FooterLogoWidth:  200,
		FooterPageY:      28,
		FooterPageSize:   12,

		TextColor: RGB{R: 0x4D, G: 0x40, B: 0x6E},
	}
}

// top converts a bottom-up y coordinate into the top-down coordinate the
// drawing library expects.
func (l Layout) top(y float64) float64 {
	return l.PageHeight - y
}

// Labels are the fixed strings printed on the report
type Labels struct {
	Title    string
	Subtitle string
	Name     string
	Crop     string
	Tons     string
	// Missing is printed in place of an empty value
	Missing string
}

// DefaultLabels returns the Spanish report labels
func DefaultLabels() Labels {
	return Labels{
		Title:    "Reporte de Datos",
		Subtitle: "Información del Reporte",
		Name:     "Nombre:",
		Crop:     "Cosecha:",
		Tons:     "Toneladas cosechadas:",
		Missing:  "—",
	}
}

package report

// Geometry is the page layout in millimetres (font sizes in points).
type Geometry struct {
	PageWidth    float64
	PageHeight   float64
	Margin       float64 // left/right content margin
	BorderInset  float64 // distance of the decorative border from the page edge
	TopMargin    float64 // cursor start on continuation pages
	BottomMargin float64 // reserved footer band

	LogoBandTop    float64
	LogoBandHeight float64
	LogoMaxWidth   float64

	LabelWidth       float64
	FontSize         float64
	LineHeight       float64
	SingleLineHeight float64
	RowPadding       float64

	SectionHeaderHeight float64
	SectionFontSize     float64

	TitleFontSize    float64
	SubtitleFontSize float64
	MetaFontSize     float64
	QRSize           float64

	FooterFontSize   float64
	FooterLineHeight float64
}

// DefaultGeometry is portrait A4.
func DefaultGeometry() Geometry {
	return Geometry{
		PageWidth:    210,
		PageHeight:   297,
		Margin:       15,
		BorderInset:  6,
		TopMargin:    16,
		BottomMargin: 24,

		LogoBandTop:    11,
		LogoBandHeight: 20,
		LogoMaxWidth:   40,

		LabelWidth:       58,
		FontSize:         10,
		LineHeight:       5,
		SingleLineHeight: 7,
		RowPadding:       1.5,

		SectionHeaderHeight: 13,
		SectionFontSize:     12,

		TitleFontSize:    16,
		SubtitleFontSize: 11,
		MetaFontSize:     8,
		QRSize:           22,

		FooterFontSize:   8,
		FooterLineHeight: 3.8,
	}
}

// ContentWidth is the drawable width between the side margins.
func (g Geometry) ContentWidth() float64 {
	return g.PageWidth - 2*g.Margin
}

// ValueWidth is the width available to a wrapped field value.
func (g Geometry) ValueWidth() float64 {
	return g.PageWidth - g.LabelWidth - 2*g.Margin
}

// UsableHeight is the height between the top margin and the footer band.
func (g Geometry) UsableHeight() float64 {
	return g.PageHeight - g.BottomMargin - g.TopMargin
}

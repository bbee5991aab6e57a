package text

import "unicode/utf8"

// Measurer reports the rendered width of s at fontSize (points).
// The width unit is whatever the caller's layout uses (mm for the PDF).
type Measurer interface {
	StringWidth(s string, fontSize float64) float64
}

// MeasureFunc adapts a plain function to [Measurer].
type MeasureFunc func(s string, fontSize float64) float64

// StringWidth calls f.
func (f MeasureFunc) StringWidth(s string, fontSize float64) float64 { return f(s, fontSize) }

// MillimetresPerPoint converts typographic points to millimetres.
const MillimetresPerPoint = 25.4 / 72

// defaultCharWidth is the average glyph advance of a proportional sans font
// as a fraction of the font size.
const defaultCharWidth = 0.55

// Approx estimates widths from rune count, assuming every glyph has the same
// advance. It overestimates narrow text and underestimates wide capitals,
// which is acceptable for previews.
type Approx struct {
	// CharWidth is the glyph advance as a fraction of font size (default 0.55).
	CharWidth float64
	// UnitPerPoint converts points to the output unit (default 1, i.e. points).
	UnitPerPoint float64
}

// StringWidth implements [Measurer].
func (a Approx) StringWidth(s string, fontSize float64) float64 {
	cw := a.CharWidth
	if cw <= 0 {
		cw = defaultCharWidth
	}
	unit := a.UnitPerPoint
	if unit <= 0 {
		unit = 1
	}
	return float64(utf8.RuneCountInString(s)) * fontSize * cw * unit
}

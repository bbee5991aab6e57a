package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/railreport/pkg/material"
	"github.com/matzehuels/railreport/pkg/text"
)

// Placeholder is printed for absent values.
const Placeholder = "—"

// FormatValue renders v for display. Nil, empty and whitespace-only strings,
// nil pointers and NaN return ok=false so the caller substitutes a
// placeholder.
func FormatValue(v any) (s string, ok bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		if strings.TrimSpace(x) == "" {
			return "", false
		}
		return strings.TrimSpace(x), true
	case *string:
		if x == nil {
			return "", false
		}
		return FormatValue(*x)
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case *float64:
		if x == nil {
			return "", false
		}
		return FormatValue(*x)
	case int:
		return strconv.Itoa(x), true
	case *int:
		if x == nil {
			return "", false
		}
		return strconv.Itoa(*x), true
	case bool:
		if x {
			return "Yes", true
		}
		return "No", true
	case fmt.Stringer:
		return FormatValue(x.String())
	default:
		return FormatValue(fmt.Sprint(x))
	}
}

// DisplayValue is FormatValue with the placeholder applied: placeholder if
// set, else [Placeholder].
func DisplayValue(v any, placeholder string) string {
	if s, ok := FormatValue(v); ok {
		return s
	}
	if placeholder != "" {
		return placeholder
	}
	return Placeholder
}

// WriteField draws one "<label>: <value>" row. The value is wrapped to the
// value column; the row is moved to a new page as a whole if it does not fit.
func (d *Document) WriteField(f material.Field) {
	value, lines := d.fieldLines(f)

	// A block taller than a whole page cannot avoid a split; cut it into
	// page-sized continuation rows instead of drawing past the footer.
	perPage := d.linesPerPage()
	label := f.Label
	for len(lines) > perPage && perPage > 0 {
		d.writeRow(label, value, lines[:perPage])
		lines = lines[perPage:]
		label = f.Label + " (cont.)"
	}
	d.writeRow(label, value, lines)
}

// RowHeight is the height of the first row WriteField would draw for f,
// padding excluded.
func (d *Document) RowHeight(f material.Field) float64 {
	_, lines := d.fieldLines(f)
	if n := d.linesPerPage(); n > 0 && len(lines) > n {
		lines = lines[:n]
	}
	return math.Max(d.geo.SingleLineHeight, text.Height(len(lines), d.geo.LineHeight))
}

func (d *Document) fieldLines(f material.Field) (string, []string) {
	value := DisplayValue(f.Value, f.Placeholder)
	return value, text.Wrap(value, d.geo.ValueWidth(), d.geo.FontSize, d.measurer(""))
}

func (d *Document) linesPerPage() int {
	return int((d.geo.UsableHeight() - d.geo.RowPadding) / d.geo.LineHeight)
}

func (d *Document) writeRow(label, value string, lines []string) {
	g := d.geo
	height := math.Max(g.SingleLineHeight, text.Height(len(lines), g.LineHeight))
	d.EnsureSpace(height + g.RowPadding)

	top := d.y
	d.pdf.SetFont(fontFamily, "B", g.FontSize)
	d.pdf.SetXY(g.Margin, top+1)
	d.pdf.CellFormat(g.LabelWidth, g.LineHeight, d.tr(label+":"), "", 0, "L", false, 0, "")

	d.pdf.SetFont(fontFamily, "", g.FontSize)
	if value == Placeholder || value == material.PlaceholderNotSet {
		d.pdf.SetTextColor(130, 130, 130)
	}
	for i, line := range lines {
		d.pdf.SetXY(g.Margin+g.LabelWidth, top+1+float64(i)*g.LineHeight)
		d.pdf.CellFormat(g.ValueWidth(), g.LineHeight, d.tr(line), "", 0, "L", false, 0, "")
	}
	d.pdf.SetTextColor(0, 0, 0)

	bottom := top + height
	d.pdf.SetDrawColor(220, 220, 220)
	d.pdf.SetLineWidth(0.1)
	d.pdf.Line(g.Margin, bottom, g.PageWidth-g.Margin, bottom)

	d.rows = append(d.rows, Row{
		Page:    d.pdf.PageNo(),
		Section: d.section,
		Label:   label,
		Value:   value,
		Lines:   lines,
		Top:     top,
		Bottom:  bottom,
	})
	d.y = bottom + g.RowPadding
}

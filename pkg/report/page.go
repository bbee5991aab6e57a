package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/railreport/pkg/material"
	"github.com/matzehuels/railreport/pkg/text"
)

const (
	fontFamily = "Helvetica"
	nbAlias    = "{nb}"
)

// Row records where a field row was drawn.
type Row struct {
	Page    int
	Section string
	Label   string
	Value   string // formatted value or placeholder
	Lines   []string
	Top     float64
	Bottom  float64
}

// Document is one report under construction: an fpdf document plus the
// vertical cursor that the section and field writers advance. A Document
// is owned by a single goroutine.
type Document struct {
	pdf     *fpdf.Fpdf
	geo     Geometry
	tr      func(string) string
	y       float64
	section string
	rows    []Row
}

func newDocument(geo Geometry) *Document {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: geo.PageWidth, Ht: geo.PageHeight},
	})
	pdf.SetMargins(geo.Margin, geo.TopMargin, geo.Margin)
	pdf.SetAutoPageBreak(false, geo.BottomMargin)
	pdf.AliasNbPages(nbAlias)

	d := &Document{
		pdf: pdf,
		geo: geo,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
	pdf.SetFooterFunc(d.drawPageNumber)
	pdf.AddPage()
	d.drawBorder()
	d.y = geo.TopMargin
	return d
}

// Y returns the cursor position on the current page.
func (d *Document) Y() float64 { return d.y }

// Page returns the current page number (1-based).
func (d *Document) Page() int { return d.pdf.PageNo() }

// Pages returns the number of pages in the document.
func (d *Document) Pages() int { return d.pdf.PageNo() }

// Rows returns the placement of every field row written so far.
func (d *Document) Rows() []Row { return d.rows }

// Remaining is the vertical space left above the footer band.
func (d *Document) Remaining() float64 {
	return d.geo.PageHeight - d.geo.BottomMargin - d.y
}

// EnsureSpace starts a new page when fewer than minHeight millimetres remain
// above the footer band. It reports whether a page was added.
func (d *Document) EnsureSpace(minHeight float64) bool {
	if d.Remaining() >= minHeight {
		return false
	}
	d.newPage()
	return true
}

func (d *Document) newPage() {
	d.pdf.AddPage()
	d.drawBorder()
	d.y = d.geo.TopMargin
}

// SectionHeader writes a bold title with a rule beneath it and moves the
// cursor past both, keeping room for a single-line row below it.
func (d *Document) SectionHeader(title string) {
	d.sectionHeader(title, d.geo.SingleLineHeight)
}

// BeginSection writes the section header and keeps it on the same page as
// first, however many lines first wraps to.
func (d *Document) BeginSection(title string, first material.Field) {
	d.sectionHeader(title, d.RowHeight(first))
}

func (d *Document) sectionHeader(title string, next float64) {
	g := d.geo
	d.EnsureSpace(min(g.SectionHeaderHeight+next+g.RowPadding, g.UsableHeight()))
	d.section = title

	top := d.y + 3
	d.pdf.SetFont(fontFamily, "B", g.SectionFontSize)
	d.pdf.SetTextColor(16, 54, 103)
	d.pdf.SetXY(g.Margin, top)
	d.pdf.CellFormat(g.ContentWidth(), 6, d.tr(title), "", 0, "L", false, 0, "")

	ruleY := top + 7
	d.pdf.SetDrawColor(16, 54, 103)
	d.pdf.SetLineWidth(0.4)
	d.pdf.Line(g.Margin, ruleY, g.PageWidth-g.Margin, ruleY)

	d.pdf.SetTextColor(0, 0, 0)
	d.y += g.SectionHeaderHeight
}

func (d *Document) drawBorder() {
	g := d.geo
	d.pdf.SetDrawColor(16, 54, 103)
	d.pdf.SetLineWidth(0.6)
	d.pdf.Rect(g.BorderInset, g.BorderInset, g.PageWidth-2*g.BorderInset, g.PageHeight-2*g.BorderInset, "D")
	d.pdf.SetLineWidth(0.2)
	inner := g.BorderInset + 1.2
	d.pdf.Rect(inner, inner, g.PageWidth-2*inner, g.PageHeight-2*inner, "D")
}

func (d *Document) drawPageNumber() {
	g := d.geo
	d.pdf.SetFont(fontFamily, "", g.FooterFontSize)
	d.pdf.SetTextColor(110, 110, 110)
	d.pdf.SetXY(g.Margin, g.PageHeight-g.BorderInset-6)
	d.pdf.CellFormat(g.ContentWidth(), 4, fmt.Sprintf("Page %d of %s", d.pdf.PageNo(), nbAlias), "", 0, "R", false, 0, "")
	d.pdf.SetTextColor(0, 0, 0)
}

// measurer measures with the document's real font metrics in the given style.
func (d *Document) measurer(style string) text.Measurer {
	return text.MeasureFunc(func(s string, size float64) float64 {
		d.pdf.SetFont(fontFamily, style, size)
		return d.pdf.GetStringWidth(d.tr(s))
	})
}

// Err returns the first error recorded by the PDF engine.
func (d *Document) Err() error { return d.pdf.Error() }

// WriteTo writes the finished PDF to w. The document is closed afterwards.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := d.pdf.Output(cw)
	return cw.n, err
}

// Bytes returns the finished PDF. The document is closed afterwards.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/railreport/pkg/assets"
	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
	"github.com/matzehuels/railreport/pkg/text"
)

const (
	DefaultTitle      = "Railway Track Fitting Material Report"
	DefaultAuthority  = "Issued by the Track Fittings Management Cell"
	DefaultDisclaimer = "This is a system-generated report. Values shown as — were not recorded at the time of generation. Verify against the depot register before use."

	creator          = "railreport"
	filenameSuffix   = "_Railway_Report.pdf"
	fallbackMaterial = "MATERIAL"
)

// Filename returns the download name for rec's report. Records without an
// id fall back to "MATERIAL_Railway_Report.pdf".
func Filename(rec *material.Record) string {
	id := rec.ID()
	if id == "" {
		id = fallbackMaterial
	}
	return id + filenameSuffix
}

// Input is everything one report is built from.
type Input struct {
	Record *material.Record
	// Logos fills the header band left to right. Nil entries leave a gap.
	Logos []*assets.Image

	GeneratedBy string
	GeneratedAt time.Time
	ReportID    string
}

// Composer lays out material reports. It holds configuration only and is
// safe for concurrent use; every Compose call builds a fresh Document.
type Composer struct {
	title      string
	authority  string
	disclaimer string
	geo        Geometry
	qr         bool
	logger     *log.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithTitle replaces the report title printed on page one.
func WithTitle(s string) Option { return func(c *Composer) { c.title = s } }

// WithAuthority replaces the issuing-authority subtitle.
func WithAuthority(s string) Option { return func(c *Composer) { c.authority = s } }

// WithDisclaimer replaces the footer disclaimer on the last page.
func WithDisclaimer(s string) Option { return func(c *Composer) { c.disclaimer = s } }

// WithGeometry overrides the page geometry (default [DefaultGeometry]).
func WithGeometry(g Geometry) Option { return func(c *Composer) { c.geo = g } }

// WithoutQRCode omits the material id QR code from the title block.
func WithoutQRCode() Option { return func(c *Composer) { c.qr = false } }

// WithLogger sets the logger for skipped logos and layout summaries.
// A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(c *Composer) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewComposer returns a Composer with A4 geometry and default texts.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{
		title:      DefaultTitle,
		authority:  DefaultAuthority,
		disclaimer: DefaultDisclaimer,
		geo:        DefaultGeometry(),
		qr:         true,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose lays out the full report for in.Record. A nil record renders with
// every field absent.
func (c *Composer) Compose(in Input) (*Document, error) {
	rec := in.Record
	if rec == nil {
		rec = &material.Record{}
	}
	d := newDocument(c.geo)
	c.setMetadata(d, rec, in)

	c.drawLogoBand(d, in.Logos)
	c.drawTitleBlock(d, rec, in)

	for _, sec := range material.Sections(rec) {
		if len(sec.Fields) > 0 {
			d.BeginSection(sec.Title, sec.Fields[0])
		} else {
			d.SectionHeader(sec.Title)
		}
		for _, f := range sec.Fields {
			d.WriteField(f)
		}
	}
	c.drawDisclaimer(d)

	if err := d.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "lay out report for %q", rec.ID())
	}
	c.logger.Debug("report laid out", "material", rec.ID(), "pages", d.Pages(), "rows", len(d.Rows()))
	return d, nil
}

// Render composes the report and returns the finished PDF bytes.
func (c *Composer) Render(in Input) ([]byte, int, error) {
	d, err := c.Compose(in)
	if err != nil {
		return nil, 0, err
	}
	pages := d.Pages()
	data, err := d.Bytes()
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeRenderFailed, err, "write PDF")
	}
	return data, pages, nil
}

func (c *Composer) setMetadata(d *Document, rec *material.Record, in Input) {
	title := c.title
	if id := rec.ID(); id != "" {
		title += " - " + id
	}
	d.pdf.SetTitle(title, true)
	d.pdf.SetSubject("Track fitting lifecycle record", true)
	d.pdf.SetCreator(creator, true)
	if in.GeneratedBy != "" {
		d.pdf.SetAuthor(in.GeneratedBy, true)
	}
	if !in.GeneratedAt.IsZero() {
		d.pdf.SetCreationDate(in.GeneratedAt)
		d.pdf.SetModificationDate(in.GeneratedAt)
	}
	d.pdf.SetCatalogSort(true)
}

// drawLogoBand splits the content width into one slot per logo and centres
// each image in its slot. Logos are decorative: one that cannot be embedded
// is skipped.
func (c *Composer) drawLogoBand(d *Document, logos []*assets.Image) {
	g := d.geo
	d.y = g.LogoBandTop + g.LogoBandHeight
	if len(logos) == 0 {
		return
	}
	slot := g.ContentWidth() / float64(len(logos))
	for i, logo := range logos {
		if logo == nil || len(logo.PNG) == 0 {
			continue
		}
		w, h := fitBox(logo.Aspect(), min(slot-4, g.LogoMaxWidth), g.LogoBandHeight)
		x := g.Margin + float64(i)*slot + (slot-w)/2
		y := g.LogoBandTop + (g.LogoBandHeight-h)/2
		if !d.embedPNG(fmt.Sprintf("logo-%d", i), logo.PNG, x, y, w, h) {
			c.logger.Warn("logo skipped", "slot", i, "source", logo.Source)
		}
	}
}

func (c *Composer) drawTitleBlock(d *Document, rec *material.Record, in Input) {
	g := d.geo
	top := d.y + 3

	// Text is centred between symmetric insets so the QR code at the right
	// never overlaps it.
	inset := g.Margin
	var qr *assets.Image
	if c.qr && rec.ID() != "" {
		img, err := QRCode(rec.ID())
		if err != nil {
			c.logger.Warn("QR code skipped", "material", rec.ID(), "err", err)
		} else {
			qr = img
			inset += g.QRSize + 2
		}
	}
	width := g.PageWidth - 2*inset

	y := top
	y = d.centredLines(c.title, "B", g.TitleFontSize, inset, width, y, 7)
	y = d.centredLines(c.authority, "", g.SubtitleFontSize, inset, width, y+1, 5)
	if meta := metaLine(in); meta != "" {
		d.pdf.SetTextColor(90, 90, 90)
		y = d.centredLines(meta, "", g.MetaFontSize, inset, width, y+1, 4)
		d.pdf.SetTextColor(0, 0, 0)
	}

	bottom := y
	if qr != nil {
		x := g.PageWidth - g.Margin - g.QRSize
		if d.embedPNG("qr", qr.PNG, x, top, g.QRSize, g.QRSize) {
			bottom = max(bottom, top+g.QRSize)
		}
	}
	d.y = bottom + 2
}

// drawDisclaimer writes the disclaimer in the footer band of the last page
// when it fits in two lines, otherwise in the flow above it.
func (c *Composer) drawDisclaimer(d *Document) {
	g := d.geo
	msg := strings.TrimSpace(c.disclaimer)
	if msg == "" {
		return
	}
	lines := text.Wrap(msg, g.ContentWidth(), g.FooterFontSize, d.measurer("I"))
	height := text.Height(len(lines), g.FooterLineHeight)

	y := g.PageHeight - g.BottomMargin + 2
	if len(lines) > 2 {
		d.EnsureSpace(height + 2)
		y = d.y + 2
	}
	d.pdf.SetFont(fontFamily, "I", g.FooterFontSize)
	d.pdf.SetTextColor(80, 80, 80)
	for i, line := range lines {
		d.pdf.SetXY(g.Margin, y+float64(i)*g.FooterLineHeight)
		d.pdf.CellFormat(g.ContentWidth(), g.FooterLineHeight, d.tr(line), "", 0, "C", false, 0, "")
	}
	d.pdf.SetTextColor(0, 0, 0)
	if len(lines) > 2 {
		d.y = y + height
	}
}

func metaLine(in Input) string {
	var parts []string
	if in.ReportID != "" {
		parts = append(parts, "Report No. "+in.ReportID)
	}
	if !in.GeneratedAt.IsZero() {
		parts = append(parts, "Generated "+in.GeneratedAt.Format("02 Jan 2006 15:04 MST"))
	}
	if in.GeneratedBy != "" {
		parts = append(parts, "by "+in.GeneratedBy)
	}
	return strings.Join(parts, " · ")
}

// centredLines wraps s into width and draws each line centred. It returns
// the y below the last line.
func (d *Document) centredLines(s, style string, size, x, width, y, lineHeight float64) float64 {
	if strings.TrimSpace(s) == "" {
		return y
	}
	lines := text.Wrap(s, width, size, d.measurer(style))
	d.pdf.SetFont(fontFamily, style, size)
	for _, line := range lines {
		d.pdf.SetXY(x, y)
		d.pdf.CellFormat(width, lineHeight, d.tr(line), "", 0, "C", false, 0, "")
		y += lineHeight
	}
	return y
}

// embedPNG registers and draws a PNG. If the engine rejects the image its
// error is cleared so the rest of the document still renders.
func (d *Document) embedPNG(name string, data []byte, x, y, w, h float64) bool {
	if !d.pdf.Ok() {
		return false
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if info == nil || !d.pdf.Ok() {
		d.pdf.ClearError()
		return false
	}
	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return true
}

// fitBox scales an image of the given aspect ratio to fit inside maxW×maxH.
func fitBox(aspect, maxW, maxH float64) (w, h float64) {
	if aspect <= 0 {
		aspect = 1
	}
	w, h = maxH*aspect, maxH
	if w > maxW {
		w, h = maxW, maxW/aspect
	}
	return w, h
}

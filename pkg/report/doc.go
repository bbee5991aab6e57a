// Package report renders a material record as a paginated PDF.
//
// # Layout
//
// The first page opens with a three-logo header band, a centred title, the
// issuing authority and a generation line (report number, time, user), with
// a QR code of the material id at the right. Four sections follow in fixed
// order:
//
//  1. Core Details
//  2. Technical Specifications
//  3. Logistics / Purchase
//  4. Lifecycle / TMS
//
// Each section is a header plus label/value rows. Every page carries the
// decorative border and a "Page N of M" footer; the last page ends with an
// italic disclaimer.
//
// # Pagination
//
// A [Document] keeps a vertical cursor. Before any variable-height block is
// drawn, [Document.EnsureSpace] starts a new page if the block would cross
// into the footer band, so a row is never split across pages. The only
// exception is a row taller than an entire page, which is cut at line
// boundaries into continuation rows that are themselves never split.
//
// # Placeholders
//
// Absent values never fail rendering: nil, empty and whitespace-only values
// print as "—" (or a field-specific placeholder such as "Not set").
//
// # Usage
//
//	c := report.NewComposer(report.WithAuthority("Issued by the Track Fittings Cell"))
//	doc, err := c.Compose(report.Input{Record: rec, Logos: logos})
//	if err != nil {
//	    return err
//	}
//	pdf, err := doc.Bytes()
//	name := report.Filename(rec) // "ABC1234_Railway_Report.pdf"
package report

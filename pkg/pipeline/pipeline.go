// Package pipeline ties record lookup, logo loading and PDF layout into one
// call that the CLI and the HTTP server share.
//
// # Stages
//
//  1. Lookup: fetch the record from a [store.Store] (Generate only)
//  2. Assets: load the header logos concurrently under a timeout
//  3. Render: lay out and encode the PDF
//
// Logo loading is the only stage that waits on I/O during a render and it
// never fails the report: a logo that cannot be loaded leaves its slot empty.
//
// # Usage
//
//	runner := pipeline.NewRunner(st, loader, report.NewComposer(), logos, logger)
//	res, err := runner.Generate(ctx, session.Local(), "XYZ0007")
//	if err != nil {
//	    return err
//	}
//	os.WriteFile(res.Filename, res.PDF, 0o644)
package pipeline

import (
	"time"
)

// Result is one rendered report.
type Result struct {
	Filename string
	PDF      []byte
	Pages    int
	ReportID string
	Stats    Stats
}

// Stats records how long each stage took.
type Stats struct {
	LookupTime  time.Duration
	AssetTime   time.Duration
	RenderTime  time.Duration
	LogosLoaded int
	LogoSlots   int
}

// Total is the sum of all stage durations.
func (s Stats) Total() time.Duration {
	return s.LookupTime + s.AssetTime + s.RenderTime
}

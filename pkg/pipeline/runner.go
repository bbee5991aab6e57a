package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/railreport/pkg/assets"
	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
	"github.com/matzehuels/railreport/pkg/observability"
	"github.com/matzehuels/railreport/pkg/report"
	"github.com/matzehuels/railreport/pkg/session"
	"github.com/matzehuels/railreport/pkg/store"
)

// Runner renders material reports. It holds no per-report state, so one
// Runner can serve concurrent requests.
type Runner struct {
	Store    store.Store
	Assets   *assets.Loader
	Composer *report.Composer
	// Logos are the header logo sources, left to right.
	Logos  []string
	Logger *log.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// NewRunner creates a runner. A nil composer uses the default layout and a
// nil logger discards output. st and loader may be nil when the caller only
// uses Render or wants no logos.
func NewRunner(st store.Store, loader *assets.Loader, composer *report.Composer, logos []string, logger *log.Logger) *Runner {
	if composer == nil {
		composer = report.NewComposer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Store:    st,
		Assets:   loader,
		Composer: composer,
		Logos:    logos,
		Logger:   logger,
		Clock:    time.Now,
	}
}

// Generate looks up materialID and renders its report for sess.
func (r *Runner) Generate(ctx context.Context, sess *session.Session, materialID string) (*Result, error) {
	if err := session.Require(sess); err != nil {
		return nil, err
	}
	if err := errors.ValidateMaterialID(materialID); err != nil {
		return nil, err
	}
	if r.Store == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no record store configured")
	}

	start := time.Now()
	rec, err := r.Store.Get(ctx, materialID)
	if err != nil {
		return nil, err
	}
	lookup := time.Since(start)
	r.Logger.Debug("record loaded", "material", rec.ID(), "duration", lookup)

	res, err := r.Render(ctx, sess, rec)
	if err != nil {
		return nil, err
	}
	res.Stats.LookupTime = lookup
	return res, nil
}

// Render builds the report for rec. Errors are returned unretried.
func (r *Runner) Render(ctx context.Context, sess *session.Session, rec *material.Record) (res *Result, err error) {
	if err := session.Require(sess); err != nil {
		return nil, err
	}
	id := rec.ID()
	hooks := observability.Report()
	hooks.OnRenderStart(ctx, id)
	began := time.Now()
	pages := 0
	defer func() {
		hooks.OnRenderComplete(ctx, id, pages, time.Since(began), err)
	}()

	res = &Result{Filename: report.Filename(rec), ReportID: uuid.NewString()}

	assetStart := time.Now()
	logos := r.loadLogos(ctx)
	res.Stats.AssetTime = time.Since(assetStart)
	res.Stats.LogoSlots = len(logos)
	for _, l := range logos {
		if l != nil {
			res.Stats.LogosLoaded++
		}
	}

	now := time.Now
	if r.Clock != nil {
		now = r.Clock
	}
	renderStart := time.Now()
	data, n, err := r.Composer.Render(report.Input{
		Record:      rec,
		Logos:       logos,
		GeneratedBy: sess.DisplayName(),
		GeneratedAt: now(),
		ReportID:    res.ReportID,
	})
	if err != nil {
		return nil, err
	}
	pages = n
	res.PDF = data
	res.Pages = n
	res.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered report",
		"material", id,
		"file", res.Filename,
		"pages", n,
		"logos", res.Stats.LogosLoaded,
		"duration", time.Since(began))
	return res, nil
}

func (r *Runner) loadLogos(ctx context.Context) []*assets.Image {
	if r.Assets == nil || len(r.Logos) == 0 {
		return nil
	}
	return r.Assets.LoadAll(ctx, r.Logos)
}

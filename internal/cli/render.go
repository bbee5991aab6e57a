package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/matzehuels/railreport/pkg/config"
	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
	"github.com/matzehuels/railreport/pkg/pipeline"
	"github.com/matzehuels/railreport/pkg/session"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	id      string   // material id to look up in the store
	output  string   // output file or directory
	logos   []string // header logo overrides, left to right
	noCache bool
	noQR    bool
}

func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render the PDF report for a material record",
		Long: `Render the PDF report for a material record.

The record is read from a JSON, YAML or TOML file, or looked up by --id in the
configured store (MongoDB or a records directory). The report is written to
<materialId>_Railway_Report.pdf unless --output names another file or an
existing directory.`,
		Example: `  railreport render records/XYZ0007.json
  railreport render --id XYZ0007 -o reports/
  railreport render rec.yaml --logo ir.png --logo "" --logo rdso.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var file string
			if len(args) == 1 {
				file = args[0]
			}
			if (file == "") == (opts.id == "") {
				return errors.New(errors.ErrCodeInvalidInput, "give either a record file or --id")
			}
			cfg, err := c.config()
			if err != nil {
				return err
			}
			applyRenderFlags(cfg, cmd, &opts)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, file, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.id, "id", "", "material id to look up in the configured store")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file or directory (default: <materialId>_Railway_Report.pdf)")
	cmd.Flags().StringArrayVar(&opts.logos, "logo", nil, "header logo path or URL; repeat up to 3 times, \"\" leaves a slot blank")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the logo cache")
	cmd.Flags().BoolVar(&opts.noQR, "no-qr", false, "omit the material id QR code")

	return cmd
}

func applyRenderFlags(cfg *config.Config, cmd *cobra.Command, opts *renderOpts) {
	if cmd.Flags().Changed("logo") {
		cfg.Assets.Logos = opts.logos
	}
	if opts.noCache {
		cfg.Cache.Disabled = true
	}
	if opts.noQR {
		off := false
		cfg.Report.QRCode = &off
	}
}

func (c *CLI) runRender(ctx context.Context, cfg *config.Config, file string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	var rec *material.Record
	if file != "" {
		if err := errors.ValidateRecordFilename(file); err != nil {
			return err
		}
		r, err := material.Load(file)
		if err != nil {
			return err
		}
		rec = r
	}

	runner, cleanup, err := c.newRunner(ctx, cfg, runnerOpts{store: rec == nil})
	if err != nil {
		return err
	}
	defer cleanup()

	label := opts.id
	if rec != nil {
		label = filepath.Base(file)
	}
	spin := c.startSpinner(ctx, "Rendering "+label)
	res, err := generate(ctx, runner, rec, opts.id)
	spin.Stop()
	if err != nil {
		return err
	}

	path, err := outputPath(opts.output, res.Filename)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	prog.done("Rendered " + res.Filename)
	printSuccess("Report written")
	printFile(path)
	printDetail("%d page(s) · report %s", res.Pages, res.ReportID)
	if missing := res.Stats.LogoSlots - res.Stats.LogosLoaded; missing > 0 && len(cfg.Assets.Logos) > 0 {
		printWarning("%d logo slot(s) left blank", missing)
	}
	return nil
}

func generate(ctx context.Context, runner *pipeline.Runner, rec *material.Record, id string) (*pipeline.Result, error) {
	sess := session.Local()
	if rec != nil {
		return runner.Render(ctx, sess, rec)
	}
	return runner.Generate(ctx, sess, id)
}

// outputPath resolves --output: empty means the default name in the working
// directory; an existing directory or a trailing separator receives the
// default name. The default name comes from record content, so it is
// flattened to a single path element first.
func outputPath(output, filename string) (string, error) {
	filename = flattenName(filename)
	if output == "" {
		return filename, nil
	}
	if strings.HasSuffix(output, string(os.PathSeparator)) || strings.HasSuffix(output, "/") {
		if err := os.MkdirAll(output, 0o755); err != nil {
			return "", err
		}
		return filepath.Join(output, filename), nil
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, filename), nil
	}
	return output, nil
}

var nameReplacer = strings.NewReplacer("/", "-", "\\", "-", "..", "-")

// flattenName turns separators and parent references into dashes so that
// ids like "ERC/2024/001" stay in the target directory.
func flattenName(name string) string {
	return nameReplacer.Replace(name)
}

// startSpinner shows a spinner on an interactive stderr at info level; it
// is a no-op otherwise so debug logs and pipes stay clean.
func (c *CLI) startSpinner(ctx context.Context, msg string) *Spinner {
	s := newSpinner(ctx, os.Stderr, msg)
	if c.Logger.GetLevel() != log.InfoLevel || !term.IsTerminal(os.Stderr.Fd()) {
		s.cancel()
		close(s.stopped)
		return s
	}
	s.Start()
	return s
}

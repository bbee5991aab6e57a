// Package cli implements the railreport command-line interface.
//
// # Commands
//
//   - render: write the PDF report for a record file or a stored material
//   - show: print a record in the report's section layout
//   - list: list the records in the configured store
//   - serve: run the HTTP download endpoint
//   - config: write a starter configuration file
//   - cache: inspect or clear the logo cache
//   - completion: generate shell completions
//
// Every command accepts --config to choose the TOML configuration file and
// --verbose for debug logging. A .env file in the working directory is
// loaded before RAILREPORT_* overrides are applied.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/railreport/pkg/assets"
	"github.com/matzehuels/railreport/pkg/buildinfo"
	"github.com/matzehuels/railreport/pkg/cache"
	"github.com/matzehuels/railreport/pkg/config"
	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/pipeline"
	"github.com/matzehuels/railreport/pkg/report"
	"github.com/matzehuels/railreport/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "railreport"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "railreport renders railway track-fitting material reports as PDF",
		Long:         `railreport turns a track-fitting material record (manufacture, depot entry, installation, maintenance) into a paginated PDF report, from a record file, a document store or over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/railreport/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads configuration once per process: file, then .env, then
// RAILREPORT_* variables.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	for _, k := range cfg.Unknown {
		c.Logger.Warn("unknown config key", "key", k)
	}
	c.cfg = cfg
	return cfg, nil
}

// runnerOpts selects what newRunner wires.
type runnerOpts struct {
	store bool // open the configured record store
	serve bool // long-running process; logos are cached in memory without Redis
}

// newRunner wires the configured store, logo loader and composer.
// The returned close function releases store and cache connections.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config, opts runnerOpts) (*pipeline.Runner, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var st store.Store
	if opts.store {
		s, err := c.newStore(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		st = s
		closers = append(closers, func() { _ = s.Close(context.Background()) })
	}

	ch, err := c.newCache(ctx, cfg, opts.serve)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() { _ = ch.Close() })

	loader := assets.NewLoader(
		assets.WithCache(ch, cache.NewKeyer(appName), cfg.Cache.TTL.Duration),
		assets.WithTimeout(cfg.Assets.Timeout.Duration),
		assets.WithRetry(cfg.Assets.Attempts, assets.DefaultRetryDelay),
		assets.WithMaxEdge(cfg.Assets.MaxEdge),
		assets.WithLogger(c.Logger),
	)
	runner := pipeline.NewRunner(st, loader, newComposer(cfg, c.Logger), cfg.Assets.Logos, c.Logger)
	return runner, cleanup, nil
}

func newComposer(cfg *config.Config, logger *log.Logger) *report.Composer {
	opts := []report.Option{report.WithLogger(logger)}
	if cfg.Report.Title != "" {
		opts = append(opts, report.WithTitle(cfg.Report.Title))
	}
	if cfg.Report.Authority != "" {
		opts = append(opts, report.WithAuthority(cfg.Report.Authority))
	}
	if cfg.Report.Disclaimer != "" {
		opts = append(opts, report.WithDisclaimer(cfg.Report.Disclaimer))
	}
	if cfg.Report.QRCode != nil && !*cfg.Report.QRCode {
		opts = append(opts, report.WithoutQRCode())
	}
	return report.NewComposer(opts...)
}

// newStore prefers MongoDB when a URI is configured, then a records
// directory.
func (c *CLI) newStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch {
	case cfg.Mongo.URI != "":
		c.Logger.Debug("using mongo store", "database", cfg.Mongo.Database, "collection", cfg.Mongo.Collection)
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	case cfg.Records.Dir != "":
		c.Logger.Debug("using records directory", "dir", cfg.Records.Dir)
		return store.NewDirStore(cfg.Records.Dir, c.Logger)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig,
			"no record store configured: set mongo.uri or records.dir (or RAILREPORT_MONGO_URI / RAILREPORT_RECORDS_DIR)")
	}
}

// newCache picks Redis when an address is configured. Otherwise a server
// keeps logos in memory and the one-shot commands use the file cache.
// A cache that cannot be opened degrades to no caching, or to memory for
// a server.
func (c *CLI) newCache(ctx context.Context, cfg *config.Config, serve bool) (cache.Cache, error) {
	if cfg.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err == nil {
			return rc, nil
		}
		if !serve {
			c.Logger.Warn("redis cache unavailable, caching disabled", "addr", cfg.Redis.Addr, "err", err)
			return cache.NewNullCache(), nil
		}
		c.Logger.Warn("redis cache unavailable, using in-memory cache", "addr", cfg.Redis.Addr, "err", err)
	}
	if serve {
		return cache.NewMemoryCache(), nil
	}
	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/railreport/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

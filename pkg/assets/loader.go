package assets

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/railreport/pkg/cache"
	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/httputil"
	"github.com/matzehuels/railreport/pkg/observability"
)

// Defaults for [Loader].
const (
	DefaultTimeout    = 5 * time.Second
	DefaultAttempts   = 1
	DefaultRetryDelay = 500 * time.Millisecond
)

// Loader fetches and normalises images. It is safe for concurrent use.
type Loader struct {
	cache      cache.Cache
	keyer      cache.Keyer
	ttl        time.Duration
	timeout    time.Duration
	attempts   int
	retryDelay time.Duration
	maxEdge    int
	client     *http.Client
	logger     *log.Logger
}

// Option configures a [Loader].
type Option func(*Loader)

// WithCache keeps normalised images in c for ttl.
func WithCache(c cache.Cache, keyer cache.Keyer, ttl time.Duration) Option {
	return func(l *Loader) {
		if c != nil {
			l.cache = c
		}
		l.keyer = keyer
		l.ttl = ttl
	}
}

// WithTimeout bounds a whole [Loader.LoadAll] batch.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithRetry sets HTTP fetch attempts and initial backoff.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(l *Loader) {
		l.attempts = max(attempts, 1)
		if delay > 0 {
			l.retryDelay = delay
		}
	}
}

// WithMaxEdge sets the normalisation bound in pixels.
func WithMaxEdge(px int) Option {
	return func(l *Loader) {
		if px > 0 {
			l.maxEdge = px
		}
	}
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithLogger sets the logger for non-fatal load failures.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader. Without options it does not cache, times out
// after 5s and makes a single attempt per source.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		cache:      cache.NewNullCache(),
		keyer:      cache.NewKeyer(""),
		ttl:        cache.TTLAsset,
		timeout:    DefaultTimeout,
		attempts:   DefaultAttempts,
		retryDelay: DefaultRetryDelay,
		maxEdge:    DefaultMaxEdge,
		client:     http.DefaultClient,
		logger:     log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadAll loads every source concurrently and waits for all of them, up to
// the loader timeout. The result has one entry per source; entries for empty
// sources and failed loads are nil. LoadAll never fails.
func (l *Loader) LoadAll(ctx context.Context, sources []string) []*Image {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	out := make([]*Image, len(sources))
	var g errgroup.Group
	for i, src := range sources {
		if strings.TrimSpace(src) == "" {
			continue
		}
		g.Go(func() error {
			img, err := l.Load(ctx, src)
			if err != nil {
				l.logger.Warn("logo unavailable, leaving slot blank", "source", src, "err", err)
				observability.Asset().OnAssetFailed(ctx, src, err)
				return nil
			}
			out[i] = img
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// Load fetches, normalises and caches a single source.
func (l *Loader) Load(ctx context.Context, source string) (*Image, error) {
	start := time.Now()
	key := l.keyer.AssetKey(source, cache.AssetKeyOpts{MaxEdge: l.maxEdge})

	if data, hit, err := l.cache.Get(ctx, key); err == nil && hit {
		if img, err := fromCachedPNG(source, data); err == nil {
			observability.Cache().OnCacheHit(ctx, "asset")
			observability.Asset().OnAssetLoaded(ctx, source, true, time.Since(start))
			return img, nil
		}
		_ = l.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "asset")

	raw, err := l.read(ctx, source)
	if err != nil {
		return nil, l.classify(ctx, source, err)
	}
	img, err := Normalize(source, raw, l.maxEdge)
	if err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, key, img.PNG, l.ttl); err != nil {
		l.logger.Debug("asset cache write failed", "source", source, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "asset", len(img.PNG))
	}
	observability.Asset().OnAssetLoaded(ctx, source, false, time.Since(start))
	return img, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return httputil.FetchWithRetry(ctx, l.client, source, l.attempts, l.retryDelay)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(source)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "asset %s", source)
	}
	return data, err
}

func (l *Loader) classify(ctx context.Context, source string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "asset %s", source)
	}
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeAssetUnavailable, err, "asset %s", source)
}

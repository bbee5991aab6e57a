package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/observability"
)

// DefaultMaxBytes caps a fetched body (logos are small).
const DefaultMaxBytes = 8 << 20

// Fetch performs a GET request and returns the body.
//
// Responses with status 5xx or 429 and transport errors are returned as
// [RetryableError]. Other non-2xx statuses are NETWORK_ERROR without the
// retry marker. Bodies larger than maxBytes are rejected.
func Fetch(ctx context.Context, client *http.Client, url string, maxBytes int64) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}
	if client == nil {
		client = http.DefaultClient
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", url)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := client.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return nil, Retryable(errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, resp.StatusCode))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url))
	}
	if int64(len(body)) > maxBytes {
		return nil, errors.New(errors.ErrCodeAssetUnavailable, "GET %s: body exceeds %d bytes", url, maxBytes)
	}
	return body, nil
}

// FetchWithRetry is [Fetch] under [Retry] with the given attempts and an
// initial delay of delay.
func FetchWithRetry(ctx context.Context, client *http.Client, url string, attempts int, delay time.Duration) ([]byte, error) {
	var body []byte
	err := Retry(ctx, attempts, delay, func() error {
		b, err := Fetch(ctx, client, url, 0)
		if err != nil {
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return body, nil
}

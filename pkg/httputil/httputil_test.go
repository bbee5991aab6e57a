package httputil

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/railreport/pkg/errors"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()
	errPlain := stderrors.New("plain")

	calls := 0
	if err := Retry(ctx, 3, time.Millisecond, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err %v calls %d", err, calls)
	}

	calls = 0
	if err := Retry(ctx, 3, time.Millisecond, func() error { calls++; return errPlain }); err != errPlain || calls != 1 {
		t.Errorf("non-retryable: err %v calls %d", err, calls)
	}

	calls = 0
	err := Retry(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return Retryable(errPlain)
		}
		return nil
	})
	if err != nil || calls != 3 {
		t.Errorf("retryable: err %v calls %d", err, calls)
	}

	calls = 0
	err = Retry(ctx, 2, time.Millisecond, func() error { calls++; return Retryable(errPlain) })
	if !stderrors.Is(err, errPlain) || calls != 2 {
		t.Errorf("exhausted: err %v calls %d", err, calls)
	}

	calls = 0
	if err := Retry(ctx, 0, time.Millisecond, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("zero attempts should still run once: err %v calls %d", err, calls)
	}
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, 3, time.Second, func() error { return Retryable(stderrors.New("x")) })
	if err != context.Canceled {
		t.Errorf("Retry on cancelled ctx = %v, want context.Canceled", err)
	}
}

func TestRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	base := stderrors.New("boom")
	err := Retryable(base)
	if !IsRetryable(err) || err.Error() != "boom" || !stderrors.Is(err, base) {
		t.Errorf("Retryable(base) = %v", err)
	}
	if IsRetryable(base) {
		t.Error("unwrapped error should not be retryable")
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("logo"))
		case "/missing":
			http.NotFound(w, r)
		case "/busy":
			w.WriteHeader(http.StatusServiceUnavailable)
		case "/big":
			w.Write(make([]byte, 64))
		}
	}))
	defer srv.Close()
	ctx := context.Background()

	body, err := Fetch(ctx, srv.Client(), srv.URL+"/ok", 0)
	if err != nil || string(body) != "logo" {
		t.Errorf("Fetch ok = %q, %v", body, err)
	}

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/missing", 0)
	if err == nil || IsRetryable(err) || !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("404 should be a non-retryable NETWORK_ERROR, got %v", err)
	}

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/busy", 0)
	if !IsRetryable(err) {
		t.Errorf("503 should be retryable, got %v", err)
	}

	_, err = Fetch(ctx, srv.Client(), srv.URL+"/big", 16)
	if !errors.Is(err, errors.ErrCodeAssetUnavailable) {
		t.Errorf("oversized body should be ASSET_UNAVAILABLE, got %v", err)
	}

	if _, err := Fetch(ctx, nil, "file:///etc/passwd", 0); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("non-http scheme should be rejected, got %v", err)
	}
}

func TestFetchWithRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := FetchWithRetry(context.Background(), srv.Client(), srv.URL, 2, time.Millisecond)
	if err != nil || string(body) != "ok" {
		t.Errorf("FetchWithRetry = %q, %v", body, err)
	}
	if hits.Load() != 2 {
		t.Errorf("server hit %d times, want 2", hits.Load())
	}
}

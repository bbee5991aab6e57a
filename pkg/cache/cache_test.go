package cache

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss with nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func testRoundTrip(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "logo", []byte("png-bytes"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "logo")
	if err != nil || !hit {
		t.Fatalf("Get(logo) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("Get(logo) = %q", data)
	}

	if err := c.Delete(ctx, "logo"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "logo"); hit {
		t.Error("entry should be gone after Delete")
	}
	if err := c.Delete(ctx, "logo"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func testExpiry(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()
	if err := c.Set(ctx, "short", []byte("x"), time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	testRoundTrip(t, c)
	testExpiry(t, c)

	_ = c.Set(context.Background(), "a", []byte("1"), 0)
	if c.Len() == 0 {
		t.Error("Len should count stored entries")
	}
	_ = c.Close()
	if c.Len() != 0 {
		t.Error("Close should drop entries")
	}
}

func TestMemoryCacheCopiesInput(t *testing.T) {
	c := NewMemoryCache()
	buf := []byte("abc")
	_ = c.Set(context.Background(), "k", buf, 0)
	buf[0] = 'z'
	got, _, _ := c.Get(context.Background(), "k")
	if string(got) != "abc" {
		t.Errorf("cached value changed with caller buffer: %q", got)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	testRoundTrip(t, c)
	testExpiry(t, c)
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = c.Set(ctx, "k", []byte("v"), 0)
	if err := os.WriteFile(c.path("k"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v err %v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("cache dir should remain: %v", err)
	}
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("RAILREPORT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("RAILREPORT_TEST_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), RedisConfig{Addr: addr})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	testRoundTrip(t, c)
}

func TestRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("NewRedisCache(unreachable) error = %v, want ErrNetwork", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKeyer(t *testing.T) {
	k := NewKeyer("")
	a := k.AssetKey("logos/left.png", AssetKeyOpts{MaxEdge: 512})
	if !strings.HasPrefix(a, "asset:") {
		t.Errorf("AssetKey should start with asset:, got %s", a)
	}
	if a == k.AssetKey("logos/left.png", AssetKeyOpts{MaxEdge: 256}) {
		t.Error("different normalisation options should produce different keys")
	}
	if a == k.AssetKey("logos/right.png", AssetKeyOpts{MaxEdge: 512}) {
		t.Error("different sources should produce different keys")
	}

	scoped := NewKeyer("depot-a:")
	if got := scoped.AssetKey("logos/left.png", AssetKeyOpts{MaxEdge: 512}); got != "depot-a:"+a {
		t.Errorf("prefixed key = %s, want %s", got, "depot-a:"+a)
	}
}

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/railreport/pkg/cache"
	"github.com/matzehuels/railreport/pkg/config"
	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
)

// isolate points config, cache and .env lookups at empty temp directories.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	for _, k := range []string{"RAILREPORT_MONGO_URI", "RAILREPORT_RECORDS_DIR", "RAILREPORT_REDIS_ADDR", "RAILREPORT_LOGOS"} {
		t.Setenv(k, "")
	}
}

func newTestCLI() *CLI {
	return New(io.Discard, log.InfoLevel)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI().RootCommand()
	want := map[string]bool{"render": false, "show": false, "list": false, "serve": false, "cache": false, "config": false, "completion": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestRenderCommandFromFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	recPath := filepath.Join(dir, "XYZ0007.yaml")
	body := "materialId: XYZ0007\nfittingType: Elastic Rail Clip\nfailureCount: 3\n"
	if err := os.WriteFile(recPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"render", recPath, "-o", dir, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "XYZ0007_Railway_Report.pdf"))
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
}

func TestRenderCommandFromRecordsDir(t *testing.T) {
	isolate(t)
	records := t.TempDir()
	if err := os.WriteFile(filepath.Join(records, "ABC1234.json"), []byte(`{"materialId":"ABC1234"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RAILREPORT_RECORDS_DIR", records)
	out := filepath.Join(t.TempDir(), "custom.pdf")

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"render", "--id", "ABC1234", "-o", out})
	if err := root.Execute(); err != nil {
		t.Fatalf("render --id error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("report not written to %s: %v", out, err)
	}
}

func TestRenderCommandFlattensSlashedID(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	recPath := filepath.Join(dir, "clip.json")
	if err := os.WriteFile(recPath, []byte(`{"materialId":"ERC/2024/001"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out") + string(os.PathSeparator)

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"render", recPath, "-o", out, "--no-cache"})
	if err := root.Execute(); err != nil {
		t.Fatalf("render error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "ERC-2024-001_Railway_Report.pdf")); err != nil {
		t.Errorf("report not written inside output dir: %v", err)
	}
}

func TestListCommand(t *testing.T) {
	isolate(t)
	records := t.TempDir()
	files := map[string]string{
		"XYZ0007.yaml": "materialId: XYZ0007\nfittingType: Elastic Rail Clip\ndepotCode: NDLS\ninstallationStatus: Installed\n",
		"ABC1234.json": `{"materialId":"ABC1234"}`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(records, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Setenv("RAILREPORT_RECORDS_DIR", records)

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		root := newTestCLI().RootCommand()
		root.SetOut(&buf)
		root.SetArgs([]string{"list"})
		if err := root.Execute(); err != nil {
			t.Fatalf("list error: %v", err)
		}
		out := buf.String()
		for _, want := range []string{"ABC1234", "XYZ0007", "Elastic Rail Clip", "NDLS", "Not set", "2 record(s)"} {
			if !strings.Contains(out, want) {
				t.Errorf("list output missing %q", want)
			}
		}
		if strings.Index(out, "ABC1234") > strings.Index(out, "XYZ0007") {
			t.Error("records not ordered by id")
		}
	})

	t.Run("json limit", func(t *testing.T) {
		var buf bytes.Buffer
		root := newTestCLI().RootCommand()
		root.SetOut(&buf)
		root.SetArgs([]string{"list", "--json", "--limit", "1"})
		if err := root.Execute(); err != nil {
			t.Fatalf("list --json error: %v", err)
		}
		var recs []material.Record
		if err := json.Unmarshal(buf.Bytes(), &recs); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(recs) != 1 || recs[0].MaterialID != "ABC1234" {
			t.Errorf("list --json --limit 1 = %+v", recs)
		}
	})
}

func TestFormatListingEmpty(t *testing.T) {
	if out := formatListing(nil); !strings.Contains(out, "No records found") {
		t.Errorf("formatListing(nil) = %q", out)
	}
}

func TestConfigInitCommand(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "railreport", "config.toml")

	root := newTestCLI().RootCommand()
	root.SetArgs([]string{"--config", path, "config", "init"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config init error: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(written config) error: %v", err)
	}
	if cfg.Assets.Timeout.Duration != config.DefaultAssetTimeout {
		t.Errorf("assets.timeout = %v, want %v", cfg.Assets.Timeout.Duration, config.DefaultAssetTimeout)
	}
	if len(cfg.Unknown) != 0 {
		t.Errorf("written config has unknown keys %v", cfg.Unknown)
	}

	root = newTestCLI().RootCommand()
	root.SetArgs([]string{"--config", path, "config", "init"})
	root.SetErr(io.Discard)
	if err := root.Execute(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("second init error = %v, want INVALID_INPUT", err)
	}

	root = newTestCLI().RootCommand()
	root.SetArgs([]string{"--config", path, "config", "init", "--force"})
	if err := root.Execute(); err != nil {
		t.Errorf("config init --force error: %v", err)
	}
}

func TestNewCache(t *testing.T) {
	isolate(t)
	ctx := context.Background()
	c := newTestCLI()

	cfg := config.Default()
	cfg.Cache.Dir = t.TempDir()

	tests := []struct {
		name  string
		redis string
		serve bool
		check func(cache.Cache) bool
	}{
		{"cli uses file cache", "", false, func(ch cache.Cache) bool { _, ok := ch.(*cache.FileCache); return ok }},
		{"server uses memory cache", "", true, func(ch cache.Cache) bool { _, ok := ch.(*cache.MemoryCache); return ok }},
		{"server falls back to memory", "127.0.0.1:1", true, func(ch cache.Cache) bool { _, ok := ch.(*cache.MemoryCache); return ok }},
		{"cli falls back to null", "127.0.0.1:1", false, func(ch cache.Cache) bool { _, ok := ch.(*cache.NullCache); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.Redis.Addr = tt.redis
			ch, err := c.newCache(ctx, cfg, tt.serve)
			if err != nil {
				t.Fatalf("newCache() error: %v", err)
			}
			defer ch.Close()
			if !tt.check(ch) {
				t.Errorf("newCache() = %T", ch)
			}
		})
	}
}

func TestRenderCommandArgs(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"neither file nor id", []string{"render"}, errors.ErrCodeInvalidInput},
		{"both file and id", []string{"render", "a.json", "--id", "X"}, errors.ErrCodeInvalidInput},
		{"bad extension", []string{"render", "record.csv"}, errors.ErrCodeInvalidFormat},
		{"id without store", []string{"render", "--id", "X"}, errors.ErrCodeInvalidConfig},
		{"too many logos", []string{"render", "a.json", "--logo", "1", "--logo", "2", "--logo", "3", "--logo", "4"}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newTestCLI().RootCommand()
			root.SetArgs(tt.args)
			root.SetErr(io.Discard)
			err := root.Execute()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestFormatRecord(t *testing.T) {
	rec := &material.Record{
		MaterialID:       "XYZ0007",
		FailureCount:     material.Int(3),
		MaintenanceNotes: strings.Repeat("pad renewed ", 12),
	}
	out := formatRecord(rec)

	for _, want := range []string{"XYZ0007", "Core Details", "Lifecycle / TMS", "Fault Count", "3", "Not set", "—"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatRecord output missing %q", want)
		}
	}
	core := strings.Index(out, "Core Details")
	life := strings.Index(out, "Lifecycle / TMS")
	if core > life {
		t.Error("sections out of order")
	}
}

func TestCompletionCommand(t *testing.T) {
	root := newTestCLI().RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"completion", "bash"})
	if err := root.Execute(); err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(buf.String(), "railreport") {
		t.Error("bash completion does not mention railreport")
	}
}

func TestCachePathCommandUsesConfig(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("RAILREPORT_CACHE_DIR", dir)

	c := newTestCLI()
	got, err := c.fileCacheDir()
	if err != nil {
		t.Fatalf("fileCacheDir() error: %v", err)
	}
	if got != dir {
		t.Errorf("fileCacheDir() = %q, want %q", got, dir)
	}
}

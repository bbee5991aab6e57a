package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", xdg)
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(xdg, appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		home, err := os.UserHomeDir()
		if err != nil {
			t.Skip("no home directory")
		}
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"default", "", "ABC1234_Railway_Report.pdf"},
		{"explicit file", filepath.Join(dir, "out.pdf"), filepath.Join(dir, "out.pdf")},
		{"existing dir", dir, filepath.Join(dir, "ABC1234_Railway_Report.pdf")},
		{"new dir", filepath.Join(dir, "reports") + "/", filepath.Join(dir, "reports", "ABC1234_Railway_Report.pdf")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputPath(tt.output, "ABC1234_Railway_Report.pdf")
			if err != nil {
				t.Fatalf("outputPath() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOutputPathFlattensRecordIDs(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		filename string
		want     string
	}{
		{"../../escape_Railway_Report.pdf", "----escape_Railway_Report.pdf"},
		{"ERC/2024/001_Railway_Report.pdf", "ERC-2024-001_Railway_Report.pdf"},
		{`ERC\2024_Railway_Report.pdf`, "ERC-2024_Railway_Report.pdf"},
		{"MATERIAL_Railway_Report.pdf", "MATERIAL_Railway_Report.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := outputPath(dir+string(os.PathSeparator), tt.filename)
			if err != nil {
				t.Fatalf("outputPath() error: %v", err)
			}
			if want := filepath.Join(dir, tt.want); got != want {
				t.Errorf("outputPath() = %q, want %q", got, want)
			}
			if filepath.Dir(got) != filepath.Clean(dir) {
				t.Errorf("outputPath() = %q escapes %q", got, dir)
			}
		})
	}
}

package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = old })

	if got := Template(); !strings.Contains(got, "version v9.9.9") {
		t.Errorf("Template() = %q", got)
	}
	if got := Get(); got.Version != "v9.9.9" || got.Commit != Commit {
		t.Errorf("Get() = %+v", got)
	}
}

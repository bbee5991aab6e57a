package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
)

// recordExts are tried in order when resolving an id to a file.
var recordExts = []string{".json", ".yaml", ".yml", ".toml"}

// DirStore reads records from files named "<materialId>.<ext>" in one
// directory.
type DirStore struct {
	dir    string
	logger *log.Logger
}

// NewDirStore opens dir, which must exist.
func NewDirStore(dir string, logger *log.Logger) (*DirStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "record directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &DirStore{dir: dir, logger: logger}, nil
}

// Get loads <materialID>.json, .yaml, .yml or .toml, in that order. A
// record without its own id takes the file name.
func (s *DirStore) Get(ctx context.Context, materialID string) (*material.Record, error) {
	id := strings.TrimSpace(materialID)
	if err := errors.ValidateMaterialID(id); err != nil {
		return nil, err
	}
	for _, ext := range recordExts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := material.Load(filepath.Join(s.dir, id+ext))
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if rec.ID() == "" {
			rec.MaterialID = id
		}
		return rec, nil
	}
	return nil, notFound(id)
}

// List loads every record file in the directory. Files that fail to decode
// are logged and skipped.
func (s *DirStore) List(ctx context.Context, limit int) ([]material.Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read %s", s.dir)
	}
	n := listLimit(limit)
	seen := make(map[string]bool)
	var out []material.Record
	for _, e := range entries {
		if e.IsDir() || errors.ValidateRecordFilename(e.Name()) != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := material.Load(filepath.Join(s.dir, e.Name()))
		if err != nil {
			s.logger.Warn("skipping record file", "file", e.Name(), "err", err)
			continue
		}
		if rec.ID() == "" {
			rec.MaterialID = strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		}
		if seen[rec.ID()] {
			continue
		}
		seen[rec.ID()] = true
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Close does nothing.
func (s *DirStore) Close(context.Context) error { return nil }


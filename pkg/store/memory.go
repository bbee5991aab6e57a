package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
)

// MemoryStore keeps records in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]material.Record
}

// NewMemoryStore returns a store seeded with recs.
func NewMemoryStore(recs ...material.Record) *MemoryStore {
	s := &MemoryStore{records: make(map[string]material.Record, len(recs))}
	for _, r := range recs {
		_ = s.Put(r)
	}
	return s
}

// Put inserts or replaces a record.
func (s *MemoryStore) Put(r material.Record) error {
	id := r.ID()
	if err := errors.ValidateMaterialID(id); err != nil {
		return err
	}
	s.mu.Lock()
	s.records[id] = r
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the stored record.
func (s *MemoryStore) Get(ctx context.Context, materialID string) (*material.Record, error) {
	id := strings.TrimSpace(materialID)
	if err := errors.ValidateMaterialID(id); err != nil {
		return nil, err
	}
	s.mu.RLock()
	r, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return &r, nil
}

// List returns copies of up to limit records ordered by id.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]material.Record, error) {
	s.mu.RLock()
	out := make([]material.Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// Close does nothing.
func (s *MemoryStore) Close(context.Context) error { return nil }

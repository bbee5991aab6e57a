// Package store looks up material records by id.
//
// Three backends share the [Store] interface: [MongoStore] for the portal's
// document database, [DirStore] for a directory of record files, and
// [MemoryStore] for tests and embedding. A missing record is always reported
// with [errors.ErrCodeMaterialNotFound].
package store

import (
	"context"

	"github.com/matzehuels/railreport/pkg/errors"
	"github.com/matzehuels/railreport/pkg/material"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 100

// Store is a read-only source of material records.
type Store interface {
	// Get returns the record with the given material id.
	Get(ctx context.Context, materialID string) (*material.Record, error)
	// List returns up to limit records ordered by material id.
	List(ctx context.Context, limit int) ([]material.Record, error)
	// Close releases backend resources.
	Close(ctx context.Context) error
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeMaterialNotFound, "material %q not found", id)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// Package store defines the narrow persistence interface for project
// records. Implementations live in the jsonfile and postgres subpackages.
package store

import (
	"context"
	"errors"

	"github.com/devfolio-labs/portfolio-backend/internal/projects/domain"
)

// ErrNotFound is returned when no record matches the requested id. It is
// distinct from storage failures so handlers can map it to a 404.
var ErrNotFound = errors.New("project not found")

// Store is the persistence contract for the project catalog. Records are
// kept in insertion order; callers reverse for newest-first presentation.
type Store interface {
	// List returns every record in insertion order. A store that has never
	// been written reads as empty, not as an error.
	List(ctx context.Context) ([]domain.Project, error)

	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, id int) (domain.Project, error)

	// Append assigns the next id (max existing + 1, starting at 1),
	// persists the record and returns it with the id set.
	Append(ctx context.Context, p domain.Project) (domain.Project, error)

	// Replace overwrites the record with the given id or returns
	// ErrNotFound. The record's id is preserved.
	Replace(ctx context.Context, id int, p domain.Project) (domain.Project, error)

	// Remove deletes and returns the record with the given id, or returns
	// ErrNotFound leaving the store untouched.
	Remove(ctx context.Context, id int) (domain.Project, error)
}

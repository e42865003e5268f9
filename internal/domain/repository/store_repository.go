// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"waitline/internal/domain/entity"
	"waitline/internal/errors"

	"github.com/google/uuid"
)

// ErrStoreNotFound is returned when no store matches the lookup.
var ErrStoreNotFound = errors.New("store not found")

// StoreRepository defines store-related database operations.
type StoreRepository interface {
	// Create persists a new store.
	Create(ctx context.Context, store *entity.Store) error

	// FindBySlug retrieves a store by its routing slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Store, error)

	// FindByID retrieves a store by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// LockByID retrieves a store and holds a row lock on it until the
	// surrounding transaction ends. Sequence allocation and call-next
	// serialize on this lock.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Store, error)

	// UpdateSettings persists the mutable settings of a store.
	UpdateSettings(ctx context.Context, store *entity.Store) error

	// SetNumberingReset records a manual sequence-number reset boundary.
	SetNumberingReset(ctx context.Context, id uuid.UUID, at time.Time) error
}

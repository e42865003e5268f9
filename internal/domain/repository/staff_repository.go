package repository

import (
	"context"

	"waitline/internal/domain/entity"
	"waitline/internal/errors"

	"github.com/google/uuid"
)

// Domain-specific errors for staff persistence.
var (
	// ErrStaffNotFound is returned when no staff account matches the lookup.
	ErrStaffNotFound = errors.New("staff account not found")
	// ErrAssignmentNotFound is returned when a staff member has no
	// assignment for the store.
	ErrAssignmentNotFound = errors.New("staff assignment not found")
)

// StaffRepository defines staff account and assignment persistence.
type StaffRepository interface {
	// FindAccountByEmail retrieves a staff account by login email.
	FindAccountByEmail(ctx context.Context, email string) (*entity.StaffAccount, error)

	// FindAccountByID retrieves a staff account by its unique ID.
	FindAccountByID(ctx context.Context, id uuid.UUID) (*entity.StaffAccount, error)

	// FindAssignment retrieves the staff member's assignment for one store.
	FindAssignment(ctx context.Context, staffID, storeID uuid.UUID) (*entity.StaffAssignment, error)
}

package usecase

import (
	"context"

	"waitline/internal/domain/entity"

	"github.com/google/uuid"
)

// LoginResult carries the issued session token and the account it belongs to.
type LoginResult struct {
	Token   string
	Account *entity.StaffAccount
}

// StaffAuthUsecase defines staff authentication and store authorization.
type StaffAuthUsecase interface {
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// Authenticate validates a session token and returns the staff account.
	Authenticate(ctx context.Context, token string) (*entity.StaffAccount, error)

	// Authorize checks the staff member's assignment for a store.
	Authorize(ctx context.Context, staffID, storeID uuid.UUID) (*entity.StaffAssignment, error)
}

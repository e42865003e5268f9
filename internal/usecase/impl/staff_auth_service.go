package impl

import (
	"context"
	"log/slog"

	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/domain/repository"
	"waitline/internal/domain/service"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type staffAuthService struct {
	staffRepo    repository.StaffRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// StaffAuthServiceParams holds dependencies for StaffAuthService, injected by Fx.
type StaffAuthServiceParams struct {
	fx.In

	StaffRepo    repository.StaffRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewStaffAuthService creates a new staff auth service instance
func NewStaffAuthService(params StaffAuthServiceParams) usecase.StaffAuthUsecase {
	return &staffAuthService{
		staffRepo:    params.StaffRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// Login verifies credentials and issues a session token.
func (s *staffAuthService) Login(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
	account, err := s.staffRepo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			// Same answer as a wrong password, so login probing cannot
			// tell registered emails apart.
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find staff account")
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := s.tokenService.IssueStaffToken(account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue staff token")
	}

	return &usecase.LoginResult{
		Token:   token,
		Account: account,
	}, nil
}

// Authenticate validates a session token and returns the staff account.
func (s *staffAuthService) Authenticate(ctx context.Context, token string) (*entity.StaffAccount, error) {
	staffID, err := s.tokenService.VerifyStaffToken(token)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	account, err := s.staffRepo.FindAccountByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}

		return nil, errors.Wrap(err, "failed to find staff account")
	}

	return account, nil
}

// Authorize checks the staff member's assignment for a store.
func (s *staffAuthService) Authorize(ctx context.Context, staffID, storeID uuid.UUID) (*entity.StaffAssignment, error) {
	assignment, err := s.staffRepo.FindAssignment(ctx, staffID, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return nil, domainerrors.ErrForbidden
		}

		return nil, errors.Wrap(err, "failed to find staff assignment")
	}

	return assignment, nil
}

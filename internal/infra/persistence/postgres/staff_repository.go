package postgres

import (
	"context"

	"waitline/internal/domain/entity"
	"waitline/internal/domain/repository"
	"waitline/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// staffRepository implements the repository.StaffRepository interface.
type staffRepository struct {
	db *gorm.DB
}

// NewStaffRepository is the constructor for staffRepository.
func NewStaffRepository(db *gorm.DB) repository.StaffRepository {
	return &staffRepository{
		db: db,
	}
}

// FindAccountByEmail retrieves a staff account by login email.
func (repo *staffRepository) FindAccountByEmail(ctx context.Context, email string) (*entity.StaffAccount, error) {
	var accountM model.StaffAccountModel

	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStaffNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff account by email")
	}

	return toStaffAccountDomain(&accountM), nil
}

// FindAccountByID retrieves a staff account by its unique ID.
func (repo *staffRepository) FindAccountByID(ctx context.Context, id uuid.UUID) (*entity.StaffAccount, error) {
	var accountM model.StaffAccountModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStaffNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff account by ID")
	}

	return toStaffAccountDomain(&accountM), nil
}

// FindAssignment retrieves the staff member's assignment for one store.
func (repo *staffRepository) FindAssignment(ctx context.Context, staffID, storeID uuid.UUID) (*entity.StaffAssignment, error) {
	var assignmentM model.StaffAssignmentModel

	if err := repo.db.WithContext(ctx).
		Where("staff_id = ? AND store_id = ?", staffID, storeID).
		First(&assignmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAssignmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find staff assignment")
	}

	return toStaffAssignmentDomain(&assignmentM), nil
}

// --- Mapper Functions ---

func toStaffAccountDomain(data *model.StaffAccountModel) *entity.StaffAccount {
	if data == nil {
		return nil
	}

	return &entity.StaffAccount{
		ID:           data.ID,
		Email:        data.Email,
		Name:         data.Name,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func toStaffAssignmentDomain(data *model.StaffAssignmentModel) *entity.StaffAssignment {
	if data == nil {
		return nil
	}

	return &entity.StaffAssignment{
		ID:        data.ID,
		StaffID:   data.StaffID,
		StoreID:   data.StoreID,
		Role:      entity.StaffRole(data.Role),
		CreatedAt: data.CreatedAt,
	}
}

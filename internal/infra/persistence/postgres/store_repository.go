package postgres

import (
	"context"
	"time"

	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/domain/repository"
	"waitline/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// storeRepository implements the repository.StoreRepository interface.
type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository is the constructor for storeRepository.
func NewStoreRepository(db *gorm.DB) repository.StoreRepository {
	return &storeRepository{
		db: db,
	}
}

// Create persists a new store.
func (repo *storeRepository) Create(ctx context.Context, store *entity.Store) error {
	storeM := fromStoreDomain(store)

	if err := repo.db.WithContext(ctx).Create(storeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("store slug is already taken")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required store information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create store")
	}

	// Update the entity with generated values
	store.ID = storeM.ID
	store.CreatedAt = storeM.CreatedAt
	store.UpdatedAt = storeM.UpdatedAt

	return nil
}

// FindBySlug retrieves a store by its routing slug.
func (repo *storeRepository) FindBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by slug")
	}

	return toStoreDomain(&storeM), nil
}

// FindByID retrieves a store by its unique ID.
func (repo *storeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by ID")
	}

	return toStoreDomain(&storeM), nil
}

// LockByID retrieves a store with SELECT ... FOR UPDATE. Callers must run it
// inside a transaction; the lock is released on commit or rollback.
func (repo *storeRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	var storeM model.StoreModel

	if err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&storeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to lock store")
	}

	return toStoreDomain(&storeM), nil
}

// UpdateSettings persists the mutable settings of a store.
func (repo *storeRepository) UpdateSettings(ctx context.Context, store *entity.Store) error {
	result := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", store.ID).
		Updates(map[string]any{
			"name":                        store.Name,
			"name_en":                     store.NameEn,
			"is_open":                     store.IsOpen,
			"notification_threshold_near": store.NotificationThresholdNear,
			"notification_threshold_next": store.NotificationThresholdNext,
			"skip_recovery_mode":          string(store.SkipRecoveryMode),
			"print_method":                string(store.PrintMethod),
			"timezone":                    store.Timezone,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update store settings")
	}

	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// SetNumberingReset records a manual sequence-number reset boundary.
func (repo *storeRepository) SetNumberingReset(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.StoreModel{}).
		Where("id = ?", id).
		Update("last_numbering_reset_at", at)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set numbering reset")
	}

	if result.RowsAffected == 0 {
		return repository.ErrStoreNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toStoreDomain converts a GORM StoreModel to a domain Store entity.
func toStoreDomain(data *model.StoreModel) *entity.Store {
	if data == nil {
		return nil
	}

	return &entity.Store{
		ID:                        data.ID,
		Slug:                      data.Slug,
		Name:                      data.Name,
		NameEn:                    data.NameEn,
		IsOpen:                    data.IsOpen,
		NotificationThresholdNear: data.NotificationThresholdNear,
		NotificationThresholdNext: data.NotificationThresholdNext,
		SkipRecoveryMode:          entity.SkipRecoveryMode(data.SkipRecoveryMode),
		PrintMethod:               entity.PrintMethod(data.PrintMethod),
		Timezone:                  data.Timezone,
		LastNumberingResetAt:      data.LastNumberingResetAt,
		CreatedAt:                 data.CreatedAt,
		UpdatedAt:                 data.UpdatedAt,
	}
}

// fromStoreDomain converts a domain Store entity to a GORM StoreModel.
func fromStoreDomain(data *entity.Store) *model.StoreModel {
	if data == nil {
		return nil
	}

	return &model.StoreModel{
		ID:                        data.ID,
		Slug:                      data.Slug,
		Name:                      data.Name,
		NameEn:                    data.NameEn,
		IsOpen:                    data.IsOpen,
		NotificationThresholdNear: data.NotificationThresholdNear,
		NotificationThresholdNext: data.NotificationThresholdNext,
		SkipRecoveryMode:          string(data.SkipRecoveryMode),
		PrintMethod:               string(data.PrintMethod),
		Timezone:                  data.Timezone,
		LastNumberingResetAt:      data.LastNumberingResetAt,
		CreatedAt:                 data.CreatedAt,
		UpdatedAt:                 data.UpdatedAt,
	}
}

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
)

// printJobRepository implements the repository.PrintJobRepository interface.
type printJobRepository struct {
	db *gorm.DB
}

// NewPrintJobRepository is the constructor for printJobRepository.
func NewPrintJobRepository(db *gorm.DB) repository.PrintJobRepository {
	return &printJobRepository{
		db: db,
	}
}

// Create persists a new pending print job.
func (repo *printJobRepository) Create(ctx context.Context, job *entity.PrintJob) error {
	jobM := fromPrintJobDomain(job)

	if err := repo.db.WithContext(ctx).Create(jobM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid ticket or store reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create print job")
	}

	// Update the entity with generated values
	job.ID = jobM.ID
	job.CreatedAt = jobM.CreatedAt

	return nil
}

// FindByID retrieves a print job by its unique ID.
func (repo *printJobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PrintJob, error) {
	var jobM model.PrintJobModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&jobM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPrintJobNotFound
		}

		return nil, errors.Wrap(err, "failed to find print job by ID")
	}

	return toPrintJobDomain(&jobM), nil
}

// UpdateStatus records the outcome of a dispatch attempt.
func (repo *printJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PrintJobStatus, errorMessage string, completedAt *time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PrintJobModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        string(status),
			"error_message": errorMessage,
			"completed_at":  completedAt,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update print job status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrPrintJobNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toPrintJobDomain converts a GORM PrintJobModel to a domain PrintJob entity.
func toPrintJobDomain(data *model.PrintJobModel) *entity.PrintJob {
	if data == nil {
		return nil
	}

	return &entity.PrintJob{
		ID:           data.ID,
		TicketID:     data.TicketID,
		StoreID:      data.StoreID,
		Status:       entity.PrintJobStatus(data.Status),
		ErrorMessage: data.ErrorMessage,
		CreatedAt:    data.CreatedAt,
		CompletedAt:  data.CompletedAt,
	}
}

// fromPrintJobDomain converts a domain PrintJob entity to a GORM PrintJobModel.
func fromPrintJobDomain(data *entity.PrintJob) *model.PrintJobModel {
	if data == nil {
		return nil
	}

	return &model.PrintJobModel{
		ID:           data.ID,
		TicketID:     data.TicketID,
		StoreID:      data.StoreID,
		Status:       string(data.Status),
		ErrorMessage: data.ErrorMessage,
		CreatedAt:    data.CreatedAt,
		CompletedAt:  data.CompletedAt,
	}
}

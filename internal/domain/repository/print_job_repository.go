package repository

import (
	"context"
	"time"

	"waitline/internal/domain/entity"
	"waitline/internal/errors"

	"github.com/google/uuid"
)

// ErrPrintJobNotFound is returned when no print job matches the lookup.
var ErrPrintJobNotFound = errors.New("print job not found")

// PrintJobRepository defines print-job persistence.
type PrintJobRepository interface {
	// Create persists a new pending print job.
	Create(ctx context.Context, job *entity.PrintJob) error

	// FindByID retrieves a print job by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PrintJob, error)

	// UpdateStatus records the outcome of a dispatch attempt.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PrintJobStatus, errorMessage string, completedAt *time.Time) error
}

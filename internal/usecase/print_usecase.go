package usecase

import (
	"context"

	"waitline/internal/domain/entity"

	"github.com/google/uuid"
)

// PrintUsecase tracks kiosk ticket print jobs and dispatches them.
type PrintUsecase interface {
	// PrintTicket records a print job for a kiosk ticket and dispatches it
	// to the store's printer, recording the outcome on the job.
	PrintTicket(ctx context.Context, store *entity.Store, ticket *entity.Ticket) (*entity.PrintJob, error)

	// RetryPrintJob re-dispatches a failed print job.
	RetryPrintJob(ctx context.Context, jobID uuid.UUID) (*entity.PrintJob, error)
}

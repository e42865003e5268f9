package impl

import (
	"context"
	"log/slog"
	"time"

	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/domain/repository"
	"waitline/internal/domain/service"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type printService struct {
	printJobRepo repository.PrintJobRepository
	ticketRepo   repository.TicketRepository
	storeRepo    repository.StoreRepository
	printer      service.TicketPrinter
	logger       *slog.Logger
}

// PrintServiceParams holds dependencies for PrintService, injected by Fx.
type PrintServiceParams struct {
	fx.In

	PrintJobRepo repository.PrintJobRepository
	TicketRepo   repository.TicketRepository
	StoreRepo    repository.StoreRepository
	Printer      service.TicketPrinter
	Logger       *slog.Logger
}

// NewPrintService creates a new print service instance
func NewPrintService(params PrintServiceParams) usecase.PrintUsecase {
	return &printService{
		printJobRepo: params.PrintJobRepo,
		ticketRepo:   params.TicketRepo,
		storeRepo:    params.StoreRepo,
		printer:      params.Printer,
		logger:       params.Logger,
	}
}

// PrintTicket records a print job for a kiosk ticket and dispatches it.
func (s *printService) PrintTicket(ctx context.Context, store *entity.Store, ticket *entity.Ticket) (*entity.PrintJob, error) {
	job := entity.NewPrintJob(ticket.ID, store.ID, time.Now())

	if err := s.printJobRepo.Create(ctx, job); err != nil {
		return nil, errors.Wrap(err, "failed to record print job")
	}

	s.dispatch(ctx, job, store, ticket)

	return job, nil
}

// RetryPrintJob re-dispatches a failed print job. Jobs in any other state
// are rejected so a completed ticket is not printed twice.
func (s *printService) RetryPrintJob(ctx context.Context, jobID uuid.UUID) (*entity.PrintJob, error) {
	job, err := s.printJobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrPrintJobNotFound) {
			return nil, domainerrors.ErrPrintJobNotFound
		}

		return nil, errors.Wrap(err, "failed to find print job")
	}

	if job.Status != entity.PrintJobFailed {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("only failed print jobs can be retried")
	}

	ticket, err := s.ticketRepo.FindByID(ctx, job.TicketID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find print job's ticket")
	}

	store, err := s.storeRepo.FindByID(ctx, job.StoreID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find print job's store")
	}

	s.dispatch(ctx, job, store, ticket)

	return job, nil
}

// dispatch sends the ticket to the printer and records the outcome on the
// job. Bridge acceptance only advances the job to sent; printed is reserved
// for content that reached a printer.
func (s *printService) dispatch(ctx context.Context, job *entity.PrintJob, store *entity.Store, ticket *entity.Ticket) {
	outcome, printErr := s.printer.Print(ctx, store, ticket)

	if printErr != nil {
		job.Status = entity.PrintJobFailed
		job.ErrorMessage = printErr.Error()
		job.CompletedAt = nil

		s.logger.WarnContext(ctx, "print dispatch failed",
			slog.String("jobId", job.ID.String()),
			slog.String("ticketId", ticket.ID.String()),
			slog.String("error", printErr.Error()),
		)
	} else {
		job.Status = outcome
		job.ErrorMessage = ""
		job.CompletedAt = nil
		if outcome == entity.PrintJobPrinted {
			now := time.Now()
			job.CompletedAt = &now
		}
	}

	if err := s.printJobRepo.UpdateStatus(ctx, job.ID, job.Status, job.ErrorMessage, job.CompletedAt); err != nil {
		s.logger.ErrorContext(ctx, "failed to record print job outcome",
			slog.String("jobId", job.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}

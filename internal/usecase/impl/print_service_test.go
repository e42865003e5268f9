package impl

import (
	"context"
	"testing"
	"time"

	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/domain/repository"
	"waitline/internal/mocks"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type printFixture struct {
	printJobRepo *mocks.PrintJobRepositoryMock
	ticketRepo   *mocks.TicketRepositoryMock
	storeRepo    *mocks.StoreRepositoryMock
	printer      *mocks.TicketPrinterMock
	service      usecase.PrintUsecase
}

func newPrintFixture() *printFixture {
	f := &printFixture{
		printJobRepo: mocks.NewPrintJobRepositoryMock(),
		ticketRepo:   mocks.NewTicketRepositoryMock(),
		storeRepo:    mocks.NewStoreRepositoryMock(),
		printer:      mocks.NewTicketPrinterMock(),
	}

	f.service = NewPrintService(PrintServiceParams{
		PrintJobRepo: f.printJobRepo,
		TicketRepo:   f.ticketRepo,
		StoreRepo:    f.storeRepo,
		Printer:      f.printer,
		Logger:       testLogger(),
	})

	return f
}

func TestPrintTicket_BridgeAcceptanceMarksSent(t *testing.T) {
	f := newPrintFixture()
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 1, entity.SourceKiosk, time.Now())

	f.printJobRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.PrintJob")).Return(nil)
	f.printer.On("Print", mock.Anything, store, ticket).Return(entity.PrintJobSent, nil)
	f.printJobRepo.On("UpdateStatus", mock.Anything, mock.Anything, entity.PrintJobSent, "", (*time.Time)(nil)).Return(nil)

	job, err := f.service.PrintTicket(context.Background(), store, ticket)
	require.NoError(t, err)

	// The bridge prints asynchronously, so acceptance is not a finished job.
	assert.Equal(t, entity.PrintJobSent, job.Status)
	assert.Empty(t, job.ErrorMessage)
	assert.Nil(t, job.CompletedAt)
}

func TestPrintTicket_DirectPrintMarksPrinted(t *testing.T) {
	f := newPrintFixture()
	store := openStore()
	store.PrintMethod = entity.PrintMethodDirect
	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 1, entity.SourceKiosk, time.Now())

	f.printJobRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.PrintJob")).Return(nil)
	f.printer.On("Print", mock.Anything, store, ticket).Return(entity.PrintJobPrinted, nil)
	f.printJobRepo.On("UpdateStatus", mock.Anything, mock.Anything, entity.PrintJobPrinted, "", mock.AnythingOfType("*time.Time")).Return(nil)

	job, err := f.service.PrintTicket(context.Background(), store, ticket)
	require.NoError(t, err)

	assert.Equal(t, entity.PrintJobPrinted, job.Status)
	assert.Empty(t, job.ErrorMessage)
	assert.NotNil(t, job.CompletedAt)
}

func TestPrintTicket_PrinterFailureRecordedOnJob(t *testing.T) {
	f := newPrintFixture()
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 1, entity.SourceKiosk, time.Now())

	f.printJobRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.PrintJob")).Return(nil)
	f.printer.On("Print", mock.Anything, store, ticket).Return(entity.PrintJobFailed, assert.AnError)
	f.printJobRepo.On("UpdateStatus", mock.Anything, mock.Anything, entity.PrintJobFailed, assert.AnError.Error(), (*time.Time)(nil)).Return(nil)

	job, err := f.service.PrintTicket(context.Background(), store, ticket)
	require.NoError(t, err)

	assert.Equal(t, entity.PrintJobFailed, job.Status)
	assert.Equal(t, assert.AnError.Error(), job.ErrorMessage)
	assert.Nil(t, job.CompletedAt)
}

func TestRetryPrintJob(t *testing.T) {
	f := newPrintFixture()
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 1, entity.SourceKiosk, time.Now())

	job := entity.NewPrintJob(ticket.ID, store.ID, time.Now())
	job.Status = entity.PrintJobFailed
	job.ErrorMessage = "printer offline"

	f.printJobRepo.On("FindByID", mock.Anything, job.ID).Return(job, nil)
	f.ticketRepo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)
	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.printer.On("Print", mock.Anything, store, ticket).Return(entity.PrintJobPrinted, nil)
	f.printJobRepo.On("UpdateStatus", mock.Anything, job.ID, entity.PrintJobPrinted, "", mock.AnythingOfType("*time.Time")).Return(nil)

	retried, err := f.service.RetryPrintJob(context.Background(), job.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.PrintJobPrinted, retried.Status)
	assert.Empty(t, retried.ErrorMessage)
}

func TestRetryPrintJob_RejectsNonFailedJob(t *testing.T) {
	f := newPrintFixture()
	store := openStore()

	job := entity.NewPrintJob(uuid.New(), store.ID, time.Now())
	job.Status = entity.PrintJobSent

	f.printJobRepo.On("FindByID", mock.Anything, job.ID).Return(job, nil)

	_, err := f.service.RetryPrintJob(context.Background(), job.ID)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	f.printer.AssertNotCalled(t, "Print", mock.Anything, mock.Anything, mock.Anything)
}

func TestRetryPrintJob_UnknownJob(t *testing.T) {
	f := newPrintFixture()
	jobID := uuid.New()

	f.printJobRepo.On("FindByID", mock.Anything, jobID).Return(nil, repository.ErrPrintJobNotFound)

	_, err := f.service.RetryPrintJob(context.Background(), jobID)
	assert.ErrorIs(t, err, domainerrors.ErrPrintJobNotFound)
	f.printer.AssertNotCalled(t, "Print", mock.Anything, mock.Anything, mock.Anything)
}

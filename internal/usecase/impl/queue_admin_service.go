package impl

import (
	"context"
	"log/slog"
	"time"

	"waitline/config"
	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/domain/queue"
	"waitline/internal/domain/repository"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type queueAdminService struct {
	txManager      repository.TransactionManager
	storeRepo      repository.StoreRepository
	ticketRepo     repository.TicketRepository
	notificationUC usecase.NotificationUsecase
	config         *config.Config
	logger         *slog.Logger
}

// QueueAdminServiceParams holds dependencies for QueueAdminService, injected by Fx.
type QueueAdminServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	StoreRepo      repository.StoreRepository
	TicketRepo     repository.TicketRepository
	NotificationUC usecase.NotificationUsecase
	Config         *config.Config
	Logger         *slog.Logger
}

// NewQueueAdminService creates a new queue admin service instance
func NewQueueAdminService(params QueueAdminServiceParams) usecase.QueueAdminUsecase {
	return &queueAdminService{
		txManager:      params.TxManager,
		storeRepo:      params.StoreRepo,
		ticketRepo:     params.TicketRepo,
		notificationUC: params.NotificationUC,
		config:         params.Config,
		logger:         params.Logger,
	}
}

// ListTickets returns all of a store's tickets for the dashboard.
func (s *queueAdminService) ListTickets(ctx context.Context, storeID uuid.UUID) ([]*usecase.StaffTicket, error) {
	tickets, err := s.ticketRepo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store tickets")
	}

	now := time.Now()
	staffTickets := make([]*usecase.StaffTicket, 0, len(tickets))
	for _, ticket := range tickets {
		staffTickets = append(staffTickets, &usecase.StaffTicket{
			Ticket:      ticket,
			Number:      ticket.DisplayNumber(),
			WaitMinutes: waitMinutes(ticket, now),
		})
	}

	return staffTickets, nil
}

// CallNext calls the longest-waiting ticket in the queue.
func (s *queueAdminService) CallNext(ctx context.Context, storeID uuid.UUID) (*entity.Ticket, error) {
	store, err := s.findOpenStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var ticket *entity.Ticket

	// Reading the head and flipping it to CALLED happens under the store
	// row lock. At read committed isolation two staff devices can otherwise
	// both read the same head before either commits.
	err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		txStoreRepo := f.NewStoreRepository()
		txTicketRepo := f.NewTicketRepository()

		if _, lockErr := txStoreRepo.LockByID(ctx, store.ID); lockErr != nil {
			return lockErr
		}

		waiting, listErr := txTicketRepo.ListByStatus(ctx, store.ID, entity.StatusWaiting)
		if listErr != nil {
			return listErr
		}
		if len(waiting) == 0 {
			return domainerrors.ErrNoWaitingTickets
		}

		ticket = waiting[0]
		if transErr := ticket.TransitionTo(entity.StatusCalled, now); transErr != nil {
			return transErr
		}

		return txTicketRepo.Update(ctx, ticket)
	})
	if err != nil {
		return nil, err
	}

	s.evaluateQueue(ctx, store.ID)

	return ticket, nil
}

// CallTicket calls one specific waiting ticket.
func (s *queueAdminService) CallTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error) {
	store, err := s.findOpenStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.findStoreTicket(ctx, store.ID, ticketID)
	if err != nil {
		return nil, err
	}

	if err := ticket.TransitionTo(entity.StatusCalled, time.Now()); err != nil {
		return nil, domainerrors.ErrInvalidTransition
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, errors.Wrap(err, "failed to call ticket")
	}

	s.evaluateQueue(ctx, store.ID)

	return ticket, nil
}

// SeatTicket marks a called ticket as seated.
func (s *queueAdminService) SeatTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.findStoreTicket(ctx, storeID, ticketID)
	if err != nil {
		return nil, err
	}

	if err := ticket.TransitionTo(entity.StatusSeated, time.Now()); err != nil {
		return nil, domainerrors.ErrOnlyCalledSeated
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, errors.Wrap(err, "failed to seat ticket")
	}

	s.evaluateQueue(ctx, storeID)

	return ticket, nil
}

// SkipTicket skips a called ticket that did not show up, applying the
// store's skip recovery policy.
func (s *queueAdminService) SkipTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error) {
	store, err := s.findStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	ticket, err := s.findStoreTicket(ctx, store.ID, ticketID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := ticket.TransitionTo(entity.StatusSkipped, now); err != nil {
		return nil, domainerrors.ErrOnlyCalledSkipped
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, errors.Wrap(err, "failed to skip ticket")
	}

	if err := s.applySkipRecovery(ctx, store, ticket, now); err != nil {
		return nil, err
	}

	if notifyErr := s.notificationUC.NotifySkipped(ctx, store, ticket); notifyErr != nil {
		s.logger.WarnContext(ctx, "skip notification failed",
			slog.String("ticketId", ticket.ID.String()),
			slog.String("error", notifyErr.Error()),
		)
	}

	s.evaluateQueue(ctx, store.ID)

	return ticket, nil
}

// CancelTicket cancels a ticket on the guest's behalf.
func (s *queueAdminService) CancelTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.findStoreTicket(ctx, storeID, ticketID)
	if err != nil {
		return nil, err
	}

	if err := ticket.TransitionTo(entity.StatusCancelled, time.Now()); err != nil {
		return nil, domainerrors.ErrCannotCancel
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, errors.Wrap(err, "failed to cancel ticket")
	}

	s.evaluateQueue(ctx, storeID)

	return ticket, nil
}

// applySkipRecovery re-queues the skipped ticket when the store's policy
// asks for it.
func (s *queueAdminService) applySkipRecovery(ctx context.Context, store *entity.Store, ticket *entity.Ticket, now time.Time) error {
	waiting, err := s.ticketRepo.ListByStatus(ctx, store.ID, entity.StatusWaiting)
	if err != nil {
		return errors.Wrap(err, "failed to list waiting tickets for skip recovery")
	}

	offset := queue.DefaultNearRecoveryOffset
	if s.config.Queue != nil && s.config.Queue.NearRecoveryOffset > 0 {
		offset = s.config.Queue.NearRecoveryOffset
	}

	decision := queue.ResolveSkip(store.SkipRecoveryMode, waiting, offset, now)
	if !decision.Requeue {
		return nil
	}

	if err := ticket.TransitionTo(entity.StatusWaiting, now); err != nil {
		return errors.Wrap(err, "failed to requeue skipped ticket")
	}
	ticket.QueuedAt = decision.QueuedAt

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return errors.Wrap(err, "failed to persist requeued ticket")
	}

	return nil
}

func (s *queueAdminService) findStore(ctx context.Context, storeID uuid.UUID) (*entity.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	return store, nil
}

func (s *queueAdminService) findOpenStore(ctx context.Context, storeID uuid.UUID) (*entity.Store, error) {
	store, err := s.findStore(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if !store.IsOpen {
		return nil, domainerrors.ErrStoreClosed
	}

	return store, nil
}

func (s *queueAdminService) findStoreTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, domainerrors.ErrTicketNotFound
		}

		return nil, errors.Wrap(err, "failed to find ticket")
	}

	// Tickets are only reachable through the store they belong to.
	if ticket.StoreID != storeID {
		return nil, domainerrors.ErrTicketNotFound
	}

	return ticket, nil
}

func (s *queueAdminService) evaluateQueue(ctx context.Context, storeID uuid.UUID) {
	if err := s.notificationUC.EvaluateStore(ctx, storeID); err != nil {
		s.logger.WarnContext(ctx, "queue notification evaluation failed",
			slog.String("storeId", storeID.String()),
			slog.String("error", err.Error()),
		)
	}
}

// waitMinutes measures from registration, not the current queue slot, so a
// skip-recovery requeue does not reset the displayed wait.
func waitMinutes(ticket *entity.Ticket, now time.Time) int {
	end := now
	if completed := ticket.CompletedAt(); completed != nil {
		end = *completed
	}

	minutes := int(end.Sub(ticket.CreatedAt).Minutes())
	if minutes < 0 {
		return 0
	}

	return minutes
}

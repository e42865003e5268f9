// Package impl contains the concrete implementations of the use case layer.
package impl

import (
	"context"
	"log/slog"
	"strings"
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

type ticketService struct {
	txManager      repository.TransactionManager
	storeRepo      repository.StoreRepository
	ticketRepo     repository.TicketRepository
	pushSubRepo    repository.PushSubscriptionRepository
	printUsecase   usecase.PrintUsecase
	notificationUC usecase.NotificationUsecase
	config         *config.Config
	logger         *slog.Logger
}

// TicketServiceParams holds dependencies for TicketService, injected by Fx.
type TicketServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	StoreRepo      repository.StoreRepository
	TicketRepo     repository.TicketRepository
	PushSubRepo    repository.PushSubscriptionRepository
	PrintUsecase   usecase.PrintUsecase
	NotificationUC usecase.NotificationUsecase
	Config         *config.Config
	Logger         *slog.Logger
}

// NewTicketService creates a new ticket service instance
func NewTicketService(params TicketServiceParams) usecase.TicketUsecase {
	return &ticketService{
		txManager:      params.TxManager,
		storeRepo:      params.StoreRepo,
		ticketRepo:     params.TicketRepo,
		pushSubRepo:    params.PushSubRepo,
		printUsecase:   params.PrintUsecase,
		notificationUC: params.NotificationUC,
		config:         params.Config,
		logger:         params.Logger,
	}
}

func (s *ticketService) defaultTimezone() string {
	if s.config != nil && s.config.Queue != nil {
		return s.config.Queue.DefaultTimezone
	}

	return ""
}

// CreateTicket registers a guest at the end of a store's queue.
func (s *ticketService) CreateTicket(ctx context.Context, input *usecase.CreateTicketInput) (*usecase.TicketView, error) {
	store, err := s.storeRepo.FindBySlug(ctx, input.StoreSlug)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by slug")
	}

	if !store.IsOpen {
		return nil, domainerrors.ErrStoreClosed
	}

	if strings.TrimSpace(input.GuestName) == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("guest name must not be empty")
	}
	if input.PartySize < 1 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("party size must be at least 1")
	}
	if !input.Source.Valid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown ticket source")
	}

	now := time.Now()
	var ticket *entity.Ticket

	// Sequence allocation holds the store row lock while counting the
	// current epoch and inserting. Without it, two transactions at read
	// committed isolation can both see the same count and issue duplicate
	// numbers.
	err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		txStoreRepo := f.NewStoreRepository()
		txTicketRepo := f.NewTicketRepository()

		if _, lockErr := txStoreRepo.LockByID(ctx, store.ID); lockErr != nil {
			return lockErr
		}

		epochStart := queue.EpochStart(now, store.Location(s.defaultTimezone()), store.LastNumberingResetAt)
		created, countErr := txTicketRepo.CountCreatedSince(ctx, store.ID, epochStart)
		if countErr != nil {
			return countErr
		}

		ticket = entity.NewTicket(store.ID, uuid.NewString(), input.GuestName, input.PartySize, queue.NextSequence(created), input.Source, now)

		return txTicketRepo.Create(ctx, ticket)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ticket")
	}

	// Kiosk tickets get a paper stub. Print failures are recorded on the
	// job and never block registration.
	if input.Source == entity.SourceKiosk {
		if _, printErr := s.printUsecase.PrintTicket(ctx, store, ticket); printErr != nil {
			s.logger.WarnContext(ctx, "kiosk ticket print failed",
				slog.String("ticketId", ticket.ID.String()),
				slog.String("error", printErr.Error()),
			)
		}
	}

	return s.buildTicketView(ctx, store, ticket)
}

// GetTicket returns the live view for a guest's ticket token. Guest polls
// double as the notification trigger; there is no background scheduler.
func (s *ticketService) GetTicket(ctx context.Context, token string) (*usecase.TicketView, error) {
	ticket, store, err := s.findTicketWithStore(ctx, token)
	if err != nil {
		return nil, err
	}

	if evalErr := s.notificationUC.EvaluateStore(ctx, store.ID); evalErr != nil {
		s.logger.WarnContext(ctx, "queue notification evaluation failed",
			slog.String("storeId", store.ID.String()),
			slog.String("error", evalErr.Error()),
		)
	}

	return s.buildTicketView(ctx, store, ticket)
}

// CancelTicket withdraws the guest's own ticket.
func (s *ticketService) CancelTicket(ctx context.Context, token string) (*usecase.TicketView, error) {
	ticket, store, err := s.findTicketWithStore(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := ticket.TransitionTo(entity.StatusCancelled, time.Now()); err != nil {
		return nil, domainerrors.ErrCannotCancel
	}

	if err := s.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, errors.Wrap(err, "failed to cancel ticket")
	}

	// Everyone behind just moved up one spot.
	if err := s.notificationUC.EvaluateStore(ctx, store.ID); err != nil {
		s.logger.WarnContext(ctx, "queue notification evaluation failed",
			slog.String("storeId", store.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return s.buildTicketView(ctx, store, ticket)
}

// RegisterPushSubscription stores a browser push subscription for a ticket.
func (s *ticketService) RegisterPushSubscription(ctx context.Context, token string, input *usecase.PushSubscriptionInput) error {
	if input.Endpoint == "" || input.P256dh == "" || input.Auth == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("push subscription keys are incomplete")
	}

	ticket, _, err := s.findTicketWithStore(ctx, token)
	if err != nil {
		return err
	}

	sub := &entity.PushSubscription{
		ID:        uuid.New(),
		TicketID:  ticket.ID,
		Endpoint:  input.Endpoint,
		P256dh:    input.P256dh,
		Auth:      input.Auth,
		CreatedAt: time.Now(),
	}

	if err := s.pushSubRepo.Create(ctx, sub); err != nil {
		return errors.Wrap(err, "failed to register push subscription")
	}

	return nil
}

func (s *ticketService) findTicketWithStore(ctx context.Context, token string) (*entity.Ticket, *entity.Store, error) {
	ticket, err := s.ticketRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTicketNotFound) {
			return nil, nil, domainerrors.ErrTicketNotFound
		}

		return nil, nil, errors.Wrap(err, "failed to find ticket by token")
	}

	store, err := s.storeRepo.FindByID(ctx, ticket.StoreID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to find ticket's store")
	}

	return ticket, store, nil
}

func (s *ticketService) buildTicketView(ctx context.Context, store *entity.Store, ticket *entity.Ticket) (*usecase.TicketView, error) {
	waiting, err := s.ticketRepo.ListByStatus(ctx, store.ID, entity.StatusWaiting)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list waiting tickets")
	}

	called, err := s.ticketRepo.ListByStatus(ctx, store.ID, entity.StatusCalled)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list called tickets")
	}

	view := &usecase.TicketView{
		Token:          ticket.Token,
		Number:         ticket.DisplayNumber(),
		SequenceNumber: ticket.SequenceNumber,
		Status:         string(ticket.Status),
		GuestName:      ticket.GuestName,
		PartySize:      ticket.PartySize,
		GroupsAhead:    queue.GroupsAhead(waiting, ticket.ID),
		StoreSlug:      store.Slug,
		StoreName:      store.Name,
		QueuedAt:       ticket.QueuedAt,
		CalledAt:       ticket.CalledAt,
		CreatedAt:      ticket.CreatedAt,
	}

	if calling := queue.CurrentlyCalling(called); calling != nil {
		view.CallingNumber = calling.DisplayNumber()
	}

	return view, nil
}

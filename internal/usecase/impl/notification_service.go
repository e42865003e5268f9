package impl

import (
	"context"
	"fmt"
	"log/slog"

	"waitline/internal/domain/entity"
	"waitline/internal/domain/repository"
	"waitline/internal/domain/service"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type notificationService struct {
	storeRepo   repository.StoreRepository
	ticketRepo  repository.TicketRepository
	pushSubRepo repository.PushSubscriptionRepository
	pushSender  service.PushSender
	logger      *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	StoreRepo   repository.StoreRepository
	TicketRepo  repository.TicketRepository
	PushSubRepo repository.PushSubscriptionRepository
	PushSender  service.PushSender
	Logger      *slog.Logger
}

// NewNotificationService creates a new notification service instance
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		storeRepo:   params.StoreRepo,
		ticketRepo:  params.TicketRepo,
		pushSubRepo: params.PushSubRepo,
		pushSender:  params.PushSender,
		logger:      params.Logger,
	}
}

// EvaluateStore walks the waiting queue and delivers threshold alerts.
func (s *notificationService) EvaluateStore(ctx context.Context, storeID uuid.UUID) error {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return errors.Wrap(err, "failed to find store for notification evaluation")
	}

	waiting, err := s.ticketRepo.ListByStatus(ctx, storeID, entity.StatusWaiting)
	if err != nil {
		return errors.Wrap(err, "failed to list waiting tickets")
	}

	for ahead, ticket := range waiting {
		// "You're next" outranks "almost your turn"; each fires at most
		// once per ticket and the flag survives skips and requeues.
		switch {
		case ahead <= store.NotificationThresholdNext && !ticket.NotifiedNext:
			msg := &service.PushMessage{
				Title:              store.Name,
				Body:               fmt.Sprintf("%s - You're next! Please come to the entrance.", ticket.DisplayNumber()),
				Tag:                "queue-next",
				RequireInteraction: true,
				Data:               map[string]string{"ticket": ticket.Token},
			}
			if s.deliver(ctx, ticket, msg) {
				if markErr := s.ticketRepo.MarkNotifiedNext(ctx, ticket.ID); markErr != nil {
					s.logger.ErrorContext(ctx, "failed to mark next notification",
						slog.String("ticketId", ticket.ID.String()),
						slog.String("error", markErr.Error()),
					)
				}
			}
		case ahead <= store.NotificationThresholdNear && !ticket.NotifiedNear:
			msg := &service.PushMessage{
				Title: store.Name,
				Body:  fmt.Sprintf("%s - Almost your turn. %d groups ahead of you.", ticket.DisplayNumber(), ahead),
				Tag:   "queue-near",
				Data:  map[string]string{"ticket": ticket.Token},
			}
			if s.deliver(ctx, ticket, msg) {
				if markErr := s.ticketRepo.MarkNotifiedNear(ctx, ticket.ID); markErr != nil {
					s.logger.ErrorContext(ctx, "failed to mark near notification",
						slog.String("ticketId", ticket.ID.String()),
						slog.String("error", markErr.Error()),
					)
				}
			}
		}
	}

	return nil
}

// NotifySkipped tells a guest their ticket was skipped.
func (s *notificationService) NotifySkipped(ctx context.Context, store *entity.Store, ticket *entity.Ticket) error {
	msg := &service.PushMessage{
		Title:              store.Name,
		Body:               fmt.Sprintf("%s - You were skipped. Please check in with staff.", ticket.DisplayNumber()),
		Tag:                "queue-skipped",
		RequireInteraction: true,
		Data:               map[string]string{"ticket": ticket.Token},
	}

	s.deliver(ctx, ticket, msg)

	return nil
}

// deliver pushes the message to every endpoint registered for the ticket and
// reports whether at least one endpoint accepted it. A guest with no
// subscriptions simply gets nothing.
func (s *notificationService) deliver(ctx context.Context, ticket *entity.Ticket, msg *service.PushMessage) bool {
	subs, err := s.pushSubRepo.ListByTicket(ctx, ticket.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list push subscriptions",
			slog.String("ticketId", ticket.ID.String()),
			slog.String("error", err.Error()),
		)

		return false
	}
	if len(subs) == 0 {
		return false
	}

	delivered := false
	for _, sub := range subs {
		if sendErr := s.pushSender.Send(ctx, sub, msg); sendErr != nil {
			s.logger.WarnContext(ctx, "push delivery failed",
				slog.String("ticketId", ticket.ID.String()),
				slog.String("endpoint", sub.Endpoint),
				slog.String("error", sendErr.Error()),
			)

			continue
		}
		delivered = true
	}

	return delivered
}

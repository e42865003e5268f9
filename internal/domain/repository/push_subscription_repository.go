package repository

import (
	"context"

	"waitline/internal/domain/entity"

	"github.com/google/uuid"
)

// PushSubscriptionRepository defines push-subscription persistence.
type PushSubscriptionRepository interface {
	// Create persists a new push subscription for a ticket.
	Create(ctx context.Context, sub *entity.PushSubscription) error

	// ListByTicket retrieves all subscriptions registered for a ticket.
	ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*entity.PushSubscription, error)
}

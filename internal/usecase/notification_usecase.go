package usecase

import (
	"context"

	"waitline/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase evaluates queue positions and pushes alerts to guests.
type NotificationUsecase interface {
	// EvaluateStore walks the waiting queue and delivers the "almost your
	// turn" and "you're next" pushes to tickets that crossed the store's
	// thresholds. Each alert fires at most once per ticket.
	EvaluateStore(ctx context.Context, storeID uuid.UUID) error

	// NotifySkipped tells a guest their ticket was skipped.
	NotifySkipped(ctx context.Context, store *entity.Store, ticket *entity.Ticket) error
}

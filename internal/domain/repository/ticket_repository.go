package repository

import (
	"context"
	"time"

	"waitline/internal/domain/entity"
	"waitline/internal/errors"

	"github.com/google/uuid"
)

// ErrTicketNotFound is returned when no ticket matches the lookup.
var ErrTicketNotFound = errors.New("ticket not found")

// TicketRepository defines ticket-related database operations.
type TicketRepository interface {
	// Create persists a new ticket.
	Create(ctx context.Context, ticket *entity.Ticket) error

	// FindByToken retrieves a ticket by its opaque guest token.
	FindByToken(ctx context.Context, token string) (*entity.Ticket, error)

	// FindByID retrieves a ticket by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)

	// ListByStatus retrieves a store's tickets in the given status, in queue
	// order (QueuedAt ascending, ID as tiebreaker).
	ListByStatus(ctx context.Context, storeID uuid.UUID, status entity.TicketStatus) ([]*entity.Ticket, error)

	// ListByStore retrieves all of a store's tickets, newest first.
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Ticket, error)

	// CountCreatedSince counts tickets created at-or-after the given instant.
	// Together with a transactional insert this backs sequence allocation.
	CountCreatedSince(ctx context.Context, storeID uuid.UUID, since time.Time) (int64, error)

	// Update persists the mutable fields of a ticket.
	Update(ctx context.Context, ticket *entity.Ticket) error

	// MarkNotifiedNear sets the one-shot "almost your turn" flag.
	MarkNotifiedNear(ctx context.Context, id uuid.UUID) error

	// MarkNotifiedNext sets the one-shot "you're next" flag.
	MarkNotifiedNext(ctx context.Context, id uuid.UUID) error
}

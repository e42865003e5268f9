package usecase

import (
	"context"

	"waitline/internal/domain/entity"

	"github.com/google/uuid"
)

// StaffTicket is the dashboard projection of a ticket.
type StaffTicket struct {
	*entity.Ticket

	Number      string `json:"number"`
	WaitMinutes int    `json:"wait_minutes"`
}

// QueueAdminUsecase defines the staff-facing queue operations.
type QueueAdminUsecase interface {
	// ListTickets returns all of a store's tickets for the dashboard,
	// newest first, each annotated with its elapsed wait.
	ListTickets(ctx context.Context, storeID uuid.UUID) ([]*StaffTicket, error)

	// CallNext calls the longest-waiting ticket in the queue.
	CallNext(ctx context.Context, storeID uuid.UUID) (*entity.Ticket, error)

	// CallTicket calls one specific waiting ticket.
	CallTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error)

	// SeatTicket marks a called ticket as seated.
	SeatTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error)

	// SkipTicket skips a called ticket that did not show up, applying the
	// store's skip recovery policy.
	SkipTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error)

	// CancelTicket cancels a ticket on the guest's behalf.
	CancelTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error)
}

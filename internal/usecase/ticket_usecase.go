// Package usecase defines the application-facing interfaces of the use case layer.
package usecase

import (
	"context"
	"time"

	"waitline/internal/domain/entity"
)

// CreateTicketInput carries a guest's registration request.
type CreateTicketInput struct {
	StoreSlug string
	GuestName string
	PartySize int
	Source    entity.TicketSource
}

// PushSubscriptionInput carries the browser's Web Push subscription details.
type PushSubscriptionInput struct {
	Endpoint string
	P256dh   string
	Auth     string
}

// TicketView is the guest-facing projection of a ticket, enriched with the
// live queue position.
type TicketView struct {
	Token          string     `json:"token"`
	Number         string     `json:"number"`
	SequenceNumber int        `json:"sequence_number"`
	Status         string     `json:"status"`
	GuestName      string     `json:"guest_name"`
	PartySize      int        `json:"party_size"`
	GroupsAhead    int        `json:"groups_ahead"`
	CallingNumber  string     `json:"calling_number,omitempty"`
	StoreSlug      string     `json:"store_slug"`
	StoreName      string     `json:"store_name"`
	QueuedAt       time.Time  `json:"queued_at"`
	CalledAt       *time.Time `json:"called_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TicketUsecase defines the guest-facing ticket operations.
type TicketUsecase interface {
	// CreateTicket registers a guest at the end of a store's queue and
	// allocates the next sequence number.
	CreateTicket(ctx context.Context, input *CreateTicketInput) (*TicketView, error)

	// GetTicket returns the live view for a guest's ticket token.
	GetTicket(ctx context.Context, token string) (*TicketView, error)

	// CancelTicket withdraws the guest's own ticket.
	CancelTicket(ctx context.Context, token string) (*TicketView, error)

	// RegisterPushSubscription stores a browser push subscription so queue
	// notifications can reach the guest.
	RegisterPushSubscription(ctx context.Context, token string, input *PushSubscriptionInput) error
}

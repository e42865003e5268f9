package entity

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscription associates a ticket with a browser Web Push endpoint and
// its encryption keys. Subscriptions are write-once; delivery failures mark
// an endpoint stale for the current send but do not prune the row.
type PushSubscription struct {
	ID       uuid.UUID `json:"id"`
	TicketID uuid.UUID `json:"ticket_id"`
	Endpoint string    `json:"endpoint"`
	P256dh   string    `json:"p256dh"`
	Auth     string    `json:"auth"`

	CreatedAt time.Time `json:"created_at"`
}

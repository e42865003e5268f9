package entity

import (
	"fmt"
	"time"

	"waitline/internal/errors"

	"github.com/google/uuid"
)

// TicketStatus is the lifecycle state of a waiting ticket.
type TicketStatus string

const (
	StatusWaiting   TicketStatus = "WAITING"
	StatusCalled    TicketStatus = "CALLED"
	StatusSeated    TicketStatus = "SEATED"
	StatusSkipped   TicketStatus = "SKIPPED"
	StatusCancelled TicketStatus = "CANCELLED"
)

// Terminal reports whether no further transition is allowed from the status.
func (s TicketStatus) Terminal() bool {
	return s == StatusSeated || s == StatusCancelled
}

// TicketSource records how the guest registered.
type TicketSource string

const (
	SourceQR    TicketSource = "qr"
	SourceKiosk TicketSource = "kiosk"
)

// Valid reports whether the source is one of the supported values.
func (s TicketSource) Valid() bool {
	return s == SourceQR || s == SourceKiosk
}

// ErrInvalidTransition is returned when a status change violates the
// transition table. The caller must not persist any mutation in that case.
var ErrInvalidTransition = errors.New("invalid ticket status transition")

// validNext maps each status to the statuses reachable from it.
// SKIPPED -> WAITING exists only for skip recovery re-entry.
var validNext = map[TicketStatus][]TicketStatus{
	StatusWaiting: {StatusCalled, StatusCancelled},
	StatusCalled:  {StatusSeated, StatusSkipped, StatusCancelled},
	StatusSkipped: {StatusWaiting, StatusCancelled},
}

// CanTransition reports whether the edge from -> to is allowed.
func CanTransition(from, to TicketStatus) bool {
	for _, next := range validNext[from] {
		if next == to {
			return true
		}
	}

	return false
}

// Ticket represents one guest registration in a store's waiting list.
type Ticket struct {
	ID      uuid.UUID `json:"id"`
	StoreID uuid.UUID `json:"store_id"`

	// Token is the opaque guest-facing identifier used in URLs instead of
	// the numeric id, preventing enumeration. Never reused.
	Token string `json:"token"`

	GuestName string       `json:"guest_name"`
	PartySize int          `json:"party_size"`
	Status    TicketStatus `json:"status"`
	Source    TicketSource `json:"source"`

	// SequenceNumber is the display number, unique within the store's
	// current numbering epoch.
	SequenceNumber int `json:"sequence_number"`

	// QueuedAt is the queue ordering key. It defaults to CreatedAt and only
	// diverges when skip recovery re-inserts the ticket mid-queue.
	QueuedAt  time.Time `json:"queued_at"`
	CreatedAt time.Time `json:"created_at"`

	CalledAt    *time.Time `json:"called_at"`
	SeatedAt    *time.Time `json:"seated_at"`
	SkippedAt   *time.Time `json:"skipped_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	// One-shot push flags. Never cleared once set.
	NotifiedNear bool `json:"notified_near"`
	NotifiedNext bool `json:"notified_next"`

	UpdatedAt time.Time `json:"updated_at"`
}

// NewTicket builds a WAITING ticket for a store at the given time.
func NewTicket(storeID uuid.UUID, token, guestName string, partySize, sequenceNumber int, source TicketSource, now time.Time) *Ticket {
	return &Ticket{
		ID:             uuid.New(),
		StoreID:        storeID,
		Token:          token,
		GuestName:      guestName,
		PartySize:      partySize,
		Status:         StatusWaiting,
		Source:         source,
		SequenceNumber: sequenceNumber,
		QueuedAt:       now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// TransitionTo applies a status change, stamping the matching timestamp and
// UpdatedAt. It returns ErrInvalidTransition without mutating the ticket when
// the edge is not in the transition table.
func (t *Ticket) TransitionTo(next TicketStatus, now time.Time) error {
	if !CanTransition(t.Status, next) {
		return errors.Wrapf(ErrInvalidTransition, "%s -> %s", t.Status, next)
	}

	t.Status = next
	t.UpdatedAt = now

	switch next {
	case StatusCalled:
		at := now
		t.CalledAt = &at
	case StatusSeated:
		at := now
		t.SeatedAt = &at
	case StatusSkipped:
		at := now
		t.SkippedAt = &at
	case StatusCancelled:
		at := now
		t.CancelledAt = &at
	case StatusWaiting:
		// Skip recovery re-entry; QueuedAt is adjusted by the caller.
	}

	return nil
}

// CompletedAt returns the terminal timestamp, nil while the ticket is active.
func (t *Ticket) CompletedAt() *time.Time {
	switch t.Status {
	case StatusSeated:
		return t.SeatedAt
	case StatusCancelled:
		return t.CancelledAt
	}

	return nil
}

// DisplayNumber renders the printed/guest-facing form of the sequence number.
func (t *Ticket) DisplayNumber() string {
	return FormatSequence(t.SequenceNumber)
}

// FormatSequence renders a sequence number as the guest-facing display form,
// e.g. 12 -> "A-012".
func FormatSequence(n int) string {
	return fmt.Sprintf("A-%03d", n)
}

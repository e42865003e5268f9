package queue

import (
	"time"

	"waitline/internal/domain/entity"
)

// DefaultNearRecoveryOffset is how many waiting groups a near-recovered
// ticket lets pass before re-entering the queue.
const DefaultNearRecoveryOffset = 2

// RecoveryDecision is the outcome of the skip-recovery policy for one ticket.
type RecoveryDecision struct {
	// Requeue is true when the ticket must transition SKIPPED -> WAITING.
	Requeue bool
	// QueuedAt is the ordering key for the re-entry, valid only when Requeue.
	QueuedAt time.Time
}

// ResolveSkip decides what happens to a just-skipped ticket. It is a pure
// function of the store's recovery mode and the waiting set at skip time:
//
//   - end:      the ticket stays SKIPPED; staff may act on it manually.
//   - resubmit: the ticket stays SKIPPED; the guest registers a new ticket.
//   - near:     the ticket re-enters WAITING just after the next `offset`
//     waiting groups, keeping it near its original position instead of the
//     tail.
//
// An offset below one falls back to DefaultNearRecoveryOffset.
func ResolveSkip(mode entity.SkipRecoveryMode, waiting []*entity.Ticket, offset int, now time.Time) RecoveryDecision {
	if mode != entity.SkipRecoveryNear {
		return RecoveryDecision{}
	}

	if offset < 1 {
		offset = DefaultNearRecoveryOffset
	}

	ordered := make([]*entity.Ticket, len(waiting))
	copy(ordered, waiting)
	SortTickets(ordered)

	if len(ordered) == 0 {
		return RecoveryDecision{Requeue: true, QueuedAt: now}
	}

	anchor := offset
	if anchor > len(ordered) {
		anchor = len(ordered)
	}

	// Slot the ticket just behind the anchor group. A millisecond is enough:
	// ties are broken deterministically by ID.
	return RecoveryDecision{
		Requeue:  true,
		QueuedAt: ordered[anchor-1].QueuedAt.Add(time.Millisecond),
	}
}

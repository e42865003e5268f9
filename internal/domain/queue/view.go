package queue

import (
	"sort"

	"waitline/internal/domain/entity"

	"github.com/google/uuid"
)

// Less is the queue ordering: QueuedAt ascending, ID as a stable tiebreaker.
func Less(a, b *entity.Ticket) bool {
	if !a.QueuedAt.Equal(b.QueuedAt) {
		return a.QueuedAt.Before(b.QueuedAt)
	}

	return a.ID.String() < b.ID.String()
}

// SortTickets orders tickets in queue order in place.
func SortTickets(tickets []*entity.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		return Less(tickets[i], tickets[j])
	})
}

// GroupsAhead returns the number of waiting groups strictly ahead of the
// given ticket. The waiting slice must contain only WAITING tickets of one
// store; it does not need to be pre-sorted. A ticket not present in the slice
// (already called, or terminal) has zero groups ahead.
func GroupsAhead(waiting []*entity.Ticket, ticketID uuid.UUID) int {
	var subject *entity.Ticket
	for _, t := range waiting {
		if t.ID == ticketID {
			subject = t

			break
		}
	}
	if subject == nil {
		return 0
	}

	ahead := 0
	for _, t := range waiting {
		if t.ID != ticketID && Less(t, subject) {
			ahead++
		}
	}

	return ahead
}

// CurrentlyCalling picks the CALLED ticket with the most recent CalledAt.
// Under normal staff usage at most one ticket is CALLED at a time, but the
// data model does not enforce that, so the latest call wins.
func CurrentlyCalling(called []*entity.Ticket) *entity.Ticket {
	var current *entity.Ticket
	for _, t := range called {
		if t.Status != entity.StatusCalled || t.CalledAt == nil {
			continue
		}
		if current == nil || t.CalledAt.After(*current.CalledAt) {
			current = t
		}
	}

	return current
}

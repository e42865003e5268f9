package queue

import (
	"testing"
	"time"

	"waitline/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveSkip_EndAndResubmitNeverRequeue(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	waiting := []*entity.Ticket{waitingTicket(uuid.New(), now)}

	for _, mode := range []entity.SkipRecoveryMode{entity.SkipRecoveryEnd, entity.SkipRecoveryResubmit} {
		decision := ResolveSkip(mode, waiting, DefaultNearRecoveryOffset, now)
		assert.False(t, decision.Requeue, "mode %s", mode)
	}
}

func TestResolveSkip_NearAnchorsBehindOffsetGroups(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	waiting := []*entity.Ticket{
		waitingTicket(uuid.New(), base.Add(2*time.Minute)),
		waitingTicket(uuid.New(), base),
		waitingTicket(uuid.New(), base.Add(time.Minute)),
	}

	decision := ResolveSkip(entity.SkipRecoveryNear, waiting, 2, base.Add(10*time.Minute))
	assert.True(t, decision.Requeue)

	// Second ticket in queue order is queued at base+1m.
	want := base.Add(time.Minute).Add(time.Millisecond)
	assert.True(t, decision.QueuedAt.Equal(want), "got %v, want %v", decision.QueuedAt, want)
}

func TestResolveSkip_NearWithFewerWaitingThanOffset(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	waiting := []*entity.Ticket{waitingTicket(uuid.New(), base)}

	decision := ResolveSkip(entity.SkipRecoveryNear, waiting, 5, base.Add(time.Minute))
	assert.True(t, decision.Requeue)

	want := base.Add(time.Millisecond)
	assert.True(t, decision.QueuedAt.Equal(want), "got %v, want %v", decision.QueuedAt, want)
}

func TestResolveSkip_NearWithEmptyQueueUsesNow(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	decision := ResolveSkip(entity.SkipRecoveryNear, nil, DefaultNearRecoveryOffset, now)
	assert.True(t, decision.Requeue)
	assert.True(t, decision.QueuedAt.Equal(now))
}

func TestResolveSkip_InvalidOffsetFallsBackToDefault(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	waiting := []*entity.Ticket{
		waitingTicket(uuid.New(), base),
		waitingTicket(uuid.New(), base.Add(time.Minute)),
		waitingTicket(uuid.New(), base.Add(2*time.Minute)),
	}

	decision := ResolveSkip(entity.SkipRecoveryNear, waiting, 0, base.Add(10*time.Minute))
	assert.True(t, decision.Requeue)

	// Default offset of 2 anchors behind the second waiting group.
	want := base.Add(time.Minute).Add(time.Millisecond)
	assert.True(t, decision.QueuedAt.Equal(want), "got %v, want %v", decision.QueuedAt, want)
}

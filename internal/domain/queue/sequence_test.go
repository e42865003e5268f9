package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpochStart_DayBoundaryInStoreTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2026-03-14 01:30 JST is still 2026-03-13 16:30 UTC.
	now := time.Date(2026, 3, 13, 16, 30, 0, 0, time.UTC)

	got := EpochStart(now, tokyo, nil)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, tokyo)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
}

func TestEpochStart_ManualResetAfterDayStartWins(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	now := time.Date(2026, 3, 14, 15, 0, 0, 0, tokyo)
	reset := time.Date(2026, 3, 14, 11, 0, 0, 0, tokyo)

	got := EpochStart(now, tokyo, &reset)
	assert.True(t, got.Equal(reset), "got %v, want %v", got, reset)
}

func TestEpochStart_StaleManualResetIgnored(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	now := time.Date(2026, 3, 14, 15, 0, 0, 0, tokyo)
	reset := time.Date(2026, 3, 13, 20, 0, 0, 0, tokyo)

	got := EpochStart(now, tokyo, &reset)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, tokyo)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
}

func TestNextSequence(t *testing.T) {
	assert.Equal(t, 1, NextSequence(0))
	assert.Equal(t, 8, NextSequence(7))
}

// Package queue holds the pure queue-state logic: sequence numbering epochs,
// derived queue views, and the skip-recovery policy. Everything here operates
// on already-fetched records; persistence and delivery live in infra.
package queue

import (
	"time"
)

// EpochStart computes the numbering epoch boundary for a store: the later of
// the start of the current local day and the last manual reset. Tickets
// created at-or-after this instant belong to the current epoch.
func EpochStart(now time.Time, loc *time.Location, lastManualResetAt *time.Time) time.Time {
	local := now.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	if lastManualResetAt != nil && lastManualResetAt.After(dayStart) {
		return *lastManualResetAt
	}

	return dayStart
}

// NextSequence converts the count of tickets already created in the current
// epoch into the next display number. Numbering is a live recount rather than
// a stored counter, so it self-corrects and is idempotent under re-query; the
// caller must run the count and the subsequent insert in one transaction.
func NextSequence(createdInEpoch int64) int {
	return int(createdInEpoch) + 1
}

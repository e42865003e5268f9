// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SkipRecoveryMode governs what happens to a ticket after staff skip it.
type SkipRecoveryMode string

const (
	// SkipRecoveryEnd leaves the skipped ticket out of the queue; staff may
	// still act on it manually.
	SkipRecoveryEnd SkipRecoveryMode = "end"
	// SkipRecoveryNear re-queues the skipped ticket close to its original
	// position.
	SkipRecoveryNear SkipRecoveryMode = "near"
	// SkipRecoveryResubmit keeps the ticket skipped; the guest has to
	// register again for a fresh number.
	SkipRecoveryResubmit SkipRecoveryMode = "resubmit"
)

// Valid reports whether the mode is one of the supported values.
func (m SkipRecoveryMode) Valid() bool {
	switch m {
	case SkipRecoveryEnd, SkipRecoveryNear, SkipRecoveryResubmit:
		return true
	}

	return false
}

// PrintMethod selects how kiosk tickets reach a printer.
type PrintMethod string

const (
	// PrintMethodLocalBridge posts render output to an in-store bridge service.
	PrintMethodLocalBridge PrintMethod = "local_bridge"
	// PrintMethodDirect writes directly to a network printer.
	PrintMethodDirect PrintMethod = "direct"
)

// Valid reports whether the print method is one of the supported values.
func (m PrintMethod) Valid() bool {
	return m == PrintMethodLocalBridge || m == PrintMethodDirect
}

// defaultVenueOffsetSeconds is the fixed UTC+9 offset used when a store has
// no timezone configured.
const defaultVenueOffsetSeconds = 9 * 60 * 60

// Store represents a single restaurant/venue running a waiting list.
type Store struct {
	ID     uuid.UUID `json:"id"`
	Slug   string    `json:"slug"` // Immutable routing key, globally unique.
	Name   string    `json:"name"`
	NameEn string    `json:"name_en"`
	IsOpen bool      `json:"is_open"`

	// NotificationThresholdNear fires the "almost your turn" push when a
	// ticket's groups-ahead count drops to this value or below.
	NotificationThresholdNear int `json:"notification_threshold_near"`
	// NotificationThresholdNext fires the "you're next" push.
	NotificationThresholdNext int `json:"notification_threshold_next"`

	SkipRecoveryMode SkipRecoveryMode `json:"skip_recovery_mode"`
	PrintMethod      PrintMethod      `json:"print_method"`

	// Timezone is the IANA zone name used for the daily numbering reset
	// boundary. Empty means the deployment's configured default zone.
	Timezone string `json:"timezone"`

	// LastNumberingResetAt is the manual sequence reset boundary, nil if
	// numbering was never reset by staff.
	LastNumberingResetAt *time.Time `json:"last_numbering_reset_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location resolves the store's timezone for numbering-epoch computation.
// The store's own zone wins, defaultZone covers stores without one, and
// unknown zone names fall back to the fixed UTC+9 venue zone.
func (s *Store) Location(defaultZone string) *time.Location {
	for _, name := range []string{s.Timezone, defaultZone} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}

	return time.FixedZone("UTC+9", defaultVenueOffsetSeconds)
}

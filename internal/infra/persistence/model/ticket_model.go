package model

import (
	"time"

	"github.com/google/uuid"
)

// TicketModel is the GORM-specific struct for the 'tickets' table.
type TicketModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	StoreID        uuid.UUID `gorm:"type:uuid;not null;index:idx_tickets_store_status,priority:1"`
	Token          string    `gorm:"size:64;not null;uniqueIndex"`
	GuestName      string    `gorm:"size:255"`
	PartySize      int       `gorm:"not null"`
	Status         string    `gorm:"size:16;not null;index:idx_tickets_store_status,priority:2"`
	Source         string    `gorm:"size:16;not null"`
	SequenceNumber int       `gorm:"not null"`
	QueuedAt       time.Time `gorm:"not null;index"`
	CalledAt       *time.Time
	SeatedAt       *time.Time
	SkippedAt      *time.Time
	CancelledAt    *time.Time
	NotifiedNear   bool `gorm:"not null;default:false"`
	NotifiedNext   bool `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (TicketModel) TableName() string {
	return "tickets"
}

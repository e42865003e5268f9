package model

import (
	"time"

	"github.com/google/uuid"
)

// PrintJobModel is the GORM-specific struct for the 'print_jobs' table.
type PrintJobModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	TicketID     uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"size:16;not null;default:'pending'"`
	ErrorMessage string    `gorm:"type:text"`
	CompletedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (PrintJobModel) TableName() string {
	return "print_jobs"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// StaffAccountModel is the GORM-specific struct for the 'staff_accounts'
// table.
type StaffAccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	Name         string    `gorm:"size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (StaffAccountModel) TableName() string {
	return "staff_accounts"
}

// StaffAssignmentModel is the GORM-specific struct for the
// 'staff_assignments' table.
type StaffAssignmentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	StaffID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_store,priority:1"`
	StoreID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_store,priority:2"`
	Role      string    `gorm:"size:16;not null;default:'staff'"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (StaffAssignmentModel) TableName() string {
	return "staff_assignments"
}

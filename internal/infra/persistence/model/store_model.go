// Package model contains the GORM-specific structs backing the domain
// entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// StoreModel is the GORM-specific struct for the 'stores' table.
type StoreModel struct {
	ID                        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Slug                      string    `gorm:"size:100;not null;uniqueIndex"`
	Name                      string    `gorm:"size:255;not null"`
	NameEn                    string    `gorm:"size:255"`
	IsOpen                    bool      `gorm:"not null;default:true"`
	NotificationThresholdNear int       `gorm:"not null;default:3"`
	NotificationThresholdNext int       `gorm:"not null;default:1"`
	SkipRecoveryMode          string    `gorm:"size:16;not null;default:'end'"`
	PrintMethod               string    `gorm:"size:16;not null;default:'local_bridge'"`
	Timezone                  string    `gorm:"size:64"`
	LastNumberingResetAt      *time.Time
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// TableName explicitly sets the table name for GORM.
func (StoreModel) TableName() string {
	return "stores"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// PushSubscriptionModel is the GORM-specific struct for the
// 'push_subscriptions' table.
type PushSubscriptionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	TicketID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Endpoint  string    `gorm:"type:text;not null"`
	P256dh    string    `gorm:"type:text;not null"`
	Auth      string    `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PushSubscriptionModel) TableName() string {
	return "push_subscriptions"
}

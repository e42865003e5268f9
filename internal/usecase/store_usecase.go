package usecase

import (
	"context"

	"waitline/internal/domain/entity"

	"github.com/google/uuid"
)

// StorePublicView is the guest-facing projection of a store.
type StorePublicView struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	NameEn        string `json:"name_en,omitempty"`
	IsOpen        bool   `json:"is_open"`
	WaitingGroups int    `json:"waiting_groups"`
	CallingNumber string `json:"calling_number,omitempty"`
}

// UpdateStoreSettingsInput carries a partial settings update; nil fields are
// left untouched.
type UpdateStoreSettingsInput struct {
	Name                      *string
	NameEn                    *string
	IsOpen                    *bool
	NotificationThresholdNear *int
	NotificationThresholdNext *int
	SkipRecoveryMode          *entity.SkipRecoveryMode
	PrintMethod               *entity.PrintMethod
	Timezone                  *string
}

// StoreUsecase defines store lookup and settings operations.
type StoreUsecase interface {
	// GetStoreBySlug returns the guest-facing store view with the live
	// queue length.
	GetStoreBySlug(ctx context.Context, slug string) (*StorePublicView, error)

	// GenerateJoinQR renders the PNG QR code guests scan to join the queue.
	GenerateJoinQR(ctx context.Context, slug string) ([]byte, error)

	// GetSettings returns the full settings of a store for the dashboard.
	GetSettings(ctx context.Context, storeID uuid.UUID) (*entity.Store, error)

	// UpdateSettings applies a partial settings update.
	UpdateSettings(ctx context.Context, storeID uuid.UUID, input *UpdateStoreSettingsInput) (*entity.Store, error)

	// ResetNumbering starts a new numbering epoch; the next ticket gets
	// sequence number 1.
	ResetNumbering(ctx context.Context, storeID uuid.UUID) error
}

package postgres

import (
	"context"

	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/domain/repository"
	"waitline/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// pushSubscriptionRepository implements the repository.PushSubscriptionRepository interface.
type pushSubscriptionRepository struct {
	db *gorm.DB
}

// NewPushSubscriptionRepository is the constructor for pushSubscriptionRepository.
func NewPushSubscriptionRepository(db *gorm.DB) repository.PushSubscriptionRepository {
	return &pushSubscriptionRepository{
		db: db,
	}
}

// Create persists a new push subscription for a ticket.
func (repo *pushSubscriptionRepository) Create(ctx context.Context, sub *entity.PushSubscription) error {
	subM := fromPushSubscriptionDomain(sub)

	if err := repo.db.WithContext(ctx).Create(subM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid ticket reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required subscription keys")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create push subscription")
	}

	// Update the entity with generated values
	sub.ID = subM.ID
	sub.CreatedAt = subM.CreatedAt

	return nil
}

// ListByTicket retrieves all subscriptions registered for a ticket.
func (repo *pushSubscriptionRepository) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*entity.PushSubscription, error) {
	var subModels []*model.PushSubscriptionModel

	if err := repo.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&subModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list push subscriptions by ticket")
	}

	subs := make([]*entity.PushSubscription, 0, len(subModels))
	for _, subM := range subModels {
		subs = append(subs, toPushSubscriptionDomain(subM))
	}

	return subs, nil
}

// --- Mapper Functions ---

// toPushSubscriptionDomain converts a GORM PushSubscriptionModel to a domain entity.
func toPushSubscriptionDomain(data *model.PushSubscriptionModel) *entity.PushSubscription {
	if data == nil {
		return nil
	}

	return &entity.PushSubscription{
		ID:        data.ID,
		TicketID:  data.TicketID,
		Endpoint:  data.Endpoint,
		P256dh:    data.P256dh,
		Auth:      data.Auth,
		CreatedAt: data.CreatedAt,
	}
}

// fromPushSubscriptionDomain converts a domain entity to a GORM PushSubscriptionModel.
func fromPushSubscriptionDomain(data *entity.PushSubscription) *model.PushSubscriptionModel {
	if data == nil {
		return nil
	}

	return &model.PushSubscriptionModel{
		ID:        data.ID,
		TicketID:  data.TicketID,
		Endpoint:  data.Endpoint,
		P256dh:    data.P256dh,
		Auth:      data.Auth,
		CreatedAt: data.CreatedAt,
	}
}

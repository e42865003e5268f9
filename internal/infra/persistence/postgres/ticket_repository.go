package postgres

import (
	"context"
	"time"

	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/domain/repository"
	"waitline/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ticketRepository implements the repository.TicketRepository interface.
type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository is the constructor for ticketRepository.
func NewTicketRepository(db *gorm.DB) repository.TicketRepository {
	return &ticketRepository{
		db: db,
	}
}

// Create persists a new ticket.
func (repo *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	ticketM := fromTicketDomain(ticket)

	if err := repo.db.WithContext(ctx).Create(ticketM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("ticket token is already taken")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid store reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required ticket information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create ticket")
	}

	// Update the entity with generated values
	ticket.ID = ticketM.ID
	ticket.CreatedAt = ticketM.CreatedAt
	ticket.UpdatedAt = ticketM.UpdatedAt

	return nil
}

// FindByToken retrieves a ticket by its opaque guest token.
func (repo *ticketRepository) FindByToken(ctx context.Context, token string) (*entity.Ticket, error) {
	var ticketM model.TicketModel

	if err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		First(&ticketM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTicketNotFound
		}

		return nil, errors.Wrap(err, "failed to find ticket by token")
	}

	return toTicketDomain(&ticketM), nil
}

// FindByID retrieves a ticket by its unique ID.
func (repo *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	var ticketM model.TicketModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ticketM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTicketNotFound
		}

		return nil, errors.Wrap(err, "failed to find ticket by ID")
	}

	return toTicketDomain(&ticketM), nil
}

// ListByStatus retrieves a store's tickets in the given status, in queue order.
func (repo *ticketRepository) ListByStatus(ctx context.Context, storeID uuid.UUID, status entity.TicketStatus) ([]*entity.Ticket, error) {
	var ticketModels []*model.TicketModel

	if err := repo.db.WithContext(ctx).
		Where("store_id = ? AND status = ?", storeID, string(status)).
		Order("queued_at ASC, id ASC").
		Find(&ticketModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tickets by status")
	}

	tickets := make([]*entity.Ticket, 0, len(ticketModels))
	for _, ticketM := range ticketModels {
		tickets = append(tickets, toTicketDomain(ticketM))
	}

	return tickets, nil
}

// ListByStore retrieves all of a store's tickets, newest first.
func (repo *ticketRepository) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Ticket, error) {
	var ticketModels []*model.TicketModel

	if err := repo.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at DESC").
		Find(&ticketModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list tickets by store")
	}

	tickets := make([]*entity.Ticket, 0, len(ticketModels))
	for _, ticketM := range ticketModels {
		tickets = append(tickets, toTicketDomain(ticketM))
	}

	return tickets, nil
}

// CountCreatedSince counts tickets created at-or-after the given instant.
func (repo *ticketRepository) CountCreatedSince(ctx context.Context, storeID uuid.UUID, since time.Time) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.TicketModel{}).
		Where("store_id = ? AND created_at >= ?", storeID, since).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count tickets created since")
	}

	return count, nil
}

// Update persists the mutable fields of a ticket.
func (repo *ticketRepository) Update(ctx context.Context, ticket *entity.Ticket) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TicketModel{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]any{
			"status":       string(ticket.Status),
			"queued_at":    ticket.QueuedAt,
			"called_at":    ticket.CalledAt,
			"seated_at":    ticket.SeatedAt,
			"skipped_at":   ticket.SkippedAt,
			"cancelled_at": ticket.CancelledAt,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update ticket")
	}

	if result.RowsAffected == 0 {
		return repository.ErrTicketNotFound
	}

	return nil
}

// MarkNotifiedNear sets the one-shot "almost your turn" flag.
func (repo *ticketRepository) MarkNotifiedNear(ctx context.Context, id uuid.UUID) error {
	return repo.markNotified(ctx, id, "notified_near")
}

// MarkNotifiedNext sets the one-shot "you're next" flag.
func (repo *ticketRepository) MarkNotifiedNext(ctx context.Context, id uuid.UUID) error {
	return repo.markNotified(ctx, id, "notified_next")
}

func (repo *ticketRepository) markNotified(ctx context.Context, id uuid.UUID, column string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TicketModel{}).
		Where("id = ?", id).
		Update(column, true)

	if result.Error != nil {
		return errors.Wrapf(result.Error, "failed to set %s flag", column)
	}

	if result.RowsAffected == 0 {
		return repository.ErrTicketNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toTicketDomain converts a GORM TicketModel to a domain Ticket entity.
func toTicketDomain(data *model.TicketModel) *entity.Ticket {
	if data == nil {
		return nil
	}

	return &entity.Ticket{
		ID:             data.ID,
		StoreID:        data.StoreID,
		Token:          data.Token,
		GuestName:      data.GuestName,
		PartySize:      data.PartySize,
		Status:         entity.TicketStatus(data.Status),
		Source:         entity.TicketSource(data.Source),
		SequenceNumber: data.SequenceNumber,
		QueuedAt:       data.QueuedAt,
		CalledAt:       data.CalledAt,
		SeatedAt:       data.SeatedAt,
		SkippedAt:      data.SkippedAt,
		CancelledAt:    data.CancelledAt,
		NotifiedNear:   data.NotifiedNear,
		NotifiedNext:   data.NotifiedNext,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromTicketDomain converts a domain Ticket entity to a GORM TicketModel.
func fromTicketDomain(data *entity.Ticket) *model.TicketModel {
	if data == nil {
		return nil
	}

	return &model.TicketModel{
		ID:             data.ID,
		StoreID:        data.StoreID,
		Token:          data.Token,
		GuestName:      data.GuestName,
		PartySize:      data.PartySize,
		Status:         string(data.Status),
		Source:         string(data.Source),
		SequenceNumber: data.SequenceNumber,
		QueuedAt:       data.QueuedAt,
		CalledAt:       data.CalledAt,
		SeatedAt:       data.SeatedAt,
		SkippedAt:      data.SkippedAt,
		CancelledAt:    data.CancelledAt,
		NotifiedNear:   data.NotifiedNear,
		NotifiedNext:   data.NotifiedNext,
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

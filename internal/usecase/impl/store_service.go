package impl

import (
	"context"
	"log/slog"
	"time"

	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/domain/queue"
	"waitline/internal/domain/repository"
	"waitline/internal/domain/service"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type storeService struct {
	storeRepo     repository.StoreRepository
	ticketRepo    repository.TicketRepository
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// StoreServiceParams holds dependencies for StoreService, injected by Fx.
type StoreServiceParams struct {
	fx.In

	StoreRepo     repository.StoreRepository
	TicketRepo    repository.TicketRepository
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

// NewStoreService creates a new store service instance
func NewStoreService(params StoreServiceParams) usecase.StoreUsecase {
	return &storeService{
		storeRepo:     params.StoreRepo,
		ticketRepo:    params.TicketRepo,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

// GetStoreBySlug returns the guest-facing store view with the live queue length.
func (s *storeService) GetStoreBySlug(ctx context.Context, slug string) (*usecase.StorePublicView, error) {
	store, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	waiting, err := s.ticketRepo.ListByStatus(ctx, store.ID, entity.StatusWaiting)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list waiting tickets")
	}

	called, err := s.ticketRepo.ListByStatus(ctx, store.ID, entity.StatusCalled)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list called tickets")
	}

	view := &usecase.StorePublicView{
		Slug:          store.Slug,
		Name:          store.Name,
		NameEn:        store.NameEn,
		IsOpen:        store.IsOpen,
		WaitingGroups: len(waiting),
	}
	if calling := queue.CurrentlyCalling(called); calling != nil {
		view.CallingNumber = calling.DisplayNumber()
	}

	return view, nil
}

// GenerateJoinQR renders the PNG QR code guests scan to join the queue.
func (s *storeService) GenerateJoinQR(ctx context.Context, slug string) ([]byte, error) {
	store, err := s.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	png, err := s.qrcodeService.GenerateJoinQR(store.Slug)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate join QR code")
	}

	return png, nil
}

// GetSettings returns the full settings of a store for the dashboard.
func (s *storeService) GetSettings(ctx context.Context, storeID uuid.UUID) (*entity.Store, error) {
	store, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store")
	}

	return store, nil
}

// UpdateSettings applies a partial settings update.
func (s *storeService) UpdateSettings(ctx context.Context, storeID uuid.UUID, input *usecase.UpdateStoreSettingsInput) (*entity.Store, error) {
	store, err := s.GetSettings(ctx, storeID)
	if err != nil {
		return nil, err
	}

	if err := applySettings(store, input); err != nil {
		return nil, err
	}

	if err := s.storeRepo.UpdateSettings(ctx, store); err != nil {
		return nil, errors.Wrap(err, "failed to update store settings")
	}

	return store, nil
}

// ResetNumbering starts a new numbering epoch for the store.
func (s *storeService) ResetNumbering(ctx context.Context, storeID uuid.UUID) error {
	if err := s.storeRepo.SetNumberingReset(ctx, storeID, time.Now()); err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return domainerrors.ErrStoreNotFound
		}

		return errors.Wrap(err, "failed to reset numbering")
	}

	return nil
}

func (s *storeService) findBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	store, err := s.storeRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrStoreNotFound) {
			return nil, domainerrors.ErrStoreNotFound
		}

		return nil, errors.Wrap(err, "failed to find store by slug")
	}

	return store, nil
}

func applySettings(store *entity.Store, input *usecase.UpdateStoreSettingsInput) error {
	if input.Name != nil {
		if *input.Name == "" {
			return domainerrors.ErrValidationFailed.WrapMessage("store name cannot be empty")
		}
		store.Name = *input.Name
	}
	if input.NameEn != nil {
		store.NameEn = *input.NameEn
	}
	if input.IsOpen != nil {
		store.IsOpen = *input.IsOpen
	}
	if input.NotificationThresholdNear != nil {
		if *input.NotificationThresholdNear < 0 {
			return domainerrors.ErrValidationFailed.WrapMessage("near threshold cannot be negative")
		}
		store.NotificationThresholdNear = *input.NotificationThresholdNear
	}
	if input.NotificationThresholdNext != nil {
		if *input.NotificationThresholdNext < 0 {
			return domainerrors.ErrValidationFailed.WrapMessage("next threshold cannot be negative")
		}
		store.NotificationThresholdNext = *input.NotificationThresholdNext
	}
	if input.SkipRecoveryMode != nil {
		if !input.SkipRecoveryMode.Valid() {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown skip recovery mode")
		}
		store.SkipRecoveryMode = *input.SkipRecoveryMode
	}
	if input.PrintMethod != nil {
		if !input.PrintMethod.Valid() {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown print method")
		}
		store.PrintMethod = *input.PrintMethod
	}
	if input.Timezone != nil {
		if _, err := time.LoadLocation(*input.Timezone); err != nil {
			return domainerrors.ErrValidationFailed.WrapMessage("unknown timezone")
		}
		store.Timezone = *input.Timezone
	}

	return nil
}

package impl

import (
	"context"
	"testing"
	"time"

	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/domain/repository"
	"waitline/internal/mocks"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type storeFixture struct {
	storeRepo  *mocks.StoreRepositoryMock
	ticketRepo *mocks.TicketRepositoryMock
	qrcode     *mocks.QRCodeServiceMock
	service    usecase.StoreUsecase
}

func newStoreFixture() *storeFixture {
	f := &storeFixture{
		storeRepo:  mocks.NewStoreRepositoryMock(),
		ticketRepo: mocks.NewTicketRepositoryMock(),
		qrcode:     mocks.NewQRCodeServiceMock(),
	}

	f.service = NewStoreService(StoreServiceParams{
		StoreRepo:     f.storeRepo,
		TicketRepo:    f.ticketRepo,
		QRCodeService: f.qrcode,
		Logger:        testLogger(),
	})

	return f
}

func TestGetStoreBySlug(t *testing.T) {
	f := newStoreFixture()
	store := openStore()
	now := time.Now()

	waiting := []*entity.Ticket{
		entity.NewTicket(store.ID, "tok-1", "Sato", 2, 1, entity.SourceQR, now),
		entity.NewTicket(store.ID, "tok-2", "Tanaka", 4, 2, entity.SourceQR, now.Add(time.Minute)),
	}
	calling := entity.NewTicket(store.ID, "tok-3", "Yamada", 2, 8, entity.SourceQR, now.Add(-time.Minute))
	require.NoError(t, calling.TransitionTo(entity.StatusCalled, now))

	f.storeRepo.On("FindBySlug", mock.Anything, store.Slug).Return(store, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return(waiting, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusCalled).Return([]*entity.Ticket{calling}, nil)

	view, err := f.service.GetStoreBySlug(context.Background(), store.Slug)
	require.NoError(t, err)

	assert.Equal(t, store.Slug, view.Slug)
	assert.Equal(t, 2, view.WaitingGroups)
	assert.Equal(t, "A-008", view.CallingNumber)
}

func TestGetStoreBySlug_UnknownSlug(t *testing.T) {
	f := newStoreFixture()
	f.storeRepo.On("FindBySlug", mock.Anything, "nope").Return(nil, repository.ErrStoreNotFound)

	_, err := f.service.GetStoreBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

func TestGenerateJoinQR(t *testing.T) {
	f := newStoreFixture()
	store := openStore()
	png := []byte{0x89, 'P', 'N', 'G'}

	f.storeRepo.On("FindBySlug", mock.Anything, store.Slug).Return(store, nil)
	f.qrcode.On("GenerateJoinQR", store.Slug).Return(png, nil)

	got, err := f.service.GenerateJoinQR(context.Background(), store.Slug)
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestUpdateSettings_PartialUpdate(t *testing.T) {
	f := newStoreFixture()
	store := openStore()
	originalName := store.Name

	near := 5
	closed := false
	mode := entity.SkipRecoveryNear

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.storeRepo.On("UpdateSettings", mock.Anything, store).Return(nil)

	updated, err := f.service.UpdateSettings(context.Background(), store.ID, &usecase.UpdateStoreSettingsInput{
		IsOpen:                    &closed,
		NotificationThresholdNear: &near,
		SkipRecoveryMode:          &mode,
	})
	require.NoError(t, err)

	assert.Equal(t, originalName, updated.Name)
	assert.False(t, updated.IsOpen)
	assert.Equal(t, 5, updated.NotificationThresholdNear)
	assert.Equal(t, entity.SkipRecoveryNear, updated.SkipRecoveryMode)
}

func TestUpdateSettings_Validation(t *testing.T) {
	emptyName := ""
	negative := -1
	badMode := entity.SkipRecoveryMode("sideways")
	badMethod := entity.PrintMethod("carrier-pigeon")
	badZone := "Mars/Olympus"

	cases := []struct {
		name  string
		input *usecase.UpdateStoreSettingsInput
	}{
		{"empty name", &usecase.UpdateStoreSettingsInput{Name: &emptyName}},
		{"negative near threshold", &usecase.UpdateStoreSettingsInput{NotificationThresholdNear: &negative}},
		{"negative next threshold", &usecase.UpdateStoreSettingsInput{NotificationThresholdNext: &negative}},
		{"unknown skip recovery mode", &usecase.UpdateStoreSettingsInput{SkipRecoveryMode: &badMode}},
		{"unknown print method", &usecase.UpdateStoreSettingsInput{PrintMethod: &badMethod}},
		{"unknown timezone", &usecase.UpdateStoreSettingsInput{Timezone: &badZone}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			f := newStoreFixture()
			store := openStore()
			f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)

			_, err := f.service.UpdateSettings(context.Background(), store.ID, tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
			f.storeRepo.AssertNotCalled(t, "UpdateSettings", mock.Anything, mock.Anything)
		})
	}
}

func TestResetNumbering(t *testing.T) {
	f := newStoreFixture()
	storeID := uuid.New()

	f.storeRepo.On("SetNumberingReset", mock.Anything, storeID, mock.AnythingOfType("time.Time")).Return(nil)

	assert.NoError(t, f.service.ResetNumbering(context.Background(), storeID))
	f.storeRepo.AssertExpectations(t)
}

func TestResetNumbering_UnknownStore(t *testing.T) {
	f := newStoreFixture()
	storeID := uuid.New()

	f.storeRepo.On("SetNumberingReset", mock.Anything, storeID, mock.AnythingOfType("time.Time")).Return(repository.ErrStoreNotFound)

	err := f.service.ResetNumbering(context.Background(), storeID)
	assert.ErrorIs(t, err, domainerrors.ErrStoreNotFound)
}

package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"waitline/config"
	"waitline/internal/domain/entity"
	domainerrors "waitline/internal/domain/errors"
	"waitline/internal/mocks"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openStore() *entity.Store {
	return &entity.Store{
		ID:                        uuid.New(),
		Slug:                      "sakura-ramen",
		Name:                      "Sakura Ramen",
		IsOpen:                    true,
		NotificationThresholdNear: 3,
		NotificationThresholdNext: 0,
		SkipRecoveryMode:          entity.SkipRecoveryEnd,
		PrintMethod:               entity.PrintMethodLocalBridge,
		Timezone:                  "Asia/Tokyo",
	}
}

type ticketServiceFixture struct {
	storeRepo   *mocks.StoreRepositoryMock
	ticketRepo  *mocks.TicketRepositoryMock
	pushSubRepo *mocks.PushSubscriptionRepositoryMock
	printUC     *mocks.PrintUsecaseMock
	notifyUC    *mocks.NotificationUsecaseMock
	service     usecase.TicketUsecase
}

func newTicketServiceFixture() *ticketServiceFixture {
	f := &ticketServiceFixture{
		storeRepo:   mocks.NewStoreRepositoryMock(),
		ticketRepo:  mocks.NewTicketRepositoryMock(),
		pushSubRepo: mocks.NewPushSubscriptionRepositoryMock(),
		printUC:     mocks.NewPrintUsecaseMock(),
		notifyUC:    mocks.NewNotificationUsecaseMock(),
	}

	txManager := mocks.NewFakeTransactionManager(&mocks.FakeRepositoryFactory{
		StoreRepo:  f.storeRepo,
		TicketRepo: f.ticketRepo,
	})

	f.service = NewTicketService(TicketServiceParams{
		TxManager:      txManager,
		StoreRepo:      f.storeRepo,
		TicketRepo:     f.ticketRepo,
		PushSubRepo:    f.pushSubRepo,
		PrintUsecase:   f.printUC,
		NotificationUC: f.notifyUC,
		Config:         &config.Config{},
		Logger:         testLogger(),
	})

	return f
}

func (f *ticketServiceFixture) expectEmptyQueueViews(storeID uuid.UUID) {
	f.ticketRepo.On("ListByStatus", mock.Anything, storeID, entity.StatusWaiting).Return([]*entity.Ticket{}, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, storeID, entity.StatusCalled).Return([]*entity.Ticket{}, nil)
}

func TestCreateTicket_AllocatesNextSequence(t *testing.T) {
	f := newTicketServiceFixture()
	store := openStore()

	f.storeRepo.On("FindBySlug", mock.Anything, store.Slug).Return(store, nil)
	f.storeRepo.On("LockByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("CountCreatedSince", mock.Anything, store.ID, mock.AnythingOfType("time.Time")).Return(int64(11), nil)
	f.ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Ticket")).Return(nil)
	f.expectEmptyQueueViews(store.ID)

	view, err := f.service.CreateTicket(context.Background(), &usecase.CreateTicketInput{
		StoreSlug: store.Slug,
		GuestName: "Tanaka",
		PartySize: 2,
		Source:    entity.SourceQR,
	})
	require.NoError(t, err)

	assert.Equal(t, 12, view.SequenceNumber)
	assert.Equal(t, "A-012", view.Number)
	assert.Equal(t, string(entity.StatusWaiting), view.Status)
	assert.NotEmpty(t, view.Token)
	// The store row lock is what keeps concurrent allocations from issuing
	// the same number.
	f.storeRepo.AssertCalled(t, "LockByID", mock.Anything, store.ID)
	f.printUC.AssertNotCalled(t, "PrintTicket", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateTicket_StoreClosed(t *testing.T) {
	f := newTicketServiceFixture()
	store := openStore()
	store.IsOpen = false

	f.storeRepo.On("FindBySlug", mock.Anything, store.Slug).Return(store, nil)

	_, err := f.service.CreateTicket(context.Background(), &usecase.CreateTicketInput{
		StoreSlug: store.Slug,
		PartySize: 2,
		Source:    entity.SourceQR,
	})
	assert.ErrorIs(t, err, domainerrors.ErrStoreClosed)
}

func TestCreateTicket_RejectsInvalidPartySize(t *testing.T) {
	f := newTicketServiceFixture()
	store := openStore()

	f.storeRepo.On("FindBySlug", mock.Anything, store.Slug).Return(store, nil)

	_, err := f.service.CreateTicket(context.Background(), &usecase.CreateTicketInput{
		StoreSlug: store.Slug,
		GuestName: "Tanaka",
		PartySize: 0,
		Source:    entity.SourceQR,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCreateTicket_RejectsEmptyGuestName(t *testing.T) {
	f := newTicketServiceFixture()
	store := openStore()

	f.storeRepo.On("FindBySlug", mock.Anything, store.Slug).Return(store, nil)

	_, err := f.service.CreateTicket(context.Background(), &usecase.CreateTicketInput{
		StoreSlug: store.Slug,
		GuestName: "   ",
		PartySize: 2,
		Source:    entity.SourceQR,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	f.ticketRepo.AssertNotCalled(t, "Create")
}

func TestCreateTicket_KioskTriggersPrint(t *testing.T) {
	f := newTicketServiceFixture()
	store := openStore()

	f.storeRepo.On("FindBySlug", mock.Anything, store.Slug).Return(store, nil)
	f.storeRepo.On("LockByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("CountCreatedSince", mock.Anything, store.ID, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	f.ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Ticket")).Return(nil)
	f.printUC.On("PrintTicket", mock.Anything, store, mock.AnythingOfType("*entity.Ticket")).Return(&entity.PrintJob{}, nil)
	f.expectEmptyQueueViews(store.ID)

	view, err := f.service.CreateTicket(context.Background(), &usecase.CreateTicketInput{
		StoreSlug: store.Slug,
		GuestName: "Suzuki",
		PartySize: 4,
		Source:    entity.SourceKiosk,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, view.SequenceNumber)

	f.printUC.AssertCalled(t, "PrintTicket", mock.Anything, store, mock.AnythingOfType("*entity.Ticket"))
}

func TestCreateTicket_PrintFailureDoesNotBlockRegistration(t *testing.T) {
	f := newTicketServiceFixture()
	store := openStore()

	f.storeRepo.On("FindBySlug", mock.Anything, store.Slug).Return(store, nil)
	f.storeRepo.On("LockByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("CountCreatedSince", mock.Anything, store.ID, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	f.ticketRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Ticket")).Return(nil)
	f.printUC.On("PrintTicket", mock.Anything, store, mock.AnythingOfType("*entity.Ticket")).Return(nil, assert.AnError)
	f.expectEmptyQueueViews(store.ID)

	_, err := f.service.CreateTicket(context.Background(), &usecase.CreateTicketInput{
		StoreSlug: store.Slug,
		GuestName: "Sato",
		PartySize: 2,
		Source:    entity.SourceKiosk,
	})
	assert.NoError(t, err)
}

func TestGetTicket_ReportsGroupsAheadAndCallingNumber(t *testing.T) {
	f := newTicketServiceFixture()
	store := openStore()
	now := time.Now()

	subject := entity.NewTicket(store.ID, "tok-subject", "Tanaka", 2, 7, entity.SourceQR, now.Add(2*time.Minute))
	earlier := entity.NewTicket(store.ID, "tok-earlier", "Sato", 3, 6, entity.SourceQR, now)

	calledAt := now.Add(time.Minute)
	calling := entity.NewTicket(store.ID, "tok-called", "Yamada", 2, 5, entity.SourceQR, now.Add(-time.Minute))
	require.NoError(t, calling.TransitionTo(entity.StatusCalled, calledAt))

	f.ticketRepo.On("FindByToken", mock.Anything, "tok-subject").Return(subject, nil)
	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.notifyUC.On("EvaluateStore", mock.Anything, store.ID).Return(nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return([]*entity.Ticket{earlier, subject}, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusCalled).Return([]*entity.Ticket{calling}, nil)

	view, err := f.service.GetTicket(context.Background(), "tok-subject")
	require.NoError(t, err)

	assert.Equal(t, 1, view.GroupsAhead)
	assert.Equal(t, "A-005", view.CallingNumber)
	assert.Equal(t, store.Slug, view.StoreSlug)

	// Polling the status page is what drives threshold notifications.
	f.notifyUC.AssertCalled(t, "EvaluateStore", mock.Anything, store.ID)
}

func TestCancelTicket_EvaluatesQueueNotifications(t *testing.T) {
	f := newTicketServiceFixture()
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Tanaka", 2, 3, entity.SourceQR, time.Now())

	f.ticketRepo.On("FindByToken", mock.Anything, "tok").Return(ticket, nil)
	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("Update", mock.Anything, ticket).Return(nil)
	f.notifyUC.On("EvaluateStore", mock.Anything, store.ID).Return(nil)
	f.expectEmptyQueueViews(store.ID)

	view, err := f.service.CancelTicket(context.Background(), "tok")
	require.NoError(t, err)

	assert.Equal(t, string(entity.StatusCancelled), view.Status)
	f.notifyUC.AssertCalled(t, "EvaluateStore", mock.Anything, store.ID)
}

func TestCancelTicket_SeatedTicketCannotBeCancelled(t *testing.T) {
	f := newTicketServiceFixture()
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Tanaka", 2, 3, entity.SourceQR, time.Now())
	require.NoError(t, ticket.TransitionTo(entity.StatusCalled, time.Now()))
	require.NoError(t, ticket.TransitionTo(entity.StatusSeated, time.Now()))

	f.ticketRepo.On("FindByToken", mock.Anything, "tok").Return(ticket, nil)
	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)

	_, err := f.service.CancelTicket(context.Background(), "tok")
	assert.ErrorIs(t, err, domainerrors.ErrCannotCancel)
	f.ticketRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRegisterPushSubscription(t *testing.T) {
	f := newTicketServiceFixture()
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Tanaka", 2, 3, entity.SourceQR, time.Now())

	f.ticketRepo.On("FindByToken", mock.Anything, "tok").Return(ticket, nil)
	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.pushSubRepo.On("Create", mock.Anything, mock.MatchedBy(func(sub *entity.PushSubscription) bool {
		return sub.TicketID == ticket.ID && sub.Endpoint == "https://push.example.com/sub"
	})).Return(nil)

	err := f.service.RegisterPushSubscription(context.Background(), "tok", &usecase.PushSubscriptionInput{
		Endpoint: "https://push.example.com/sub",
		P256dh:   "p256dh-key",
		Auth:     "auth-secret",
	})
	assert.NoError(t, err)
}

func TestRegisterPushSubscription_RejectsIncompleteKeys(t *testing.T) {
	f := newTicketServiceFixture()

	err := f.service.RegisterPushSubscription(context.Background(), "tok", &usecase.PushSubscriptionInput{
		Endpoint: "https://push.example.com/sub",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	f.ticketRepo.AssertNotCalled(t, "FindByToken", mock.Anything, mock.Anything)
}

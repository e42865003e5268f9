package impl

import (
	"context"
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

type queueAdminFixture struct {
	storeRepo  *mocks.StoreRepositoryMock
	ticketRepo *mocks.TicketRepositoryMock
	notifyUC   *mocks.NotificationUsecaseMock
	service    usecase.QueueAdminUsecase
}

func newQueueAdminFixture(cfg *config.Config) *queueAdminFixture {
	if cfg == nil {
		cfg = &config.Config{}
	}

	f := &queueAdminFixture{
		storeRepo:  mocks.NewStoreRepositoryMock(),
		ticketRepo: mocks.NewTicketRepositoryMock(),
		notifyUC:   mocks.NewNotificationUsecaseMock(),
	}

	txManager := mocks.NewFakeTransactionManager(&mocks.FakeRepositoryFactory{
		StoreRepo:  f.storeRepo,
		TicketRepo: f.ticketRepo,
	})

	f.service = NewQueueAdminService(QueueAdminServiceParams{
		TxManager:      txManager,
		StoreRepo:      f.storeRepo,
		TicketRepo:     f.ticketRepo,
		NotificationUC: f.notifyUC,
		Config:         cfg,
		Logger:         testLogger(),
	})

	return f
}

func TestCallNext_CallsHeadOfQueue(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()
	now := time.Now()

	head := entity.NewTicket(store.ID, "tok-1", "Sato", 2, 1, entity.SourceQR, now)
	second := entity.NewTicket(store.ID, "tok-2", "Tanaka", 4, 2, entity.SourceQR, now.Add(time.Minute))

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.storeRepo.On("LockByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return([]*entity.Ticket{head, second}, nil)
	f.ticketRepo.On("Update", mock.Anything, head).Return(nil)
	f.notifyUC.On("EvaluateStore", mock.Anything, store.ID).Return(nil)

	ticket, err := f.service.CallNext(context.Background(), store.ID)
	require.NoError(t, err)

	assert.Equal(t, head.ID, ticket.ID)
	assert.Equal(t, entity.StatusCalled, ticket.Status)
	assert.Equal(t, entity.StatusWaiting, second.Status)
	// Two staff devices calling at once serialize on the store row lock.
	f.storeRepo.AssertCalled(t, "LockByID", mock.Anything, store.ID)
	f.notifyUC.AssertCalled(t, "EvaluateStore", mock.Anything, store.ID)
}

func TestCallNext_EmptyQueue(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.storeRepo.On("LockByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return([]*entity.Ticket{}, nil)

	_, err := f.service.CallNext(context.Background(), store.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNoWaitingTickets)
}

func TestCallNext_ClosedStore(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()
	store.IsOpen = false

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)

	_, err := f.service.CallNext(context.Background(), store.ID)
	assert.ErrorIs(t, err, domainerrors.ErrStoreClosed)
	f.ticketRepo.AssertNotCalled(t, "ListByStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCallTicket_RejectsNonWaitingTicket(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 1, entity.SourceQR, time.Now())
	require.NoError(t, ticket.TransitionTo(entity.StatusCalled, time.Now()))

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)

	_, err := f.service.CallTicket(context.Background(), store.ID, ticket.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestSeatTicket_OnlyCalledTicketsSeat(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 1, entity.SourceQR, time.Now())

	f.ticketRepo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)

	_, err := f.service.SeatTicket(context.Background(), store.ID, ticket.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOnlyCalledSeated)
}

func TestSeatTicket(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 1, entity.SourceQR, time.Now())
	require.NoError(t, ticket.TransitionTo(entity.StatusCalled, time.Now()))

	f.ticketRepo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)
	f.ticketRepo.On("Update", mock.Anything, ticket).Return(nil)
	f.notifyUC.On("EvaluateStore", mock.Anything, store.ID).Return(nil)

	seated, err := f.service.SeatTicket(context.Background(), store.ID, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSeated, seated.Status)
}

func TestSkipTicket_EndModeLeavesTicketSkipped(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()
	store.SkipRecoveryMode = entity.SkipRecoveryEnd

	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 1, entity.SourceQR, time.Now())
	require.NoError(t, ticket.TransitionTo(entity.StatusCalled, time.Now()))

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)
	f.ticketRepo.On("Update", mock.Anything, ticket).Return(nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return([]*entity.Ticket{}, nil)
	f.notifyUC.On("NotifySkipped", mock.Anything, store, ticket).Return(nil)
	f.notifyUC.On("EvaluateStore", mock.Anything, store.ID).Return(nil)

	skipped, err := f.service.SkipTicket(context.Background(), store.ID, ticket.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusSkipped, skipped.Status)
	f.ticketRepo.AssertNumberOfCalls(t, "Update", 1)
	f.notifyUC.AssertCalled(t, "NotifySkipped", mock.Anything, store, ticket)
}

func TestSkipTicket_NearModeRequeuesBehindOffset(t *testing.T) {
	f := newQueueAdminFixture(&config.Config{Queue: &config.QueueConfig{NearRecoveryOffset: 2}})
	store := openStore()
	store.SkipRecoveryMode = entity.SkipRecoveryNear

	base := time.Now()
	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 1, entity.SourceQR, base)
	require.NoError(t, ticket.TransitionTo(entity.StatusCalled, base.Add(time.Minute)))

	w1 := entity.NewTicket(store.ID, "tok-w1", "A", 2, 2, entity.SourceQR, base.Add(time.Minute))
	w2 := entity.NewTicket(store.ID, "tok-w2", "B", 2, 3, entity.SourceQR, base.Add(2*time.Minute))
	w3 := entity.NewTicket(store.ID, "tok-w3", "C", 2, 4, entity.SourceQR, base.Add(3*time.Minute))

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)
	f.ticketRepo.On("Update", mock.Anything, ticket).Return(nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return([]*entity.Ticket{w1, w2, w3}, nil)
	f.notifyUC.On("NotifySkipped", mock.Anything, store, ticket).Return(nil)
	f.notifyUC.On("EvaluateStore", mock.Anything, store.ID).Return(nil)

	requeued, err := f.service.SkipTicket(context.Background(), store.ID, ticket.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusWaiting, requeued.Status)
	assert.NotNil(t, requeued.SkippedAt)

	// Re-entry slots just behind the second waiting group.
	want := w2.QueuedAt.Add(time.Millisecond)
	assert.True(t, requeued.QueuedAt.Equal(want), "got %v, want %v", requeued.QueuedAt, want)
	f.ticketRepo.AssertNumberOfCalls(t, "Update", 2)
}

func TestSkipTicket_WaitingTicketCannotBeSkipped(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 1, entity.SourceQR, time.Now())

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("FindByID", mock.Anything, ticket.ID).Return(ticket, nil)

	_, err := f.service.SkipTicket(context.Background(), store.ID, ticket.ID)
	assert.ErrorIs(t, err, domainerrors.ErrOnlyCalledSkipped)
}

func TestFindStoreTicket_WrongStoreLooksLikeMissing(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()
	otherStoreTicket := entity.NewTicket(uuid.New(), "tok", "Sato", 2, 1, entity.SourceQR, time.Now())
	require.NoError(t, otherStoreTicket.TransitionTo(entity.StatusCalled, time.Now()))

	f.ticketRepo.On("FindByID", mock.Anything, otherStoreTicket.ID).Return(otherStoreTicket, nil)

	_, err := f.service.SeatTicket(context.Background(), store.ID, otherStoreTicket.ID)
	assert.ErrorIs(t, err, domainerrors.ErrTicketNotFound)
}

func TestListTickets_WaitMinutes(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()
	now := time.Now()

	waiting := entity.NewTicket(store.ID, "tok-1", "Sato", 2, 1, entity.SourceQR, now.Add(-30*time.Minute))

	seated := entity.NewTicket(store.ID, "tok-2", "Tanaka", 2, 2, entity.SourceQR, now.Add(-2*time.Hour))
	require.NoError(t, seated.TransitionTo(entity.StatusCalled, now.Add(-100*time.Minute)))
	require.NoError(t, seated.TransitionTo(entity.StatusSeated, now.Add(-90*time.Minute)))

	f.ticketRepo.On("ListByStore", mock.Anything, store.ID).Return([]*entity.Ticket{waiting, seated}, nil)

	staffTickets, err := f.service.ListTickets(context.Background(), store.ID)
	require.NoError(t, err)
	require.Len(t, staffTickets, 2)

	assert.Equal(t, "A-001", staffTickets[0].Number)
	assert.Equal(t, 30, staffTickets[0].WaitMinutes)

	// Terminal tickets freeze their wait at completion time.
	assert.Equal(t, 30, staffTickets[1].WaitMinutes)
}

func TestListTickets_WaitSurvivesRequeue(t *testing.T) {
	f := newQueueAdminFixture(nil)
	store := openStore()
	now := time.Now()

	ticket := entity.NewTicket(store.ID, "tok-1", "Sato", 2, 1, entity.SourceQR, now.Add(-45*time.Minute))
	// Skip recovery moved the ticket to a later queue slot.
	ticket.QueuedAt = now.Add(-5 * time.Minute)

	f.ticketRepo.On("ListByStore", mock.Anything, store.ID).Return([]*entity.Ticket{ticket}, nil)

	staffTickets, err := f.service.ListTickets(context.Background(), store.ID)
	require.NoError(t, err)
	require.Len(t, staffTickets, 1)

	assert.Equal(t, 45, staffTickets[0].WaitMinutes)
}

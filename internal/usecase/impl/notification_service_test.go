package impl

import (
	"context"
	"testing"
	"time"

	"waitline/internal/domain/entity"
	"waitline/internal/domain/service"
	"waitline/internal/mocks"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type notificationFixture struct {
	storeRepo   *mocks.StoreRepositoryMock
	ticketRepo  *mocks.TicketRepositoryMock
	pushSubRepo *mocks.PushSubscriptionRepositoryMock
	pushSender  *mocks.PushSenderMock
	service     usecase.NotificationUsecase
}

func newNotificationFixture() *notificationFixture {
	f := &notificationFixture{
		storeRepo:   mocks.NewStoreRepositoryMock(),
		ticketRepo:  mocks.NewTicketRepositoryMock(),
		pushSubRepo: mocks.NewPushSubscriptionRepositoryMock(),
		pushSender:  mocks.NewPushSenderMock(),
	}

	f.service = NewNotificationService(NotificationServiceParams{
		StoreRepo:   f.storeRepo,
		TicketRepo:  f.ticketRepo,
		PushSubRepo: f.pushSubRepo,
		PushSender:  f.pushSender,
		Logger:      testLogger(),
	})

	return f
}

func subscriptionFor(ticketID uuid.UUID) *entity.PushSubscription {
	return &entity.PushSubscription{
		ID:       uuid.New(),
		TicketID: ticketID,
		Endpoint: "https://push.example.com/" + ticketID.String(),
		P256dh:   "p256dh-key",
		Auth:     "auth-secret",
	}
}

func TestEvaluateStore_NextOutranksNear(t *testing.T) {
	f := newNotificationFixture()
	store := openStore() // near threshold 3, next threshold 0
	now := time.Now()

	head := entity.NewTicket(store.ID, "tok-head", "Sato", 2, 1, entity.SourceQR, now)
	second := entity.NewTicket(store.ID, "tok-second", "Tanaka", 2, 2, entity.SourceQR, now.Add(time.Minute))

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return([]*entity.Ticket{head, second}, nil)
	f.pushSubRepo.On("ListByTicket", mock.Anything, head.ID).Return([]*entity.PushSubscription{subscriptionFor(head.ID)}, nil)
	f.pushSubRepo.On("ListByTicket", mock.Anything, second.ID).Return([]*entity.PushSubscription{subscriptionFor(second.ID)}, nil)
	f.pushSender.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.ticketRepo.On("MarkNotifiedNext", mock.Anything, head.ID).Return(nil)
	f.ticketRepo.On("MarkNotifiedNear", mock.Anything, second.ID).Return(nil)

	require.NoError(t, f.service.EvaluateStore(context.Background(), store.ID))

	f.pushSender.AssertCalled(t, "Send", mock.Anything, mock.Anything, mock.MatchedBy(func(msg *service.PushMessage) bool {
		return msg.Tag == "queue-next" && msg.Data["ticket"] == "tok-head"
	}))
	f.pushSender.AssertCalled(t, "Send", mock.Anything, mock.Anything, mock.MatchedBy(func(msg *service.PushMessage) bool {
		return msg.Tag == "queue-near" && msg.Data["ticket"] == "tok-second"
	}))
	f.ticketRepo.AssertCalled(t, "MarkNotifiedNext", mock.Anything, head.ID)
	f.ticketRepo.AssertCalled(t, "MarkNotifiedNear", mock.Anything, second.ID)
}

func TestEvaluateStore_AlreadyNotifiedTicketsStaySilent(t *testing.T) {
	f := newNotificationFixture()
	store := openStore()
	now := time.Now()

	head := entity.NewTicket(store.ID, "tok-head", "Sato", 2, 1, entity.SourceQR, now)
	head.NotifiedNext = true
	second := entity.NewTicket(store.ID, "tok-second", "Tanaka", 2, 2, entity.SourceQR, now.Add(time.Minute))
	second.NotifiedNear = true

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return([]*entity.Ticket{head, second}, nil)

	require.NoError(t, f.service.EvaluateStore(context.Background(), store.ID))

	f.pushSender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
	f.ticketRepo.AssertNotCalled(t, "MarkNotifiedNext", mock.Anything, mock.Anything)
	f.ticketRepo.AssertNotCalled(t, "MarkNotifiedNear", mock.Anything, mock.Anything)
}

func TestEvaluateStore_FarTicketsUntouched(t *testing.T) {
	f := newNotificationFixture()
	store := openStore()
	now := time.Now()

	var waiting []*entity.Ticket
	for i := 0; i < 6; i++ {
		waiting = append(waiting, entity.NewTicket(store.ID, uuid.NewString(), "Guest", 2, i+1, entity.SourceQR, now.Add(time.Duration(i)*time.Minute)))
	}

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return(waiting, nil)
	f.pushSubRepo.On("ListByTicket", mock.Anything, mock.Anything).Return([]*entity.PushSubscription{}, nil)

	require.NoError(t, f.service.EvaluateStore(context.Background(), store.ID))

	// Thresholds are next=0 and near=3, so positions 4 and 5 get no lookup.
	f.pushSubRepo.AssertNumberOfCalls(t, "ListByTicket", 4)
}

func TestEvaluateStore_NoSubscriptionsLeavesFlagUnset(t *testing.T) {
	f := newNotificationFixture()
	store := openStore()

	head := entity.NewTicket(store.ID, "tok-head", "Sato", 2, 1, entity.SourceQR, time.Now())

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return([]*entity.Ticket{head}, nil)
	f.pushSubRepo.On("ListByTicket", mock.Anything, head.ID).Return([]*entity.PushSubscription{}, nil)

	require.NoError(t, f.service.EvaluateStore(context.Background(), store.ID))

	f.ticketRepo.AssertNotCalled(t, "MarkNotifiedNext", mock.Anything, mock.Anything)
}

func TestEvaluateStore_PartialDeliveryFailureStillMarks(t *testing.T) {
	f := newNotificationFixture()
	store := openStore()

	head := entity.NewTicket(store.ID, "tok-head", "Sato", 2, 1, entity.SourceQR, time.Now())
	broken := subscriptionFor(head.ID)
	working := subscriptionFor(head.ID)

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return([]*entity.Ticket{head}, nil)
	f.pushSubRepo.On("ListByTicket", mock.Anything, head.ID).Return([]*entity.PushSubscription{broken, working}, nil)
	f.pushSender.On("Send", mock.Anything, broken, mock.Anything).Return(assert.AnError)
	f.pushSender.On("Send", mock.Anything, working, mock.Anything).Return(nil)
	f.ticketRepo.On("MarkNotifiedNext", mock.Anything, head.ID).Return(nil)

	require.NoError(t, f.service.EvaluateStore(context.Background(), store.ID))

	f.ticketRepo.AssertCalled(t, "MarkNotifiedNext", mock.Anything, head.ID)
}

func TestEvaluateStore_AllEndpointsFailingLeavesFlagUnset(t *testing.T) {
	f := newNotificationFixture()
	store := openStore()

	head := entity.NewTicket(store.ID, "tok-head", "Sato", 2, 1, entity.SourceQR, time.Now())
	sub := subscriptionFor(head.ID)

	f.storeRepo.On("FindByID", mock.Anything, store.ID).Return(store, nil)
	f.ticketRepo.On("ListByStatus", mock.Anything, store.ID, entity.StatusWaiting).Return([]*entity.Ticket{head}, nil)
	f.pushSubRepo.On("ListByTicket", mock.Anything, head.ID).Return([]*entity.PushSubscription{sub}, nil)
	f.pushSender.On("Send", mock.Anything, sub, mock.Anything).Return(assert.AnError)

	require.NoError(t, f.service.EvaluateStore(context.Background(), store.ID))

	f.ticketRepo.AssertNotCalled(t, "MarkNotifiedNext", mock.Anything, mock.Anything)
}

func TestNotifySkipped(t *testing.T) {
	f := newNotificationFixture()
	store := openStore()
	ticket := entity.NewTicket(store.ID, "tok", "Sato", 2, 9, entity.SourceQR, time.Now())
	sub := subscriptionFor(ticket.ID)

	f.pushSubRepo.On("ListByTicket", mock.Anything, ticket.ID).Return([]*entity.PushSubscription{sub}, nil)
	f.pushSender.On("Send", mock.Anything, sub, mock.MatchedBy(func(msg *service.PushMessage) bool {
		return msg.Tag == "queue-skipped" && msg.RequireInteraction
	})).Return(nil)

	require.NoError(t, f.service.NotifySkipped(context.Background(), store, ticket))
	f.pushSender.AssertExpectations(t)
}

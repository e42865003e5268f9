package mocks

import (
	"context"

	"waitline/internal/domain/entity"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TicketUsecaseMock mocks usecase.TicketUsecase.
type TicketUsecaseMock struct {
	mock.Mock
}

func NewTicketUsecaseMock() *TicketUsecaseMock {
	return &TicketUsecaseMock{}
}

func (m *TicketUsecaseMock) CreateTicket(ctx context.Context, input *usecase.CreateTicketInput) (*usecase.TicketView, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TicketView), args.Error(1)
}

func (m *TicketUsecaseMock) GetTicket(ctx context.Context, token string) (*usecase.TicketView, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TicketView), args.Error(1)
}

func (m *TicketUsecaseMock) CancelTicket(ctx context.Context, token string) (*usecase.TicketView, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.TicketView), args.Error(1)
}

func (m *TicketUsecaseMock) RegisterPushSubscription(ctx context.Context, token string, input *usecase.PushSubscriptionInput) error {
	args := m.Called(ctx, token, input)
	return args.Error(0)
}

// QueueAdminUsecaseMock mocks usecase.QueueAdminUsecase.
type QueueAdminUsecaseMock struct {
	mock.Mock
}

func NewQueueAdminUsecaseMock() *QueueAdminUsecaseMock {
	return &QueueAdminUsecaseMock{}
}

func (m *QueueAdminUsecaseMock) ListTickets(ctx context.Context, storeID uuid.UUID) ([]*usecase.StaffTicket, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.StaffTicket), args.Error(1)
}

func (m *QueueAdminUsecaseMock) CallNext(ctx context.Context, storeID uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *QueueAdminUsecaseMock) CallTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, storeID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *QueueAdminUsecaseMock) SeatTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, storeID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *QueueAdminUsecaseMock) SkipTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, storeID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *QueueAdminUsecaseMock) CancelTicket(ctx context.Context, storeID, ticketID uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, storeID, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

// StoreUsecaseMock mocks usecase.StoreUsecase.
type StoreUsecaseMock struct {
	mock.Mock
}

func NewStoreUsecaseMock() *StoreUsecaseMock {
	return &StoreUsecaseMock{}
}

func (m *StoreUsecaseMock) GetStoreBySlug(ctx context.Context, slug string) (*usecase.StorePublicView, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.StorePublicView), args.Error(1)
}

func (m *StoreUsecaseMock) GenerateJoinQR(ctx context.Context, slug string) ([]byte, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *StoreUsecaseMock) GetSettings(ctx context.Context, storeID uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *StoreUsecaseMock) UpdateSettings(ctx context.Context, storeID uuid.UUID, input *usecase.UpdateStoreSettingsInput) (*entity.Store, error) {
	args := m.Called(ctx, storeID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *StoreUsecaseMock) ResetNumbering(ctx context.Context, storeID uuid.UUID) error {
	args := m.Called(ctx, storeID)
	return args.Error(0)
}

// StaffAuthUsecaseMock mocks usecase.StaffAuthUsecase.
type StaffAuthUsecaseMock struct {
	mock.Mock
}

func NewStaffAuthUsecaseMock() *StaffAuthUsecaseMock {
	return &StaffAuthUsecaseMock{}
}

func (m *StaffAuthUsecaseMock) Login(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.LoginResult), args.Error(1)
}

func (m *StaffAuthUsecaseMock) Authenticate(ctx context.Context, token string) (*entity.StaffAccount, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StaffAccount), args.Error(1)
}

func (m *StaffAuthUsecaseMock) Authorize(ctx context.Context, staffID, storeID uuid.UUID) (*entity.StaffAssignment, error) {
	args := m.Called(ctx, staffID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StaffAssignment), args.Error(1)
}

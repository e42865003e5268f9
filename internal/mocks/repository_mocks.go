// Package mocks holds hand-written testify mocks for the domain interfaces.
package mocks

import (
	"context"
	"time"

	"waitline/internal/domain/entity"
	"waitline/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// StoreRepositoryMock mocks repository.StoreRepository.
type StoreRepositoryMock struct {
	mock.Mock
}

func NewStoreRepositoryMock() *StoreRepositoryMock {
	return &StoreRepositoryMock{}
}

func (m *StoreRepositoryMock) Create(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *StoreRepositoryMock) FindBySlug(ctx context.Context, slug string) (*entity.Store, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *StoreRepositoryMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *StoreRepositoryMock) LockByID(ctx context.Context, id uuid.UUID) (*entity.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Store), args.Error(1)
}

func (m *StoreRepositoryMock) UpdateSettings(ctx context.Context, store *entity.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

func (m *StoreRepositoryMock) SetNumberingReset(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// TicketRepositoryMock mocks repository.TicketRepository.
type TicketRepositoryMock struct {
	mock.Mock
}

func NewTicketRepositoryMock() *TicketRepositoryMock {
	return &TicketRepositoryMock{}
}

func (m *TicketRepositoryMock) Create(ctx context.Context, ticket *entity.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepositoryMock) FindByToken(ctx context.Context, token string) (*entity.Ticket, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) ListByStatus(ctx context.Context, storeID uuid.UUID, status entity.TicketStatus) ([]*entity.Ticket, error) {
	args := m.Called(ctx, storeID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) ListByStore(ctx context.Context, storeID uuid.UUID) ([]*entity.Ticket, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Ticket), args.Error(1)
}

func (m *TicketRepositoryMock) CountCreatedSince(ctx context.Context, storeID uuid.UUID, since time.Time) (int64, error) {
	args := m.Called(ctx, storeID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TicketRepositoryMock) Update(ctx context.Context, ticket *entity.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *TicketRepositoryMock) MarkNotifiedNear(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *TicketRepositoryMock) MarkNotifiedNext(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// PushSubscriptionRepositoryMock mocks repository.PushSubscriptionRepository.
type PushSubscriptionRepositoryMock struct {
	mock.Mock
}

func NewPushSubscriptionRepositoryMock() *PushSubscriptionRepositoryMock {
	return &PushSubscriptionRepositoryMock{}
}

func (m *PushSubscriptionRepositoryMock) Create(ctx context.Context, sub *entity.PushSubscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *PushSubscriptionRepositoryMock) ListByTicket(ctx context.Context, ticketID uuid.UUID) ([]*entity.PushSubscription, error) {
	args := m.Called(ctx, ticketID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.PushSubscription), args.Error(1)
}

// PrintJobRepositoryMock mocks repository.PrintJobRepository.
type PrintJobRepositoryMock struct {
	mock.Mock
}

func NewPrintJobRepositoryMock() *PrintJobRepositoryMock {
	return &PrintJobRepositoryMock{}
}

func (m *PrintJobRepositoryMock) Create(ctx context.Context, job *entity.PrintJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *PrintJobRepositoryMock) FindByID(ctx context.Context, id uuid.UUID) (*entity.PrintJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PrintJob), args.Error(1)
}

func (m *PrintJobRepositoryMock) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PrintJobStatus, errorMessage string, completedAt *time.Time) error {
	args := m.Called(ctx, id, status, errorMessage, completedAt)
	return args.Error(0)
}

// StaffRepositoryMock mocks repository.StaffRepository.
type StaffRepositoryMock struct {
	mock.Mock
}

func NewStaffRepositoryMock() *StaffRepositoryMock {
	return &StaffRepositoryMock{}
}

func (m *StaffRepositoryMock) FindAccountByEmail(ctx context.Context, email string) (*entity.StaffAccount, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StaffAccount), args.Error(1)
}

func (m *StaffRepositoryMock) FindAccountByID(ctx context.Context, id uuid.UUID) (*entity.StaffAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StaffAccount), args.Error(1)
}

func (m *StaffRepositoryMock) FindAssignment(ctx context.Context, staffID, storeID uuid.UUID) (*entity.StaffAssignment, error) {
	args := m.Called(ctx, staffID, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StaffAssignment), args.Error(1)
}

// FakeTransactionManager runs the callback against a fixed repository
// factory without any real transaction.
type FakeTransactionManager struct {
	Factory repository.RepositoryFactory
}

func NewFakeTransactionManager(factory repository.RepositoryFactory) *FakeTransactionManager {
	return &FakeTransactionManager{Factory: factory}
}

func (m *FakeTransactionManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.Factory)
}

// FakeRepositoryFactory hands out the mocks it was built with.
type FakeRepositoryFactory struct {
	StoreRepo    repository.StoreRepository
	TicketRepo   repository.TicketRepository
	PrintJobRepo repository.PrintJobRepository
}

func (f *FakeRepositoryFactory) NewStoreRepository() repository.StoreRepository {
	return f.StoreRepo
}

func (f *FakeRepositoryFactory) NewTicketRepository() repository.TicketRepository {
	return f.TicketRepo
}

func (f *FakeRepositoryFactory) NewPrintJobRepository() repository.PrintJobRepository {
	return f.PrintJobRepo
}

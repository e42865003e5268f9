package mocks

import (
	"context"

	"waitline/internal/domain/entity"
	"waitline/internal/domain/service"
	"waitline/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// PushSenderMock mocks service.PushSender.
type PushSenderMock struct {
	mock.Mock
}

func NewPushSenderMock() *PushSenderMock {
	return &PushSenderMock{}
}

func (m *PushSenderMock) Send(ctx context.Context, sub *entity.PushSubscription, msg *service.PushMessage) error {
	args := m.Called(ctx, sub, msg)
	return args.Error(0)
}

// TicketPrinterMock mocks service.TicketPrinter.
type TicketPrinterMock struct {
	mock.Mock
}

func NewTicketPrinterMock() *TicketPrinterMock {
	return &TicketPrinterMock{}
}

func (m *TicketPrinterMock) Print(ctx context.Context, store *entity.Store, ticket *entity.Ticket) (entity.PrintJobStatus, error) {
	args := m.Called(ctx, store, ticket)
	return args.Get(0).(entity.PrintJobStatus), args.Error(1)
}

// QRCodeServiceMock mocks service.QRCodeService.
type QRCodeServiceMock struct {
	mock.Mock
}

func NewQRCodeServiceMock() *QRCodeServiceMock {
	return &QRCodeServiceMock{}
}

func (m *QRCodeServiceMock) GenerateJoinQR(storeSlug string) ([]byte, error) {
	args := m.Called(storeSlug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *QRCodeServiceMock) JoinURL(storeSlug string) string {
	args := m.Called(storeSlug)
	return args.String(0)
}

// PasswordHasherMock mocks service.PasswordHasher.
type PasswordHasherMock struct {
	mock.Mock
}

func NewPasswordHasherMock() *PasswordHasherMock {
	return &PasswordHasherMock{}
}

func (m *PasswordHasherMock) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasherMock) Compare(hashed, password string) error {
	args := m.Called(hashed, password)
	return args.Error(0)
}

// TokenServiceMock mocks service.TokenService.
type TokenServiceMock struct {
	mock.Mock
}

func NewTokenServiceMock() *TokenServiceMock {
	return &TokenServiceMock{}
}

func (m *TokenServiceMock) IssueStaffToken(staffID uuid.UUID) (string, error) {
	args := m.Called(staffID)
	return args.String(0), args.Error(1)
}

func (m *TokenServiceMock) VerifyStaffToken(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// NotificationUsecaseMock mocks usecase.NotificationUsecase.
type NotificationUsecaseMock struct {
	mock.Mock
}

func NewNotificationUsecaseMock() *NotificationUsecaseMock {
	return &NotificationUsecaseMock{}
}

func (m *NotificationUsecaseMock) EvaluateStore(ctx context.Context, storeID uuid.UUID) error {
	args := m.Called(ctx, storeID)
	return args.Error(0)
}

func (m *NotificationUsecaseMock) NotifySkipped(ctx context.Context, store *entity.Store, ticket *entity.Ticket) error {
	args := m.Called(ctx, store, ticket)
	return args.Error(0)
}

// PrintUsecaseMock mocks usecase.PrintUsecase.
type PrintUsecaseMock struct {
	mock.Mock
}

func NewPrintUsecaseMock() *PrintUsecaseMock {
	return &PrintUsecaseMock{}
}

func (m *PrintUsecaseMock) PrintTicket(ctx context.Context, store *entity.Store, ticket *entity.Ticket) (*entity.PrintJob, error) {
	args := m.Called(ctx, store, ticket)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PrintJob), args.Error(1)
}

func (m *PrintUsecaseMock) RetryPrintJob(ctx context.Context, jobID uuid.UUID) (*entity.PrintJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PrintJob), args.Error(1)
}

var _ usecase.NotificationUsecase = (*NotificationUsecaseMock)(nil)
var _ usecase.PrintUsecase = (*PrintUsecaseMock)(nil)

package handlers_test

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/stretchr/testify/mock"
)

// result unpacks the (pointer, error) convention of mocked calls.
func result[T any](args mock.Arguments) (T, error) {
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, transactionID string, userID string) (*dto.Versioned[domain.Transaction], error) {
	return result[*dto.Versioned[domain.Transaction]](m.Called(ctx, transactionID, userID))
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	return result[*dto.ListTransactionsResponse](m.Called(ctx, userID, params))
}
func (m *MockTransactionService) ListActivity(ctx context.Context, transactionID string, userID string, limit int) ([]domain.ActivityEntry, error) {
	return result[[]domain.ActivityEntry](m.Called(ctx, transactionID, userID, limit))
}
func (m *MockTransactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*dto.Versioned[domain.Transaction], error) {
	return result[*dto.Versioned[domain.Transaction]](m.Called(ctx, req, userID))
}
func (m *MockTransactionService) UpdateStatus(ctx context.Context, transactionID string, req dto.UpdateTransactionStatusRequest, userID string) (*dto.Versioned[domain.Transaction], error) {
	return result[*dto.Versioned[domain.Transaction]](m.Called(ctx, transactionID, req, userID))
}
func (m *MockTransactionService) Approve(ctx context.Context, transactionID string, req dto.ApproveTransactionRequest, userID string) (*dto.Versioned[domain.Approval], error) {
	return result[*dto.Versioned[domain.Approval]](m.Called(ctx, transactionID, req, userID))
}
func (m *MockTransactionService) PostCommunication(ctx context.Context, transactionID string, req dto.PostCommunicationRequest, userID string) (*dto.Versioned[domain.Communication], error) {
	return result[*dto.Versioned[domain.Communication]](m.Called(ctx, transactionID, req, userID))
}
func (m *MockTransactionService) UpdateEntity(ctx context.Context, transactionID string, kind domain.EntityKind, entityID string, req dto.EntityPatch, userID string) (*dto.Versioned[any], error) {
	return result[*dto.Versioned[any]](m.Called(ctx, transactionID, kind, entityID, req, userID))
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock ChecklistService ---
type MockChecklistService struct {
	mock.Mock
}

func (m *MockChecklistService) ListByCategory(ctx context.Context, transactionID string, userID string) (*dto.ChecklistResponse, error) {
	return result[*dto.ChecklistResponse](m.Called(ctx, transactionID, userID))
}
func (m *MockChecklistService) Progress(ctx context.Context, transactionID string, userID string) (*domain.CategoryProgress[domain.ChecklistCategory], error) {
	return result[*domain.CategoryProgress[domain.ChecklistCategory]](m.Called(ctx, transactionID, userID))
}
func (m *MockChecklistService) Readiness(ctx context.Context, transactionID string, userID string) ([]domain.ClosingChecklistItem, error) {
	return result[[]domain.ClosingChecklistItem](m.Called(ctx, transactionID, userID))
}
func (m *MockChecklistService) AddItem(ctx context.Context, transactionID string, req dto.AddChecklistItemRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	return result[*dto.Versioned[domain.ClosingChecklistItem]](m.Called(ctx, transactionID, req, userID))
}
func (m *MockChecklistService) SetStatus(ctx context.Context, transactionID, itemID string, req dto.SetChecklistStatusRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	return result[*dto.Versioned[domain.ClosingChecklistItem]](m.Called(ctx, transactionID, itemID, req, userID))
}
func (m *MockChecklistService) UpdateDependencies(ctx context.Context, transactionID, itemID string, req dto.UpdateDependenciesRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	return result[*dto.Versioned[domain.ClosingChecklistItem]](m.Called(ctx, transactionID, itemID, req, userID))
}
func (m *MockChecklistService) AddComment(ctx context.Context, transactionID, itemID string, req dto.AddCommentRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	return result[*dto.Versioned[domain.ClosingChecklistItem]](m.Called(ctx, transactionID, itemID, req, userID))
}
func (m *MockChecklistService) ResolveComment(ctx context.Context, transactionID, itemID, commentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.ClosingChecklistItem], error) {
	return result[*dto.Versioned[domain.ClosingChecklistItem]](m.Called(ctx, transactionID, itemID, commentID, req, userID))
}

var _ portssvc.ChecklistSvcFacade = (*MockChecklistService)(nil)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GetDocument(ctx context.Context, transactionID, documentID string, userID string) (*domain.TransactionDocument, error) {
	return result[*domain.TransactionDocument](m.Called(ctx, transactionID, documentID, userID))
}
func (m *MockDocumentService) ListDocuments(ctx context.Context, transactionID string, userID string) ([]domain.TransactionDocument, error) {
	return result[[]domain.TransactionDocument](m.Called(ctx, transactionID, userID))
}
func (m *MockDocumentService) ListVersions(ctx context.Context, transactionID, lineageID string, userID string) ([]domain.TransactionDocument, error) {
	return result[[]domain.TransactionDocument](m.Called(ctx, transactionID, lineageID, userID))
}
func (m *MockDocumentService) Upload(ctx context.Context, transactionID string, req dto.UploadDocumentRequest, content io.Reader, userID string) (*dto.Versioned[domain.TransactionDocument], error) {
	return result[*dto.Versioned[domain.TransactionDocument]](m.Called(ctx, transactionID, req, content, userID))
}
func (m *MockDocumentService) SetStatus(ctx context.Context, transactionID, documentID string, req dto.SetDocumentStatusRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error) {
	return result[*dto.Versioned[domain.TransactionDocument]](m.Called(ctx, transactionID, documentID, req, userID))
}
func (m *MockDocumentService) AddSignature(ctx context.Context, transactionID, documentID string, req dto.AddSignatureRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error) {
	return result[*dto.Versioned[domain.TransactionDocument]](m.Called(ctx, transactionID, documentID, req, userID))
}
func (m *MockDocumentService) AddComment(ctx context.Context, transactionID, documentID string, req dto.AddCommentRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error) {
	return result[*dto.Versioned[domain.TransactionDocument]](m.Called(ctx, transactionID, documentID, req, userID))
}
func (m *MockDocumentService) ResolveComment(ctx context.Context, transactionID, documentID, commentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.TransactionDocument], error) {
	return result[*dto.Versioned[domain.TransactionDocument]](m.Called(ctx, transactionID, documentID, commentID, req, userID))
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ListPayments(ctx context.Context, transactionID string, userID string) ([]domain.TransactionPayment, error) {
	return result[[]domain.TransactionPayment](m.Called(ctx, transactionID, userID))
}
func (m *MockPaymentService) CheckReleaseConditions(ctx context.Context, transactionID string, userID string) (*dto.ReleaseCheckResponse, error) {
	return result[*dto.ReleaseCheckResponse](m.Called(ctx, transactionID, userID))
}
func (m *MockPaymentService) SchedulePayment(ctx context.Context, transactionID string, req dto.SchedulePaymentRequest, userID string) (*dto.Versioned[domain.TransactionPayment], error) {
	return result[*dto.Versioned[domain.TransactionPayment]](m.Called(ctx, transactionID, req, userID))
}
func (m *MockPaymentService) ProcessPayment(ctx context.Context, transactionID, paymentID string, req dto.ProcessPaymentRequest, userID string) (*dto.Versioned[domain.TransactionPayment], error) {
	return result[*dto.Versioned[domain.TransactionPayment]](m.Called(ctx, transactionID, paymentID, req, userID))
}
func (m *MockPaymentService) CancelPayment(ctx context.Context, transactionID, paymentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.TransactionPayment], error) {
	return result[*dto.Versioned[domain.TransactionPayment]](m.Called(ctx, transactionID, paymentID, req, userID))
}
func (m *MockPaymentService) SetEscrow(ctx context.Context, transactionID string, req dto.SetEscrowRequest, userID string) (*dto.Versioned[domain.Escrow], error) {
	return result[*dto.Versioned[domain.Escrow]](m.Called(ctx, transactionID, req, userID))
}
func (m *MockPaymentService) UpdateReleaseCondition(ctx context.Context, transactionID, conditionID string, req dto.UpdateReleaseConditionRequest, userID string) (*dto.Versioned[domain.ReleaseCondition], error) {
	return result[*dto.Versioned[domain.ReleaseCondition]](m.Called(ctx, transactionID, conditionID, req, userID))
}
func (m *MockPaymentService) ReleaseEscrow(ctx context.Context, transactionID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.Escrow], error) {
	return result[*dto.Versioned[domain.Escrow]](m.Called(ctx, transactionID, req, userID))
}
func (m *MockPaymentService) DisputeEscrow(ctx context.Context, transactionID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.Escrow], error) {
	return result[*dto.Versioned[domain.Escrow]](m.Called(ctx, transactionID, req, userID))
}
func (m *MockPaymentService) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock PostClosingService ---
type MockPostClosingService struct {
	mock.Mock
}

func (m *MockPostClosingService) ListByType(ctx context.Context, transactionID string, userID string) (*dto.PostClosingResponse, error) {
	return result[*dto.PostClosingResponse](m.Called(ctx, transactionID, userID))
}
func (m *MockPostClosingService) Progress(ctx context.Context, transactionID string, userID string) (*domain.CategoryProgress[domain.PostClosingType], error) {
	return result[*domain.CategoryProgress[domain.PostClosingType]](m.Called(ctx, transactionID, userID))
}
func (m *MockPostClosingService) SuggestedCompletionDates(ctx context.Context, transactionID string, userID string) ([]domain.SuggestedCompletion, error) {
	return result[[]domain.SuggestedCompletion](m.Called(ctx, transactionID, userID))
}
func (m *MockPostClosingService) Readiness(ctx context.Context, transactionID string, userID string) ([]domain.PostClosingItem, error) {
	return result[[]domain.PostClosingItem](m.Called(ctx, transactionID, userID))
}
func (m *MockPostClosingService) UpdateDependencies(ctx context.Context, transactionID, itemID string, req dto.UpdateDependenciesRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error) {
	return result[*dto.Versioned[domain.PostClosingItem]](m.Called(ctx, transactionID, itemID, req, userID))
}
func (m *MockPostClosingService) AddItem(ctx context.Context, transactionID string, req dto.AddPostClosingItemRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error) {
	return result[*dto.Versioned[domain.PostClosingItem]](m.Called(ctx, transactionID, req, userID))
}
func (m *MockPostClosingService) SetStatus(ctx context.Context, transactionID, itemID string, req dto.SetPostClosingStatusRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error) {
	return result[*dto.Versioned[domain.PostClosingItem]](m.Called(ctx, transactionID, itemID, req, userID))
}
func (m *MockPostClosingService) AddComment(ctx context.Context, transactionID, itemID string, req dto.AddCommentRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error) {
	return result[*dto.Versioned[domain.PostClosingItem]](m.Called(ctx, transactionID, itemID, req, userID))
}
func (m *MockPostClosingService) ResolveComment(ctx context.Context, transactionID, itemID, commentID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.PostClosingItem], error) {
	return result[*dto.Versioned[domain.PostClosingItem]](m.Called(ctx, transactionID, itemID, commentID, req, userID))
}

var _ portssvc.PostClosingSvcFacade = (*MockPostClosingService)(nil)

// --- Mock TimelineService ---
type MockTimelineService struct {
	mock.Mock
}

func (m *MockTimelineService) AddKeyDate(ctx context.Context, transactionID string, req dto.AddKeyDateRequest, userID string) (*dto.Versioned[domain.KeyDate], error) {
	return result[*dto.Versioned[domain.KeyDate]](m.Called(ctx, transactionID, req, userID))
}
func (m *MockTimelineService) ListKeyDates(ctx context.Context, transactionID string, userID string) (*dto.TimelineResponse, error) {
	return result[*dto.TimelineResponse](m.Called(ctx, transactionID, userID))
}
func (m *MockTimelineService) CompleteKeyDate(ctx context.Context, transactionID, keyDateID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.KeyDate], error) {
	return result[*dto.Versioned[domain.KeyDate]](m.Called(ctx, transactionID, keyDateID, req, userID))
}
func (m *MockTimelineService) CancelKeyDate(ctx context.Context, transactionID, keyDateID string, req dto.VersionedRequest, userID string) (*dto.Versioned[domain.KeyDate], error) {
	return result[*dto.Versioned[domain.KeyDate]](m.Called(ctx, transactionID, keyDateID, req, userID))
}
func (m *MockTimelineService) ClosingCountdown(ctx context.Context, transactionID string, userID string) (*domain.ClosingCountdown, error) {
	return result[*domain.ClosingCountdown](m.Called(ctx, transactionID, userID))
}

var _ portssvc.TimelineSvcFacade = (*MockTimelineService)(nil)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) BuildDashboard(ctx context.Context, transactionID string, userID string) (*domain.Dashboard, error) {
	return result[*domain.Dashboard](m.Called(ctx, transactionID, userID))
}

var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)

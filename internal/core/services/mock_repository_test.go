package services_test

import (
	"context"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock type for the TransactionRepositoryFacade interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsForUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, userID, limit, nextToken)
	var token *string
	if t := args.Get(1); t != nil {
		token = t.(*string)
	}
	if args.Get(0) == nil {
		return nil, token, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), token, args.Error(2)
}

func (m *MockTransactionRepository) ListTransactionIDsByStatus(ctx context.Context, statuses []domain.TransactionStatus) ([]string, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, activity domain.ActivityEntry) error {
	args := m.Called(ctx, txn, activity)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64, activity []domain.ActivityEntry) error {
	args := m.Called(ctx, txn, expectedVersion, activity)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListActivity(ctx context.Context, transactionID string, limit int) ([]domain.ActivityEntry, error) {
	args := m.Called(ctx, transactionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityEntry), args.Error(1)
}

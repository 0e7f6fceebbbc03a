package services

import (
	"context"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
	"github.com/SscSPs/closing_tracker/internal/dto"
)

// TransactionReaderSvc defines read operations on transaction records.
type TransactionReaderSvc interface {
	// GetTransaction returns the aggregate with time-derived statuses applied.
	GetTransaction(ctx context.Context, transactionID string, userID string) (*dto.Versioned[domain.Transaction], error)

	// ListTransactions lists the caller's transactions with token-based pagination.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// ListActivity returns the latest audit entries, newest first.
	ListActivity(ctx context.Context, transactionID string, userID string, limit int) ([]domain.ActivityEntry, error)
}

// TransactionWriterSvc defines mutations of the transaction record itself.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*dto.Versioned[domain.Transaction], error)
	UpdateStatus(ctx context.Context, transactionID string, req dto.UpdateTransactionStatusRequest, userID string) (*dto.Versioned[domain.Transaction], error)
	Approve(ctx context.Context, transactionID string, req dto.ApproveTransactionRequest, userID string) (*dto.Versioned[domain.Approval], error)
	PostCommunication(ctx context.Context, transactionID string, req dto.PostCommunicationRequest, userID string) (*dto.Versioned[domain.Communication], error)

	// UpdateEntity patches non-status fields of a child entity identified by kind and id.
	UpdateEntity(ctx context.Context, transactionID string, kind domain.EntityKind, entityID string, req dto.EntityPatch, userID string) (*dto.Versioned[any], error)
}

// TransactionSvcFacade combines all transaction record operations.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}

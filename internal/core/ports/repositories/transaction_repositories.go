package repositories

import (
	"context"

	"github.com/SscSPs/closing_tracker/internal/core/domain"
)

// TransactionReader defines read operations for transaction aggregates.
type TransactionReader interface {
	// FindTransactionByID loads the full aggregate. Returns apperrors.ErrNotFound for unknown ids.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsForUser lists the transactions a user is a party of (or created), newest first,
	// using token-based pagination. It returns the transactions, a token for the next page, and an error.
	ListTransactionsForUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListTransactionIDsByStatus returns the ids of every transaction in one of the given statuses.
	ListTransactionIDsByStatus(ctx context.Context, statuses []domain.TransactionStatus) ([]string, error)
}

// TransactionWriter defines write operations for transaction aggregates.
type TransactionWriter interface {
	// SaveTransaction inserts a new aggregate together with its first activity entry.
	SaveTransaction(ctx context.Context, txn domain.Transaction, activity domain.ActivityEntry) error

	// UpdateTransaction writes the aggregate only if the stored version still equals expectedVersion,
	// appending the activity entries in the same database transaction. A moved row yields apperrors.ErrConflict.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64, activity []domain.ActivityEntry) error
}

// DefaultActivityLimit caps ListActivity when the caller passes no positive limit.
const DefaultActivityLimit = 50

// ActivityReader reads the append-only activity log.
type ActivityReader interface {
	// ListActivity returns the latest entries of a transaction, newest first.
	ListActivity(ctx context.Context, transactionID string, limit int) ([]domain.ActivityEntry, error)
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	ActivityReader
}

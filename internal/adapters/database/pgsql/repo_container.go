package pgsql

import (
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres transaction store with the given document storage.
func NewRepositoryProvider(dbPool *pgxpool.Pool, storage portsrepo.DocumentStorage) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		DocumentStorage: storage,
	}
}

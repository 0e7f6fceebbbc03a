package memory

import (
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
)

// NewRepositoryProvider wires an in-memory transaction store with the given document storage.
func NewRepositoryProvider(storage portsrepo.DocumentStorage) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: NewTransactionRepository(),
		DocumentStorage: storage,
	}
}

// Package memory keeps transaction aggregates in process memory. It backs tests and
// single-node deployments started with STORAGE_BACKEND=memory.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/closing_tracker/internal/models"
	"github.com/SscSPs/closing_tracker/internal/utils/mapping"
	"github.com/SscSPs/closing_tracker/internal/utils/pagination"
)

// TransactionRepository stores each aggregate as the same JSON document the
// Postgres details column holds, so every read hands out an independent copy.
type TransactionRepository struct {
	mu       sync.RWMutex
	rows     map[string][]byte
	activity map[string][]domain.ActivityEntry
}

// NewTransactionRepository creates an empty store.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		rows:     make(map[string][]byte),
		activity: make(map[string][]domain.ActivityEntry),
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func encode(txn domain.Transaction) ([]byte, error) {
	raw, err := json.Marshal(mapping.ToModelTransaction(txn))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to encode transaction "+txn.TransactionID, err)
	}
	return raw, nil
}

func decode(raw []byte) (*domain.Transaction, error) {
	var m models.Transaction
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode transaction", err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	raw, ok := r.rows[transactionID]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction not found: " + transactionID)
	}
	return decode(raw)
}

func (r *TransactionRepository) ListTransactionsForUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	var (
		hasCursor  bool
		cursorTime time.Time
		cursorID   string
	)
	if nextToken != nil && *nextToken != "" {
		t, id, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		hasCursor, cursorTime, cursorID = true, t, id
	}

	r.mu.RLock()
	visible := make([]domain.Transaction, 0)
	for _, raw := range r.rows {
		txn, err := decode(raw)
		if err != nil {
			r.mu.RUnlock()
			return nil, nil, err
		}
		if txn.CreatedBy != userID && txn.PartyForUser(userID) == nil {
			continue
		}
		if hasCursor && !pagination.After(txn.CreatedAt, txn.TransactionID, cursorTime, cursorID) {
			continue
		}
		visible = append(visible, *txn)
	}
	r.mu.RUnlock()

	sort.Slice(visible, func(i, j int) bool {
		a, b := visible[i], visible[j]
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.TransactionID > b.TransactionID
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	if len(visible) <= limit {
		return visible, nil, nil
	}
	page := visible[:limit]
	last := page[limit-1]
	token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
	return page, &token, nil
}

func (r *TransactionRepository) ListTransactionIDsByStatus(ctx context.Context, statuses []domain.TransactionStatus) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := make(map[domain.TransactionStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0)
	for id, raw := range r.rows {
		txn, err := decode(raw)
		if err != nil {
			return nil, err
		}
		if wanted[txn.Status] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, activity domain.ActivityEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := encode(txn)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rows[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	r.rows[txn.TransactionID] = raw
	r.activity[txn.TransactionID] = append(r.activity[txn.TransactionID], activity)
	return nil
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64, activity []domain.ActivityEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := encode(txn)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.rows[txn.TransactionID]
	if !ok {
		return apperrors.NewNotFoundError("transaction not found: " + txn.TransactionID)
	}
	var stored struct {
		Version int64 `json:"version"`
	}
	if err := json.Unmarshal(current, &stored); err != nil {
		return apperrors.NewAppError(500, "failed to decode transaction version", err)
	}
	if stored.Version != expectedVersion {
		return apperrors.NewConflictError(fmt.Sprintf("transaction %s moved to version %d", txn.TransactionID, stored.Version))
	}
	r.rows[txn.TransactionID] = raw
	r.activity[txn.TransactionID] = append(r.activity[txn.TransactionID], activity...)
	return nil
}

func (r *TransactionRepository) ListActivity(ctx context.Context, transactionID string, limit int) ([]domain.ActivityEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = portsrepo.DefaultActivityLimit
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.activity[transactionID]
	out := make([]domain.ActivityEntry, 0, min(limit, len(entries)))
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

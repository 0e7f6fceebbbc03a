package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/closing_tracker/internal/dto"
	"github.com/SscSPs/closing_tracker/internal/middleware"
)

// change describes what a mutation did, for the activity log.
type change struct {
	action   string
	kind     domain.EntityKind
	entityID string
	summary  string
	// noop skips the write. Idempotent repeats set it.
	noop bool
}

type applyFunc func(txn *domain.Transaction, scope domain.RequestScope, now time.Time) (change, error)

// recordStore is the load-check-apply-write cycle every tracker shares.
type recordStore struct {
	BaseService
	repo portsrepo.TransactionRepositoryFacade
	cfg  serviceConfig
}

func newRecordStore(repo portsrepo.TransactionRepositoryFacade, options []ServiceOption) recordStore {
	return recordStore{repo: repo, cfg: buildConfig(options)}
}

// load fetches a transaction the caller may see, with time-derived statuses applied.
func (r *recordStore) load(ctx context.Context, transactionID, userID string) (*domain.Transaction, domain.RequestScope, error) {
	txn, err := r.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			r.LogError(ctx, err, "Failed to load transaction", slog.String("transaction_id", transactionID))
		}
		return nil, domain.RequestScope{}, err
	}
	scope, err := domain.ResolveScope(txn, userID, middleware.IsAdminFromCtx(ctx))
	if err != nil {
		r.LogDebug(ctx, "Transaction hidden from non-party", slog.String("transaction_id", transactionID), slog.String("user_id", userID))
		return nil, domain.RequestScope{}, err
	}
	txn.DeriveStatuses(r.cfg.now())
	return txn, scope, nil
}

// mutate loads the transaction, checks the caller's expected version, applies fn and writes
// the result conditionally on the loaded version together with one activity entry.
func (r *recordStore) mutate(ctx context.Context, transactionID, userID string, req dto.VersionedRequest, fn applyFunc) (*domain.Transaction, error) {
	txn, err := r.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			r.LogError(ctx, err, "Failed to load transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	scope, err := domain.ResolveScope(txn, userID, middleware.IsAdminFromCtx(ctx))
	if err != nil {
		return nil, err
	}
	if req.ExpectedVersion != nil && *req.ExpectedVersion != txn.Version {
		return nil, apperrors.NewConflictError(fmt.Sprintf("transaction %s is at version %d, request expected %d", transactionID, txn.Version, *req.ExpectedVersion))
	}

	loadedVersion := txn.Version
	now := r.cfg.now()
	ch, err := fn(txn, scope, now)
	if err != nil {
		r.LogDebug(ctx, "Mutation rejected", slog.String("transaction_id", transactionID), slog.String("error", err.Error()))
		return nil, err
	}
	if ch.noop {
		txn.DeriveStatuses(now)
		return txn, nil
	}

	txn.Touch(userID, now)
	entry := domain.ActivityEntry{
		ActivityID:    r.cfg.newID(),
		TransactionID: txn.TransactionID,
		ActorID:       userID,
		Action:        ch.action,
		EntityKind:    ch.kind,
		EntityID:      ch.entityID,
		Summary:       ch.summary,
		Version:       txn.Version,
		OccurredAt:    now,
	}
	if err := r.repo.UpdateTransaction(ctx, *txn, loadedVersion, []domain.ActivityEntry{entry}); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			r.LogInfo(ctx, "Concurrent update detected", slog.String("transaction_id", transactionID), slog.Int64("version", loadedVersion))
		} else {
			r.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	r.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.String("action", ch.action),
		slog.String("entity_id", ch.entityID),
		slog.Int64("version", txn.Version))
	txn.DeriveStatuses(now)
	return txn, nil
}

func (r *recordStore) newComment(text, userID string, now time.Time) (domain.Comment, error) {
	return domain.NewComment(r.cfg.newID(), userID, text, now)
}

// requireParty rejects callers that can see a transaction without taking part in it.
func requireParty(scope domain.RequestScope) error {
	if scope.IsAdmin || scope.Role != "" {
		return nil
	}
	return fmt.Errorf("%w: user %s is not a party of transaction %s", apperrors.ErrForbidden, scope.UserID, scope.TransactionID)
}

func isConflict(err error) bool {
	return errors.Is(err, apperrors.ErrConflict)
}

func versioned[T any](data T, txn *domain.Transaction) *dto.Versioned[T] {
	return &dto.Versioned[T]{Data: data, Version: txn.Version}
}

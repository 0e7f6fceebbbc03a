package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*BaseRepository)(nil)

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, wrapDBError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return wrapDBError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// wrapDBError marks connection-level failures as transient so callers may retry them.
func wrapDBError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 40 covers serialization failures and deadlocks, 08 connection exceptions.
		if code := pgErr.Code; len(code) >= 2 && (code[:2] == "40" || code[:2] == "08") {
			return apperrors.NewAppError(503, msg, errors.Join(apperrors.ErrTransient, err))
		}
		return apperrors.NewAppError(500, msg, err)
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return apperrors.NewAppError(503, msg, errors.Join(apperrors.ErrTransient, err))
	}
	return apperrors.NewAppError(500, msg, err)
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/closing_tracker/internal/apperrors"
	"github.com/SscSPs/closing_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/closing_tracker/internal/models"
	"github.com/SscSPs/closing_tracker/internal/utils/mapping"
	"github.com/SscSPs/closing_tracker/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, offer_id, listing_id, buyer_id, seller_id, status, transaction_type,
	total_value, currency_code, closing_date, requires_approval, details, version,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a repository for transaction aggregates and their activity log.
func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OfferID,
		&m.ListingID,
		&m.BuyerID,
		&m.SellerID,
		&m.Status,
		&m.TransactionType,
		&m.TotalValue,
		&m.CurrencyCode,
		&m.ClosingDate,
		&m.RequiresApproval,
		&m.Details,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindTransactionByID retrieves a transaction aggregate by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction not found: " + transactionID)
		}
		return nil, wrapDBError("failed to query transaction "+transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// ListTransactionsForUser lists transactions the user created or is a party of, newest first.
func (r *PgxTransactionRepository) ListTransactionsForUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE (created_by = $1 OR details->'parties' @> jsonb_build_array(jsonb_build_object('userID', $1::text)))`
	orderByClause := `ORDER BY created_at DESC, transaction_id DESC`
	args := []any{userID}

	query := baseQuery
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeCursor(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, lastCreatedAt, lastID)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, wrapDBError("failed to list transactions for user "+userID, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, wrapDBError("error iterating transaction rows", err)
	}

	var nextTokenVal *string
	if len(results) > limit {
		results = results[:limit]
		last := results[limit-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		nextTokenVal = &token
	}

	txns := make([]domain.Transaction, len(results))
	for i, m := range results {
		txns[i] = mapping.ToDomainTransaction(m)
	}
	return txns, nextTokenVal, nil
}

// ListTransactionIDsByStatus returns ids of transactions in any of the given statuses.
func (r *PgxTransactionRepository) ListTransactionIDsByStatus(ctx context.Context, statuses []domain.TransactionStatus) ([]string, error) {
	raw := make([]string, len(statuses))
	for i, s := range statuses {
		raw[i] = string(s)
	}
	rows, err := r.Pool.Query(ctx, `SELECT transaction_id FROM transactions WHERE status = ANY($1) ORDER BY transaction_id;`, raw)
	if err != nil {
		return nil, wrapDBError("failed to list transactions by status", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapDBError("failed to collect transaction ids", err)
	}
	return ids, nil
}

// SaveTransaction inserts a new aggregate and its first activity entry in one database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, activity domain.ActivityEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	query := `INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`
	_, err = tx.Exec(ctx, query,
		m.TransactionID, m.OfferID, m.ListingID, m.BuyerID, m.SellerID, m.Status, m.TransactionType,
		m.TotalValue, m.CurrencyCode, m.ClosingDate, m.RequiresApproval, m.Details, m.Version,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, m.TransactionID)
		}
		return wrapDBError("failed to insert transaction", err)
	}

	if err := insertActivity(ctx, tx, []domain.ActivityEntry{activity}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdateTransaction writes the aggregate when the stored version still matches expectedVersion.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64, activity []domain.ActivityEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET status = $2, total_value = $3, closing_date = $4, requires_approval = $5, details = $6,
			version = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1 AND version = $10;
	`
	tag, err := tx.Exec(ctx, query,
		m.TransactionID, m.Status, m.TotalValue, m.ClosingDate, m.RequiresApproval, m.Details,
		m.Version, m.LastUpdatedAt, m.LastUpdatedBy, expectedVersion,
	)
	if err != nil {
		return wrapDBError("failed to update transaction "+m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		var current int64
		err := tx.QueryRow(ctx, `SELECT version FROM transactions WHERE transaction_id = $1;`, m.TransactionID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("transaction not found: " + m.TransactionID)
		}
		if err != nil {
			return wrapDBError("failed to read transaction version", err)
		}
		return apperrors.NewConflictError(fmt.Sprintf("transaction %s moved to version %d", m.TransactionID, current))
	}

	if err := insertActivity(ctx, tx, activity); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func insertActivity(ctx context.Context, tx pgx.Tx, entries []domain.ActivityEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO transaction_activity (activity_id, transaction_id, actor_id, action, entity_kind, entity_id, summary, version, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		a := mapping.ToModelActivity(e)
		batch.Queue(query, a.ActivityID, a.TransactionID, a.ActorID, a.Action, a.EntityKind, a.EntityID, a.Summary, a.Version, a.OccurredAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return wrapDBError("failed to insert activity", err)
	}
	return nil
}

// ListActivity returns the latest activity entries of a transaction.
func (r *PgxTransactionRepository) ListActivity(ctx context.Context, transactionID string, limit int) ([]domain.ActivityEntry, error) {
	query := `
		SELECT activity_id, transaction_id, actor_id, action, entity_kind, entity_id, summary, version, occurred_at
		FROM transaction_activity
		WHERE transaction_id = $1
		ORDER BY version DESC, occurred_at DESC, activity_id DESC
		LIMIT $2;
	`
	if limit <= 0 {
		limit = portsrepo.DefaultActivityLimit
	}
	rows, err := r.Pool.Query(ctx, query, transactionID, limit)
	if err != nil {
		return nil, wrapDBError("failed to query activity for transaction "+transactionID, err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.ActivityEntry])
	if err != nil {
		return nil, wrapDBError("failed to scan activity rows", err)
	}
	return mapping.ToDomainActivitySlice(entries), nil
}

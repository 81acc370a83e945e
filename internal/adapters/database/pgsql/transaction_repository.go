package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
)

// PgxTransactionRepository persists transaction headers and line items.
type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new repository for transaction data.
func NewTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, transaction_number, transaction_type, user_id, party_id,
	transaction_date, amount, balance_due, due_date, status, is_bnpl, reference,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveTransaction persists a new transaction header.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.TransactionNumber,
		txn.TransactionType,
		txn.UserID,
		txn.PartyID,
		txn.TransactionDate,
		txn.Amount,
		txn.BalanceDue,
		txn.DueDate,
		txn.Status,
		txn.IsBNPL,
		txn.Reference,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction number %s", apperrors.ErrDuplicate, txn.TransactionNumber)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// SaveTransactionItem persists a single line item. Items are written
// independently of the header and of each other; there is no multi-item
// transaction here, so a failure partway through a batch of inserts leaves
// the earlier rows in place.
func (r *PgxTransactionRepository) SaveTransactionItem(ctx context.Context, item domain.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (transaction_item_id, transaction_id, item_id, quantity, rate,
			amount, tax_rate, tax_amount, total_amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		item.TransactionItemID,
		item.TransactionID,
		item.ItemID,
		item.Quantity,
		item.Rate,
		item.Amount,
		item.TaxRate,
		item.TaxAmount,
		item.TotalAmount,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction item %s: %w", item.TransactionItemID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction header by its identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	row := r.pool.QueryRow(ctx, query, transactionID)
	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// FindTransactionItemsByTransactionID retrieves the line items owned by a transaction.
func (r *PgxTransactionRepository) FindTransactionItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionItem, error) {
	query := `
		SELECT transaction_item_id, transaction_id, item_id, quantity, rate,
			amount, tax_rate, tax_amount, total_amount, created_at, created_by, last_updated_at, last_updated_by
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY created_at, transaction_item_id;
	`
	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	items := []domain.TransactionItem{}
	for rows.Next() {
		var item domain.TransactionItem
		if err := rows.Scan(
			&item.TransactionItemID,
			&item.TransactionID,
			&item.ItemID,
			&item.Quantity,
			&item.Rate,
			&item.Amount,
			&item.TaxRate,
			&item.TaxAmount,
			&item.TotalAmount,
			&item.CreatedAt,
			&item.CreatedBy,
			&item.LastUpdatedAt,
			&item.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan item row for transaction %s: %w", transactionID, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows for transaction %s: %w", transactionID, err)
	}
	return items, nil
}

// ListTransactionsByUser retrieves a user's transactions, narrowed by the filter.
func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, userID string, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`)
	args := []interface{}{userID}

	if filter.Type != nil {
		args = append(args, *filter.Type)
		sb.WriteString(" AND transaction_type = $" + strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		sb.WriteString(" AND status = $" + strconv.Itoa(len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		sb.WriteString(" AND transaction_date >= $" + strconv.Itoa(len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		sb.WriteString(" AND transaction_date <= $" + strconv.Itoa(len(args)))
	}
	sb.WriteString(" ORDER BY transaction_date DESC, created_at DESC;")

	return r.queryTransactions(ctx, sb.String(), args...)
}

// FindTransactionsByPartyID retrieves all transactions involving a party.
func (r *PgxTransactionRepository) FindTransactionsByPartyID(ctx context.Context, partyID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE party_id = $1 ORDER BY transaction_date DESC;`
	return r.queryTransactions(ctx, query, partyID)
}

// FindOpenTransactions retrieves a user's transactions of the given type with
// an outstanding status.
func (r *PgxTransactionRepository) FindOpenTransactions(ctx context.Context, userID string, txnType domain.TransactionType) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND transaction_type = $2 AND status IN ($3, $4, $5)
		ORDER BY due_date NULLS LAST;
	`
	return r.queryTransactions(ctx, query, userID, txnType,
		domain.StatusPending, domain.StatusOverdue, domain.StatusPartiallyPaid)
}

// UpdateTransaction updates an existing header; ErrNotFound if absent.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET transaction_date = $2, amount = $3, balance_due = $4, due_date = $5,
			status = $6, reference = $7, last_updated_at = $8, last_updated_by = $9
		WHERE transaction_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.TransactionDate,
		txn.Amount,
		txn.BalanceDue,
		txn.DueDate,
		txn.Status,
		txn.Reference,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction. Line items go with it via the
// ON DELETE CASCADE foreign key.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.TransactionNumber,
		&txn.TransactionType,
		&txn.UserID,
		&txn.PartyID,
		&txn.TransactionDate,
		&txn.Amount,
		&txn.BalanceDue,
		&txn.DueDate,
		&txn.Status,
		&txn.IsBNPL,
		&txn.Reference,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// ListTransactionsFilter narrows a transaction listing. Nil fields are not
// applied; set fields filter by plain equality, dates by inclusive range.
type ListTransactionsFilter struct {
	Type      *domain.TransactionType
	Status    *domain.TransactionStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction header by its identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionItemsByTransactionID retrieves the line items owned by a transaction.
	FindTransactionItemsByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionItem, error)

	// ListTransactionsByUser retrieves a user's transactions, narrowed by the filter.
	ListTransactionsByUser(ctx context.Context, userID string, filter ListTransactionsFilter) ([]domain.Transaction, error)

	// FindTransactionsByPartyID retrieves all transactions involving a party.
	FindTransactionsByPartyID(ctx context.Context, partyID string) ([]domain.Transaction, error)

	// FindOpenTransactions retrieves a user's transactions of the given type
	// whose status is pending, overdue or partially_paid.
	FindOpenTransactions(ctx context.Context, userID string, txnType domain.TransactionType) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction header.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveTransactionItem persists a single line item. Items are written
	// independently; there is no multi-item atomicity.
	SaveTransactionItem(ctx context.Context, item domain.TransactionItem) error

	// UpdateTransaction updates an existing header; ErrNotFound if absent.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction and its line items.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

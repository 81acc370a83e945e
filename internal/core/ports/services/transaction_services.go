package services

import (
	"context"

	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
	"github.com/bizbookshq/biz_books_app/internal/dto"
)

// TransactionSvcFacade defines the transaction lifecycle operations exposed to handlers.
type TransactionSvcFacade interface {
	// CreateTransaction runs the full creation lifecycle: validate, persist
	// the header, persist each line item, compute totals and patch the header
	// so amount and balance due equal the computed grand total.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)

	// GetTransactionByID retrieves a transaction with items and totals.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*dto.TransactionResponse, error)

	// ListTransactions retrieves the user's transactions narrowed by the filter.
	ListTransactions(ctx context.Context, userID string, filter portsrepo.ListTransactionsFilter) ([]dto.TransactionResponse, error)

	// UpdateTransaction applies a partial header update.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)

	// DeleteTransaction removes a transaction and its line items.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

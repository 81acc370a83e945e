package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
	"github.com/bizbookshq/biz_books_app/internal/utils/gst"
	"github.com/bizbookshq/biz_books_app/internal/utils/numeric"
)

// transactionService orchestrates the transaction creation lifecycle and the
// read/update/delete operations around it.
//
// Creation is a linear multi-step write: header first, then each line item
// independently, then a header patch with the computed totals. The record
// store offers per-record atomicity only, so a failure between steps leaves a
// header without matching items or items without a finalized header. That gap
// is surfaced (ErrPartialWrite), never rolled back behind the caller's back.
type transactionService struct {
	txnRepo   portsrepo.TransactionRepositoryFacade
	partyRepo portsrepo.PartyReader
	bnplSvc   portssvc.BnplSvcFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, partyRepo portsrepo.PartyReader, bnplSvc portssvc.BnplSvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:   txnRepo,
		partyRepo: partyRepo,
		bnplSvc:   bnplSvc,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction implements the creation lifecycle:
// validate -> persist header -> persist line items -> compute totals -> patch header.
// A newly created transaction always starts fully unpaid: amount and balance
// due both end up equal to the computed grand total, whatever the caller sent.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// --- Validation (nothing is persisted past this block on failure) ---
	party, err := s.partyRepo.FindPartyByID(ctx, req.Transaction.PartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: party %s does not exist", apperrors.ErrValidation, req.Transaction.PartyID)
		}
		logger.Error("Failed to fetch party for transaction creation", slog.String("error", err.Error()), slog.String("party_id", req.Transaction.PartyID))
		return nil, fmt.Errorf("failed to fetch party: %w", err)
	}
	if party.UserID != userID {
		// Obscure existence of other users' parties.
		return nil, fmt.Errorf("%w: party %s does not exist", apperrors.ErrValidation, req.Transaction.PartyID)
	}
	for i, item := range req.Items {
		if item.ItemID == "" {
			return nil, fmt.Errorf("%w: line item %d is missing itemID", apperrors.ErrValidation, i)
		}
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	status := req.Transaction.Status
	if status == "" {
		status = domain.StatusPending
		if req.Transaction.IsBNPL {
			status = domain.StatusUsingBNPL
		}
	}

	txn := domain.Transaction{
		TransactionID:     transactionID,
		TransactionNumber: req.Transaction.TransactionNumber,
		TransactionType:   req.Transaction.TransactionType,
		UserID:            userID,
		PartyID:           party.PartyID,
		TransactionDate:   req.Transaction.TransactionDate,
		// Provisional; overwritten with the computed grand total below.
		Amount:     numeric.LenientDecimal(req.Transaction.Amount),
		BalanceDue: numeric.LenientDecimal(req.Transaction.BalanceDue),
		DueDate:    req.Transaction.DueDate,
		Status:     status,
		IsBNPL:     req.Transaction.IsBNPL,
		Reference:  req.Transaction.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	// --- Persist header ---
	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		logger.Error("Failed to save transaction header", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	// --- Persist line items, one by one ---
	items := make([]domain.TransactionItem, 0, len(req.Items))
	for i, itemReq := range req.Items {
		item := itemReq.ToDomain()
		item.TransactionItemID = uuid.NewString()
		item.TransactionID = transactionID
		item.AuditFields = txn.AuditFields
		gst.FillLineAmounts(&item)

		if err := s.txnRepo.SaveTransactionItem(ctx, item); err != nil {
			logger.Error("Line item insertion failed mid-loop",
				slog.String("transaction_id", transactionID),
				slog.Int("persisted", i),
				slog.Int("expected", len(req.Items)),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("%w: persisted %d of %d line items for transaction %s: %w",
				apperrors.ErrPartialWrite, i, len(req.Items), transactionID, err)
		}
		items = append(items, item)
	}

	// --- Compute totals and patch the header ---
	totals := gst.ComputeTotals(items, party.State)
	txn.Amount = totals.GrandTotal
	txn.BalanceDue = totals.GrandTotal
	txn.LastUpdatedAt = time.Now().UTC()

	if err := s.txnRepo.UpdateTransaction(ctx, txn); err != nil {
		logger.Error("Failed to finalize transaction header", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("%w: header for transaction %s was not finalized: %w", apperrors.ErrPartialWrite, transactionID, err)
	}

	if txn.IsBNPL && s.bnplSvc != nil {
		limitType := domain.BnplSales
		if txn.TransactionType == domain.PurchaseBill {
			limitType = domain.BnplPurchase
		}
		if _, err := s.bnplSvc.RecordUsage(ctx, userID, party.PartyID, limitType, totals.GrandTotal); err != nil {
			logger.Error("Failed to record BNPL usage for transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
			return nil, fmt.Errorf("failed to record BNPL usage: %w", err)
		}
	}

	logger.Info("Transaction created successfully",
		slog.String("transaction_id", transactionID),
		slog.Int("item_count", len(items)),
		slog.String("grand_total", totals.GrandTotal.String()))

	resp := dto.ToTransactionResponse(&txn, items, &totals, now)
	return &resp, nil
}

// GetTransactionByID retrieves a transaction with its items and totals.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	items, err := s.txnRepo.FindTransactionItemsByTransactionID(ctx, transactionID)
	if err != nil {
		logger.Error("Failed to fetch line items", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to retrieve line items for transaction %s: %w", transactionID, err)
	}

	partyState := ""
	if party, err := s.partyRepo.FindPartyByID(ctx, txn.PartyID); err == nil {
		partyState = party.State
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to fetch party for totals", slog.String("error", err.Error()), slog.String("party_id", txn.PartyID))
		return nil, fmt.Errorf("failed to fetch party %s: %w", txn.PartyID, err)
	}

	totals := gst.ComputeTotals(items, partyState)
	resp := dto.ToTransactionResponse(txn, items, &totals, time.Now().UTC())
	return &resp, nil
}

// ListTransactions retrieves the user's transactions narrowed by the filter.
// Listings carry headers with display status only; items and totals are
// fetched per transaction.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, filter portsrepo.ListTransactionsFilter) ([]dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID, filter)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	now := time.Now().UTC()
	responses := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = dto.ToTransactionResponse(&txns[i], nil, nil, now)
	}

	logger.Debug("Transactions listed", slog.Int("count", len(responses)))
	return responses, nil
}

// UpdateTransaction applies a partial header update.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.findOwnedTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
		updated = true
	}
	if req.DueDate != nil {
		txn.DueDate = req.DueDate
		updated = true
	}
	if req.Status != nil {
		txn.Status = *req.Status
		updated = true
	}
	if req.BalanceDue != nil {
		txn.BalanceDue = numeric.LenientDecimal(*req.BalanceDue)
		updated = true
	}
	if req.Reference != nil {
		txn.Reference = *req.Reference
		updated = true
	}

	if !updated {
		logger.Debug("No fields provided for transaction update", slog.String("transaction_id", transactionID))
		resp := dto.ToTransactionResponse(txn, nil, nil, time.Now().UTC())
		return &resp, nil
	}

	now := time.Now().UTC()
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		logger.Error("Failed to save transaction update", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to save transaction update: %w", err)
	}

	logger.Info("Transaction updated", slog.String("transaction_id", transactionID))
	resp := dto.ToTransactionResponse(txn, nil, nil, now)
	return &resp, nil
}

// DeleteTransaction removes a transaction together with its line items.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.findOwnedTransaction(ctx, userID, transactionID); err != nil {
		return err
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// findOwnedTransaction fetches a transaction and verifies ownership,
// reporting ErrNotFound for other users' transactions to obscure existence.
func (s *transactionService) findOwnedTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

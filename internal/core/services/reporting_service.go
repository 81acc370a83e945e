package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
	"github.com/bizbookshq/biz_books_app/internal/utils/ageing"
)

// reportingService produces receivables/payables ageing reports and the
// by-status transactions summary.
type reportingService struct {
	txnRepo portsrepo.TransactionReader
}

// NewReportingService creates a new reporting service.
func NewReportingService(txnRepo portsrepo.TransactionReader) portssvc.ReportingSvcFacade {
	return &reportingService{txnRepo: txnRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// ReceivablesAgeing buckets open sales invoice balances by days overdue.
func (s *reportingService) ReceivablesAgeing(ctx context.Context, userID string, now time.Time) (domain.AgeingReport, error) {
	return s.ageingFor(ctx, userID, domain.SalesInvoice, now)
}

// PayablesAgeing buckets open purchase bill balances by days overdue.
func (s *reportingService) PayablesAgeing(ctx context.Context, userID string, now time.Time) (domain.AgeingReport, error) {
	return s.ageingFor(ctx, userID, domain.PurchaseBill, now)
}

func (s *reportingService) ageingFor(ctx context.Context, userID string, txnType domain.TransactionType, now time.Time) (domain.AgeingReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	open, err := s.txnRepo.FindOpenTransactions(ctx, userID, txnType)
	if err != nil {
		logger.Error("Failed to fetch open transactions for ageing", slog.String("error", err.Error()), slog.String("type", string(txnType)))
		return domain.AgeingReport{}, fmt.Errorf("failed to retrieve open transactions: %w", err)
	}

	report := ageing.Analyze(now, open)
	logger.Debug("Ageing report computed", slog.String("type", string(txnType)), slog.Int("open_count", len(open)))
	return report, nil
}

// TransactionsSummary aggregates a user's transactions of one type by status.
func (s *reportingService) TransactionsSummary(ctx context.Context, userID string, txnType domain.TransactionType) (domain.TransactionsSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.ListTransactionsFilter{Type: &txnType}
	txns, err := s.txnRepo.ListTransactionsByUser(ctx, userID, filter)
	if err != nil {
		logger.Error("Failed to list transactions for summary", slog.String("error", err.Error()), slog.String("type", string(txnType)))
		return domain.TransactionsSummary{}, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	summary := domain.TransactionsSummary{
		TransactionType: txnType,
		TotalAmount:     decimal.Zero,
	}
	statusIndex := make(map[domain.TransactionStatus]int)
	for i := range txns {
		txn := &txns[i]
		summary.TotalCount++
		summary.TotalAmount = summary.TotalAmount.Add(txn.Amount)

		idx, seen := statusIndex[txn.Status]
		if !seen {
			idx = len(summary.ByStatus)
			statusIndex[txn.Status] = idx
			summary.ByStatus = append(summary.ByStatus, domain.StatusSummary{
				Status: txn.Status,
				Amount: decimal.Zero,
			})
		}
		summary.ByStatus[idx].Count++
		summary.ByStatus[idx].Amount = summary.ByStatus[idx].Amount.Add(txn.Amount)
	}

	return summary, nil
}

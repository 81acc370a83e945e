package services

import (
	"context"
	"time"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// ReportingSvcFacade defines the receivables/payables reports.
type ReportingSvcFacade interface {
	// ReceivablesAgeing buckets open sales invoice balances by days overdue at now.
	ReceivablesAgeing(ctx context.Context, userID string, now time.Time) (domain.AgeingReport, error)

	// PayablesAgeing buckets open purchase bill balances by days overdue at now.
	PayablesAgeing(ctx context.Context, userID string, now time.Time) (domain.AgeingReport, error)

	// TransactionsSummary aggregates the user's transactions of one type by status.
	TransactionsSummary(ctx context.Context, userID string, txnType domain.TransactionType) (domain.TransactionsSummary, error)
}

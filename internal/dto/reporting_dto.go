package dto

import (
	"time"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// AgeingResponse is the four-bucket ageing report for receivables or payables.
type AgeingResponse struct {
	AsOf   time.Time           `json:"asOf"`
	Ageing domain.AgeingReport `json:"ageing"`
}

// TransactionsSummaryResponse wraps the by-status transactions summary.
type TransactionsSummaryResponse struct {
	Summary domain.TransactionsSummary `json:"summary"`
}

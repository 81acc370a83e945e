// Package ageing classifies outstanding balances by how overdue they are
// relative to their due date.
package ageing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// DaysOverdue returns the whole number of days between now and the due date,
// flooring the difference. A future due date yields a negative value.
func DaysOverdue(now, dueDate time.Time) int {
	return int(math.Floor(now.Sub(dueDate).Hours() / 24))
}

// Analyze buckets the balance due of each transaction by days overdue at the
// given instant. Transactions without a due date contribute to no bucket.
// Buckets: <=0 current, 1-30, 31-60, >60. The result depends only on the
// snapshot and the instant, so repeated calls at the same instant agree.
func Analyze(now time.Time, transactions []domain.Transaction) domain.AgeingReport {
	report := domain.AgeingReport{
		Current:    decimal.Zero,
		Days1To30:  decimal.Zero,
		Days31To60: decimal.Zero,
		Days60Plus: decimal.Zero,
	}

	for _, txn := range transactions {
		if txn.DueDate == nil {
			continue
		}
		diffDays := DaysOverdue(now, *txn.DueDate)
		switch {
		case diffDays <= 0:
			report.Current = report.Current.Add(txn.BalanceDue)
		case diffDays <= 30:
			report.Days1To30 = report.Days1To30.Add(txn.BalanceDue)
		case diffDays <= 60:
			report.Days31To60 = report.Days31To60.Add(txn.BalanceDue)
		default:
			report.Days60Plus = report.Days60Plus.Add(txn.BalanceDue)
		}
	}

	return report
}

package ageing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	"github.com/bizbookshq/biz_books_app/internal/utils/ageing"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func openTxn(balance string, daysOverdue int) domain.Transaction {
	due := now.AddDate(0, 0, -daysOverdue)
	return domain.Transaction{
		BalanceDue: decimal.RequireFromString(balance),
		DueDate:    &due,
	}
}

func TestDaysOverdue(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due now", now, 0},
		{"due in future", now.AddDate(0, 0, 5), -5},
		{"one day past", now.AddDate(0, 0, -1), 1},
		{"thirty days past", now.AddDate(0, 0, -30), 30},
		{"partial day floors to zero", now.Add(-23 * time.Hour), 0},
		{"just over a day", now.Add(-25 * time.Hour), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ageing.DaysOverdue(now, tt.due))
		})
	}
}

func TestAnalyze_BucketBoundaries(t *testing.T) {
	txns := []domain.Transaction{
		openTxn("10", 0),   // current
		openTxn("20", -7),  // future due date, current
		openTxn("30", 1),   // 1-30
		openTxn("40", 30),  // 1-30
		openTxn("50", 31),  // 31-60
		openTxn("60", 60),  // 31-60
		openTxn("70", 61),  // 60+
		openTxn("80", 120), // 60+
	}

	report := ageing.Analyze(now, txns)

	assert.True(t, decimal.RequireFromString("30").Equal(report.Current), "current: %s", report.Current)
	assert.True(t, decimal.RequireFromString("70").Equal(report.Days1To30), "1-30: %s", report.Days1To30)
	assert.True(t, decimal.RequireFromString("110").Equal(report.Days31To60), "31-60: %s", report.Days31To60)
	assert.True(t, decimal.RequireFromString("150").Equal(report.Days60Plus), "60+: %s", report.Days60Plus)
}

func TestAnalyze_FortyFiveDaysOverdue(t *testing.T) {
	report := ageing.Analyze(now, []domain.Transaction{openTxn("500", 45)})

	assert.True(t, decimal.RequireFromString("500").Equal(report.Days31To60))
	assert.True(t, report.Current.IsZero())
	assert.True(t, report.Days1To30.IsZero())
	assert.True(t, report.Days60Plus.IsZero())
}

func TestAnalyze_SkipsMissingDueDate(t *testing.T) {
	txns := []domain.Transaction{
		{BalanceDue: decimal.RequireFromString("999")}, // no due date
		openTxn("100", 10),
	}

	report := ageing.Analyze(now, txns)

	assert.True(t, decimal.RequireFromString("100").Equal(report.Total()))
}

func TestAnalyze_TotalEqualsSumOfBalances(t *testing.T) {
	txns := []domain.Transaction{
		openTxn("11.50", -3),
		openTxn("200", 15),
		openTxn("3000.25", 45),
		openTxn("40000", 90),
	}

	report := ageing.Analyze(now, txns)

	want := decimal.Zero
	for _, txn := range txns {
		want = want.Add(txn.BalanceDue)
	}
	assert.True(t, want.Equal(report.Total()), "buckets must partition the open balance")
}

func TestAnalyze_Empty(t *testing.T) {
	report := ageing.Analyze(now, nil)
	assert.True(t, report.Total().IsZero())
}

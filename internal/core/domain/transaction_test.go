package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

func TestDisplayStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)
	// Same calendar date as now, later clock time.
	laterToday := time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		balanceDue string
		dueDate    *time.Time
		status     domain.TransactionStatus
		want       domain.TransactionStatus
	}{
		{"zero balance reads paid", "0", &yesterday, domain.StatusPending, domain.StatusPaid},
		{"zero balance no due date", "0", nil, domain.StatusPartiallyPaid, domain.StatusPaid},
		{"past due reads overdue", "100", &yesterday, domain.StatusPending, domain.StatusOverdue},
		{"past due keeps overdue over partially_paid", "100", &yesterday, domain.StatusPartiallyPaid, domain.StatusOverdue},
		{"due today is not overdue", "100", &laterToday, domain.StatusPending, domain.StatusPending},
		{"future due keeps stored status", "100", &tomorrow, domain.StatusPending, domain.StatusPending},
		{"no due date keeps stored status", "100", nil, domain.StatusUsingBNPL, domain.StatusUsingBNPL},
		{"cancelled with future due stays cancelled", "100", &tomorrow, domain.StatusCancelled, domain.StatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := domain.Transaction{
				BalanceDue: decimal.RequireFromString(tt.balanceDue),
				DueDate:    tt.dueDate,
				Status:     tt.status,
			}
			assert.Equal(t, tt.want, txn.DisplayStatus(now))
		})
	}
}

func TestDisplayStatus_DoesNotMutate(t *testing.T) {
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	txn := domain.Transaction{
		BalanceDue: decimal.NewFromInt(100),
		DueDate:    &due,
		Status:     domain.StatusPending,
	}

	got := txn.DisplayStatus(time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, domain.StatusOverdue, got)
	assert.Equal(t, domain.StatusPending, txn.Status)
}

func TestBnplLimit(t *testing.T) {
	limit := domain.BnplLimit{
		TotalLimit: decimal.NewFromInt(1000),
		UsedLimit:  decimal.NewFromInt(400),
	}

	assert.True(t, decimal.NewFromInt(600).Equal(limit.Available()))
	assert.True(t, limit.CanUse(decimal.NewFromInt(600)))
	assert.False(t, limit.CanUse(decimal.NewFromInt(601)))
	assert.True(t, limit.CanUse(decimal.Zero))
}

func TestPartyIsIntraState(t *testing.T) {
	intra := domain.Party{State: domain.SameStateSentinel}
	inter := domain.Party{State: "Karnataka"}
	empty := domain.Party{}

	assert.True(t, intra.IsIntraState())
	assert.False(t, inter.IsIntraState())
	assert.False(t, empty.IsIntraState())
}

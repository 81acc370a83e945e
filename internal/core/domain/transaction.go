package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the business document a transaction represents.
type TransactionType string

const (
	SalesInvoice TransactionType = "sales_invoice"
	PurchaseBill TransactionType = "purchase_bill"
	Receipt      TransactionType = "receipt"
	Payment      TransactionType = "payment"
	CreditNote   TransactionType = "credit_note"
	DebitNote    TransactionType = "debit_note"
)

// TransactionStatus is the stored lifecycle status of a transaction.
type TransactionStatus string

const (
	StatusPending       TransactionStatus = "pending"
	StatusPartiallyPaid TransactionStatus = "partially_paid"
	StatusPaid          TransactionStatus = "paid"
	StatusOverdue       TransactionStatus = "overdue"
	StatusCancelled     TransactionStatus = "cancelled"
	StatusUsingBNPL     TransactionStatus = "using_bnpl"
	StatusCompleted     TransactionStatus = "completed"
)

// Transaction represents a financial document header (invoice, bill, receipt...).
// Amount and BalanceDue are recomputed from the line items after the items are
// persisted; the header is not fully correct until that second write lands.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`     // Primary Key (e.g., UUID)
	TransactionNumber string            `json:"transactionNumber"` // Unique display code (e.g., "INV-0042")
	TransactionType   TransactionType   `json:"transactionType"`
	UserID            string            `json:"userID"`  // Owning user (Not Null)
	PartyID           string            `json:"partyID"` // FK -> Party.partyID
	TransactionDate   time.Time         `json:"transactionDate"`
	Amount            decimal.Decimal   `json:"amount"`     // Grand total
	BalanceDue        decimal.Decimal   `json:"balanceDue"` // Remaining unpaid; invariant BalanceDue <= Amount
	DueDate           *time.Time        `json:"dueDate,omitempty"`
	Status            TransactionStatus `json:"status"`
	IsBNPL            bool              `json:"isBnpl"`
	Reference         string            `json:"reference"` // Free text
	AuditFields
}

// DisplayStatus derives the UI-facing status from the stored one. A zero
// balance always reads as paid, and an unpaid balance past its due date reads
// as overdue; it never mutates the stored status.
func (t *Transaction) DisplayStatus(now time.Time) TransactionStatus {
	if t.BalanceDue.IsZero() {
		return StatusPaid
	}
	if t.BalanceDue.IsPositive() && t.DueDate != nil {
		due := calendarDate(*t.DueDate)
		today := calendarDate(now)
		if due.Before(today) {
			return StatusOverdue
		}
	}
	return t.Status
}

// calendarDate truncates a timestamp to its calendar date.
func calendarDate(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}

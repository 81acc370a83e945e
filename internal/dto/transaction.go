package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	"github.com/bizbookshq/biz_books_app/internal/utils/numeric"
)

// TransactionItemRequest is one line item of a transaction being created.
// Numeric fields arrive as strings and are parsed leniently: absent or
// malformed values coerce to zero.
type TransactionItemRequest struct {
	ItemID    string `json:"itemID" binding:"required"`
	Quantity  string `json:"quantity"`
	Rate      string `json:"rate"`
	Amount    string `json:"amount"`
	TaxRate   string `json:"taxRate"`
	TaxAmount string `json:"taxAmount"`
}

// ToDomain converts the request line to a domain item with lenient numerics.
func (r TransactionItemRequest) ToDomain() domain.TransactionItem {
	return domain.TransactionItem{
		ItemID:    r.ItemID,
		Quantity:  numeric.LenientDecimal(r.Quantity),
		Rate:      numeric.LenientDecimal(r.Rate),
		Amount:    numeric.LenientDecimal(r.Amount),
		TaxRate:   numeric.LenientDecimal(r.TaxRate),
		TaxAmount: numeric.LenientDecimal(r.TaxAmount),
	}
}

// TransactionHeaderRequest is the header portion of a create request. Amount
// and BalanceDue are provisional; the service overwrites both with the
// computed grand total once the line items are persisted.
type TransactionHeaderRequest struct {
	TransactionNumber string                   `json:"transactionNumber" binding:"required"`
	TransactionType   domain.TransactionType   `json:"transactionType" binding:"required,oneof=sales_invoice purchase_bill receipt payment credit_note debit_note"`
	PartyID           string                   `json:"partyID" binding:"required"`
	TransactionDate   time.Time                `json:"transactionDate" binding:"required"`
	DueDate           *time.Time               `json:"dueDate,omitempty"`
	Status            domain.TransactionStatus `json:"status,omitempty" binding:"omitempty,oneof=pending partially_paid paid overdue cancelled using_bnpl completed"`
	IsBNPL            bool                     `json:"isBnpl"`
	Reference         string                   `json:"reference"`
	Amount            string                   `json:"amount"`
	BalanceDue        string                   `json:"balanceDue"`
}

// CreateTransactionRequest carries a transaction header and its line items.
type CreateTransactionRequest struct {
	Transaction TransactionHeaderRequest `json:"transaction" binding:"required"`
	Items       []TransactionItemRequest `json:"items" binding:"dive"`
}

// UpdateTransactionRequest supports partial header updates; nil fields are untouched.
type UpdateTransactionRequest struct {
	TransactionDate *time.Time                `json:"transactionDate,omitempty"`
	DueDate         *time.Time                `json:"dueDate,omitempty"`
	Status          *domain.TransactionStatus `json:"status,omitempty" binding:"omitempty,oneof=pending partially_paid paid overdue cancelled using_bnpl completed"`
	BalanceDue      *string                   `json:"balanceDue,omitempty"`
	Reference       *string                   `json:"reference,omitempty"`
}

// TransactionItemResponse is one persisted line item.
type TransactionItemResponse struct {
	TransactionItemID string          `json:"transactionItemID"`
	TransactionID     string          `json:"transactionID"`
	ItemID            string          `json:"itemID"`
	Quantity          decimal.Decimal `json:"quantity"`
	Rate              decimal.Decimal `json:"rate"`
	Amount            decimal.Decimal `json:"amount"`
	TaxRate           decimal.Decimal `json:"taxRate"`
	TaxAmount         decimal.Decimal `json:"taxAmount"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
}

// TransactionResponse is a transaction header with its line items and
// computed totals. DisplayStatus is the read-time projection; Status is the
// stored value.
type TransactionResponse struct {
	TransactionID     string                    `json:"transactionID"`
	TransactionNumber string                    `json:"transactionNumber"`
	TransactionType   domain.TransactionType    `json:"transactionType"`
	PartyID           string                    `json:"partyID"`
	TransactionDate   time.Time                 `json:"transactionDate"`
	Amount            decimal.Decimal           `json:"amount"`
	BalanceDue        decimal.Decimal           `json:"balanceDue"`
	DueDate           *time.Time                `json:"dueDate,omitempty"`
	Status            domain.TransactionStatus  `json:"status"`
	DisplayStatus     domain.TransactionStatus  `json:"displayStatus"`
	IsBNPL            bool                      `json:"isBnpl"`
	Reference         string                    `json:"reference"`
	CreatedAt         time.Time                 `json:"createdAt"`
	Items             []TransactionItemResponse `json:"items,omitempty"`
	Totals            *domain.TransactionTotals `json:"totals,omitempty"`
}

// ListTransactionsResponse wraps a transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToTransactionItemResponse converts a domain line item to its response DTO.
func ToTransactionItemResponse(item *domain.TransactionItem) TransactionItemResponse {
	return TransactionItemResponse{
		TransactionItemID: item.TransactionItemID,
		TransactionID:     item.TransactionID,
		ItemID:            item.ItemID,
		Quantity:          item.Quantity,
		Rate:              item.Rate,
		Amount:            item.Amount,
		TaxRate:           item.TaxRate,
		TaxAmount:         item.TaxAmount,
		TotalAmount:       item.TotalAmount,
	}
}

// ToTransactionResponse converts a transaction and its derived data to the
// response DTO, resolving the display status at the given instant.
func ToTransactionResponse(txn *domain.Transaction, items []domain.TransactionItem, totals *domain.TransactionTotals, now time.Time) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:     txn.TransactionID,
		TransactionNumber: txn.TransactionNumber,
		TransactionType:   txn.TransactionType,
		PartyID:           txn.PartyID,
		TransactionDate:   txn.TransactionDate,
		Amount:            txn.Amount,
		BalanceDue:        txn.BalanceDue,
		DueDate:           txn.DueDate,
		Status:            txn.Status,
		DisplayStatus:     txn.DisplayStatus(now),
		IsBNPL:            txn.IsBNPL,
		Reference:         txn.Reference,
		CreatedAt:         txn.CreatedAt,
		Totals:            totals,
	}
	if items != nil {
		resp.Items = make([]TransactionItemResponse, len(items))
		for i := range items {
			resp.Items[i] = ToTransactionItemResponse(&items[i])
		}
	}
	return resp
}

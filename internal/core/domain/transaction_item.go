package domain

import "github.com/shopspring/decimal"

// TransactionItem is a single line on a transaction, owned exclusively by it
// and deleted alongside it.
type TransactionItem struct {
	TransactionItemID string          `json:"transactionItemID"` // Primary Key (e.g., UUID)
	TransactionID     string          `json:"transactionID"`     // FK -> Transaction.transactionID (Not Null)
	ItemID            string          `json:"itemID"`            // FK -> Item.itemID
	Quantity          decimal.Decimal `json:"quantity"`
	Rate              decimal.Decimal `json:"rate"`        // Unit price
	Amount            decimal.Decimal `json:"amount"`      // Quantity x Rate, pre-tax
	TaxRate           decimal.Decimal `json:"taxRate"`     // Percentage
	TaxAmount         decimal.Decimal `json:"taxAmount"`   // Amount * TaxRate / 100
	TotalAmount       decimal.Decimal `json:"totalAmount"` // Amount + TaxAmount
	AuditFields
}

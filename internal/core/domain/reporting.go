package domain

import (
	"github.com/shopspring/decimal"
)

// TaxRateGroup is the tax breakdown for all lines sharing one tax rate.
// Inter-state supplies put the whole group tax in IGST; intra-state supplies
// split it evenly between CGST and SGST.
type TaxRateGroup struct {
	Rate          decimal.Decimal `json:"rate"`
	TaxableAmount decimal.Decimal `json:"taxableAmount"`
	IGST          decimal.Decimal `json:"igst"`
	CGST          decimal.Decimal `json:"cgst"`
	SGST          decimal.Decimal `json:"sgst"`
	Total         decimal.Decimal `json:"total"`
}

// TransactionTotals is everything derived from a transaction's line items.
type TransactionTotals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalTax   decimal.Decimal `json:"totalTax"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	TaxGroups  []TaxRateGroup  `json:"taxGroups"`
}

// AgeingReport buckets outstanding balances by how overdue they are relative
// to their due date.
type AgeingReport struct {
	Current    decimal.Decimal `json:"current"`    // Not yet due
	Days1To30  decimal.Decimal `json:"days1to30"`  // 1-30 days overdue
	Days31To60 decimal.Decimal `json:"days31to60"` // 31-60 days overdue
	Days60Plus decimal.Decimal `json:"days60plus"` // More than 60 days overdue
}

// Total sums the four buckets.
func (r AgeingReport) Total() decimal.Decimal {
	return r.Current.Add(r.Days1To30).Add(r.Days31To60).Add(r.Days60Plus)
}

// StatusSummary is one row of the transactions summary report.
type StatusSummary struct {
	Status TransactionStatus `json:"status"`
	Count  int               `json:"count"`
	Amount decimal.Decimal   `json:"amount"`
}

// TransactionsSummary aggregates a user's transactions of one type by status.
type TransactionsSummary struct {
	TransactionType TransactionType `json:"transactionType"`
	TotalCount      int             `json:"totalCount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ByStatus        []StatusSummary `json:"byStatus"`
}

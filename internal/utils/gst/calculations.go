// Package gst computes transaction totals and the IGST vs CGST/SGST tax
// breakdown from a transaction's line items.
package gst

import (
	"github.com/shopspring/decimal"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

var two = decimal.NewFromInt(2)

// ComputeTotals derives subtotal, total tax and grand total from the line
// items of one transaction, along with a per-tax-rate breakdown.
//
// Jurisdiction follows the party's state field: any value other than
// domain.SameStateSentinel is treated as inter-state, assigning each group's
// tax entirely to IGST; the sentinel value splits it evenly between CGST and
// SGST. The party's state is never compared against the seller's registered
// state. That shortcoming ships with the original product and is preserved.
func ComputeTotals(items []domain.TransactionItem, partyState string) domain.TransactionTotals {
	totals := domain.TransactionTotals{
		Subtotal:   decimal.Zero,
		TotalTax:   decimal.Zero,
		GrandTotal: decimal.Zero,
	}
	if len(items) == 0 {
		return totals
	}

	interState := partyState != domain.SameStateSentinel

	// Group line items by tax rate, keeping first-seen order for stable output.
	groupIndex := make(map[string]int)
	for _, item := range items {
		totals.Subtotal = totals.Subtotal.Add(item.Amount)
		totals.TotalTax = totals.TotalTax.Add(item.TaxAmount)

		key := item.TaxRate.String()
		idx, seen := groupIndex[key]
		if !seen {
			idx = len(totals.TaxGroups)
			groupIndex[key] = idx
			totals.TaxGroups = append(totals.TaxGroups, domain.TaxRateGroup{
				Rate:          item.TaxRate,
				TaxableAmount: decimal.Zero,
				IGST:          decimal.Zero,
				CGST:          decimal.Zero,
				SGST:          decimal.Zero,
				Total:         decimal.Zero,
			})
		}
		group := &totals.TaxGroups[idx]
		group.TaxableAmount = group.TaxableAmount.Add(item.Amount)
		group.Total = group.Total.Add(item.TaxAmount)
	}

	for i := range totals.TaxGroups {
		group := &totals.TaxGroups[i]
		if interState {
			group.IGST = group.Total
		} else {
			half := group.Total.Div(two)
			group.CGST = half
			group.SGST = half
		}
	}

	totals.GrandTotal = totals.Subtotal.Add(totals.TotalTax)
	return totals
}

// FillLineAmounts fills in derived fields of a line item the caller left at
// zero: Amount = Quantity*Rate, TaxAmount = Amount*TaxRate/100. TotalAmount
// is always recomputed as Amount + TaxAmount. Caller-supplied non-zero values
// are kept, matching the permissive handling of legacy records.
func FillLineAmounts(item *domain.TransactionItem) {
	if item.Amount.IsZero() {
		item.Amount = item.Quantity.Mul(item.Rate)
	}
	if item.TaxAmount.IsZero() {
		item.TaxAmount = item.Amount.Mul(item.TaxRate).Div(decimal.NewFromInt(100))
	}
	item.TotalAmount = item.Amount.Add(item.TaxAmount)
}

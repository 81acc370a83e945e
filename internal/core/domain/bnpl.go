package domain

import "github.com/shopspring/decimal"

// BnplLimitType distinguishes the direction a BNPL limit applies to.
type BnplLimitType string

const (
	BnplPurchase BnplLimitType = "purchase"
	BnplSales    BnplLimitType = "sales"
)

// BnplLimit tracks a buy-now-pay-later credit arrangement with a party.
// Invariant: UsedLimit <= TotalLimit.
type BnplLimit struct {
	BnplLimitID string          `json:"bnplLimitID"` // Primary Key (e.g., UUID)
	PartyID     string          `json:"partyID"`     // FK -> Party.partyID
	LimitType   BnplLimitType   `json:"limitType"`
	TotalLimit  decimal.Decimal `json:"totalLimit"`
	UsedLimit   decimal.Decimal `json:"usedLimit"`
	AuditFields
}

// Available returns the unused portion of the limit.
func (b *BnplLimit) Available() decimal.Decimal {
	return b.TotalLimit.Sub(b.UsedLimit)
}

// CanUse reports whether consuming amount would keep UsedLimit within TotalLimit.
func (b *BnplLimit) CanUse(amount decimal.Decimal) bool {
	return b.UsedLimit.Add(amount).LessThanOrEqual(b.TotalLimit)
}

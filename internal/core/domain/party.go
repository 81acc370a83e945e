package domain

import "github.com/shopspring/decimal"

// PartyType distinguishes customers from vendors.
type PartyType string

const (
	PartyCustomer PartyType = "customer"
	PartyVendor   PartyType = "vendor"
)

// SameStateSentinel is the literal state value that marks a party as being in
// the same state as the business for tax purposes. The original product never
// compared the party's state against the seller's registered state; it only
// checked for this sentinel. The behavior is preserved as-is.
const SameStateSentinel = "Same State as User"

// Party represents a customer or vendor counterparty to transactions.
type Party struct {
	PartyID        string          `json:"partyID"` // Primary Key (e.g., UUID)
	UserID         string          `json:"userID"`  // Owning user (Not Null)
	Name           string          `json:"name"`
	Type           PartyType       `json:"type"`  // customer or vendor
	State          string          `json:"state"` // Drives intra- vs inter-state tax treatment
	GSTIN          string          `json:"gstin"` // Nullable tax registration number
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	BillingAddress string          `json:"billingAddress"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	CreditPeriod   int             `json:"creditPeriod"` // Days
	AuditFields
}

// IsIntraState reports whether sales to this party attract CGST/SGST rather
// than IGST. Anything other than the sentinel is treated as inter-state.
func (p *Party) IsIntraState() bool {
	return p.State == SameStateSentinel
}

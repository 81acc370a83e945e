package domain

import "github.com/shopspring/decimal"

// Item represents a product or service offered by the business.
type Item struct {
	ItemID        string          `json:"itemID"` // Primary Key (e.g., UUID)
	UserID        string          `json:"userID"` // Owning user (Not Null)
	Name          string          `json:"name"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	// Listing metadata, not part of the totals or ageing calculations.
	Unit              string          `json:"unit"`    // e.g., "pcs", "kg"
	HSNCode           string          `json:"hsnCode"` // Nullable harmonized code
	StockQuantity     decimal.Decimal `json:"stockQuantity"`
	LowStockThreshold decimal.Decimal `json:"lowStockThreshold"`
	AuditFields
}

package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	"github.com/bizbookshq/biz_books_app/internal/utils/numeric"
)

// CreateItemRequest defines the payload for creating an inventory item.
type CreateItemRequest struct {
	Name              string `json:"name" binding:"required"`
	SellingPrice      string `json:"sellingPrice"`
	PurchasePrice     string `json:"purchasePrice"`
	Unit              string `json:"unit"`
	HSNCode           string `json:"hsnCode"`
	StockQuantity     string `json:"stockQuantity"`
	LowStockThreshold string `json:"lowStockThreshold"`
}

// UpdateItemRequest supports partial item updates; nil fields are untouched.
type UpdateItemRequest struct {
	Name              *string `json:"name,omitempty"`
	SellingPrice      *string `json:"sellingPrice,omitempty"`
	PurchasePrice     *string `json:"purchasePrice,omitempty"`
	Unit              *string `json:"unit,omitempty"`
	HSNCode           *string `json:"hsnCode,omitempty"`
	StockQuantity     *string `json:"stockQuantity,omitempty"`
	LowStockThreshold *string `json:"lowStockThreshold,omitempty"`
}

// ItemResponse defines the data returned for an item.
type ItemResponse struct {
	ItemID            string          `json:"itemID"`
	Name              string          `json:"name"`
	SellingPrice      decimal.Decimal `json:"sellingPrice"`
	PurchasePrice     decimal.Decimal `json:"purchasePrice"`
	Unit              string          `json:"unit,omitempty"`
	HSNCode           string          `json:"hsnCode,omitempty"`
	StockQuantity     decimal.Decimal `json:"stockQuantity"`
	LowStockThreshold decimal.Decimal `json:"lowStockThreshold"`
}

// ListItemsResponse wraps an item listing.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}

// ToDomainItem converts the create request to a domain item with lenient numerics.
func (r CreateItemRequest) ToDomainItem() domain.Item {
	return domain.Item{
		Name:              r.Name,
		SellingPrice:      numeric.LenientDecimal(r.SellingPrice),
		PurchasePrice:     numeric.LenientDecimal(r.PurchasePrice),
		Unit:              r.Unit,
		HSNCode:           r.HSNCode,
		StockQuantity:     numeric.LenientDecimal(r.StockQuantity),
		LowStockThreshold: numeric.LenientDecimal(r.LowStockThreshold),
	}
}

// ToItemResponse converts a domain item to its response DTO.
func ToItemResponse(i *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:            i.ItemID,
		Name:              i.Name,
		SellingPrice:      i.SellingPrice,
		PurchasePrice:     i.PurchasePrice,
		Unit:              i.Unit,
		HSNCode:           i.HSNCode,
		StockQuantity:     i.StockQuantity,
		LowStockThreshold: i.LowStockThreshold,
	}
}

// ToItemResponses converts a slice of domain items to response DTOs.
func ToItemResponses(items []domain.Item) []ItemResponse {
	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}
	return responses
}

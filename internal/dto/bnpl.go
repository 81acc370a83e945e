package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// UpsertBnplLimitRequest creates or replaces the total limit for a party and direction.
type UpsertBnplLimitRequest struct {
	PartyID    string               `json:"partyID" binding:"required"`
	LimitType  domain.BnplLimitType `json:"limitType" binding:"required,oneof=purchase sales"`
	TotalLimit string               `json:"totalLimit" binding:"required"`
}

// RecordBnplUsageRequest consumes part of a party's BNPL limit.
type RecordBnplUsageRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// BnplLimitResponse defines the data returned for a BNPL limit.
type BnplLimitResponse struct {
	BnplLimitID string               `json:"bnplLimitID"`
	PartyID     string               `json:"partyID"`
	LimitType   domain.BnplLimitType `json:"limitType"`
	TotalLimit  decimal.Decimal      `json:"totalLimit"`
	UsedLimit   decimal.Decimal      `json:"usedLimit"`
	Available   decimal.Decimal      `json:"available"`
}

// ToBnplLimitResponse converts a domain limit to its response DTO.
func ToBnplLimitResponse(l *domain.BnplLimit) BnplLimitResponse {
	return BnplLimitResponse{
		BnplLimitID: l.BnplLimitID,
		PartyID:     l.PartyID,
		LimitType:   l.LimitType,
		TotalLimit:  l.TotalLimit,
		UsedLimit:   l.UsedLimit,
		Available:   l.Available(),
	}
}

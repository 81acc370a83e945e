package dto

import (
	"github.com/shopspring/decimal"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	"github.com/bizbookshq/biz_books_app/internal/utils/numeric"
)

// CreatePartyRequest defines the payload for creating a party.
type CreatePartyRequest struct {
	Name           string           `json:"name" binding:"required"`
	Type           domain.PartyType `json:"type" binding:"required,oneof=customer vendor"`
	State          string           `json:"state"`
	GSTIN          string           `json:"gstin"`
	Phone          string           `json:"phone"`
	Email          string           `json:"email" binding:"omitempty,email"`
	BillingAddress string           `json:"billingAddress"`
	CreditLimit    string           `json:"creditLimit"`
	CreditPeriod   int              `json:"creditPeriod" binding:"omitempty,min=0"`
}

// UpdatePartyRequest supports partial party updates; nil fields are untouched.
type UpdatePartyRequest struct {
	Name           *string `json:"name,omitempty"`
	State          *string `json:"state,omitempty"`
	GSTIN          *string `json:"gstin,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	BillingAddress *string `json:"billingAddress,omitempty"`
	CreditLimit    *string `json:"creditLimit,omitempty"`
	CreditPeriod   *int    `json:"creditPeriod,omitempty" binding:"omitempty,min=0"`
}

// PartyResponse defines the data returned for a party.
type PartyResponse struct {
	PartyID        string           `json:"partyID"`
	Name           string           `json:"name"`
	Type           domain.PartyType `json:"type"`
	State          string           `json:"state"`
	GSTIN          string           `json:"gstin,omitempty"`
	Phone          string           `json:"phone,omitempty"`
	Email          string           `json:"email,omitempty"`
	BillingAddress string           `json:"billingAddress,omitempty"`
	CreditLimit    decimal.Decimal  `json:"creditLimit"`
	CreditPeriod   int              `json:"creditPeriod"`
}

// ListPartiesResponse wraps a party listing.
type ListPartiesResponse struct {
	Parties []PartyResponse `json:"parties"`
}

// ToDomainParty converts the create request to a domain party with lenient numerics.
func (r CreatePartyRequest) ToDomainParty() domain.Party {
	return domain.Party{
		Name:           r.Name,
		Type:           r.Type,
		State:          r.State,
		GSTIN:          r.GSTIN,
		Phone:          r.Phone,
		Email:          r.Email,
		BillingAddress: r.BillingAddress,
		CreditLimit:    numeric.LenientDecimal(r.CreditLimit),
		CreditPeriod:   r.CreditPeriod,
	}
}

// ToPartyResponse converts a domain party to its response DTO.
func ToPartyResponse(p *domain.Party) PartyResponse {
	return PartyResponse{
		PartyID:        p.PartyID,
		Name:           p.Name,
		Type:           p.Type,
		State:          p.State,
		GSTIN:          p.GSTIN,
		Phone:          p.Phone,
		Email:          p.Email,
		BillingAddress: p.BillingAddress,
		CreditLimit:    p.CreditLimit,
		CreditPeriod:   p.CreditPeriod,
	}
}

// ToPartyResponses converts a slice of domain parties to response DTOs.
func ToPartyResponses(parties []domain.Party) []PartyResponse {
	responses := make([]PartyResponse, len(parties))
	for i := range parties {
		responses[i] = ToPartyResponse(&parties[i])
	}
	return responses
}

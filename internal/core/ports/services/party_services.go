package services

import (
	"context"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	"github.com/bizbookshq/biz_books_app/internal/dto"
)

// PartySvcFacade defines party operations exposed to handlers.
type PartySvcFacade interface {
	CreateParty(ctx context.Context, userID string, req dto.CreatePartyRequest) (*domain.Party, error)
	GetPartyByID(ctx context.Context, userID string, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, userID string, partyType *domain.PartyType) ([]domain.Party, error)
	UpdateParty(ctx context.Context, userID string, partyID string, req dto.UpdatePartyRequest) (*domain.Party, error)
	DeleteParty(ctx context.Context, userID string, partyID string) error
}

package repositories

import (
	"context"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// PartyReader defines read operations for party data.
type PartyReader interface {
	// FindPartyByID retrieves a specific party by its identifier.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListPartiesByUser retrieves a user's parties, optionally narrowed to one type.
	ListPartiesByUser(ctx context.Context, userID string, partyType *domain.PartyType) ([]domain.Party, error)
}

// PartyWriter defines write operations for party data.
type PartyWriter interface {
	// SaveParty persists a new party.
	SaveParty(ctx context.Context, party domain.Party) error

	// UpdateParty updates an existing party; ErrNotFound if absent.
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeleteParty removes a party.
	DeleteParty(ctx context.Context, partyID string) error
}

// PartyRepositoryFacade combines all party repository interfaces.
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}

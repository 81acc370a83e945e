package repositories

import (
	"context"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// BnplLimitRepository defines data access for BNPL credit limits.
type BnplLimitRepository interface {
	// FindLimit retrieves the limit for a party and direction; ErrNotFound if absent.
	FindLimit(ctx context.Context, partyID string, limitType domain.BnplLimitType) (*domain.BnplLimit, error)

	// FindLimitsByPartyID retrieves all limits recorded for a party.
	FindLimitsByPartyID(ctx context.Context, partyID string) ([]domain.BnplLimit, error)

	// SaveLimit persists a new limit.
	SaveLimit(ctx context.Context, limit domain.BnplLimit) error

	// UpdateLimit updates an existing limit; ErrNotFound if absent.
	UpdateLimit(ctx context.Context, limit domain.BnplLimit) error
}

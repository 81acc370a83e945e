package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	"github.com/bizbookshq/biz_books_app/internal/dto"
)

// BnplSvcFacade defines BNPL credit limit operations.
type BnplSvcFacade interface {
	// UpsertLimit creates or updates the total limit for a party and direction.
	UpsertLimit(ctx context.Context, userID string, req dto.UpsertBnplLimitRequest) (*domain.BnplLimit, error)

	// GetLimits retrieves all limits recorded for a party.
	GetLimits(ctx context.Context, userID string, partyID string) ([]domain.BnplLimit, error)

	// RecordUsage consumes part of the limit; ErrValidation when the usage
	// would push UsedLimit past TotalLimit.
	RecordUsage(ctx context.Context, userID string, partyID string, limitType domain.BnplLimitType, amount decimal.Decimal) (*domain.BnplLimit, error)

	// ReleaseUsage returns part of the limit, flooring UsedLimit at zero.
	ReleaseUsage(ctx context.Context, userID string, partyID string, limitType domain.BnplLimitType, amount decimal.Decimal) (*domain.BnplLimit, error)
}

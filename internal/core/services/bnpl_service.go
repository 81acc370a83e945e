package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
	"github.com/bizbookshq/biz_books_app/internal/utils/numeric"
)

// ErrBnplLimitExceeded is returned when usage would push UsedLimit past TotalLimit.
var ErrBnplLimitExceeded = errors.New("bnpl limit exceeded")

// bnplService manages buy-now-pay-later credit limits per party.
type bnplService struct {
	bnplRepo  portsrepo.BnplLimitRepository
	partyRepo portsrepo.PartyReader
}

// NewBnplService creates a new BNPL limit service.
func NewBnplService(bnplRepo portsrepo.BnplLimitRepository, partyRepo portsrepo.PartyReader) portssvc.BnplSvcFacade {
	return &bnplService{bnplRepo: bnplRepo, partyRepo: partyRepo}
}

var _ portssvc.BnplSvcFacade = (*bnplService)(nil)

// UpsertLimit creates or updates the total limit for a party and direction.
func (s *bnplService) UpsertLimit(ctx context.Context, userID string, req dto.UpsertBnplLimitRequest) (*domain.BnplLimit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.ownedParty(ctx, userID, req.PartyID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	totalLimit := numeric.LenientDecimal(req.TotalLimit)

	existing, err := s.bnplRepo.FindLimit(ctx, req.PartyID, req.LimitType)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to fetch BNPL limit", slog.String("error", err.Error()), slog.String("party_id", req.PartyID))
		return nil, fmt.Errorf("failed to fetch BNPL limit: %w", err)
	}

	if existing != nil {
		if totalLimit.LessThan(existing.UsedLimit) {
			return nil, fmt.Errorf("%w: total limit %s is below used limit %s",
				apperrors.ErrValidation, totalLimit.String(), existing.UsedLimit.String())
		}
		existing.TotalLimit = totalLimit
		existing.LastUpdatedAt = now
		existing.LastUpdatedBy = userID
		if err := s.bnplRepo.UpdateLimit(ctx, *existing); err != nil {
			logger.Error("Failed to update BNPL limit", slog.String("error", err.Error()), slog.String("party_id", req.PartyID))
			return nil, fmt.Errorf("failed to update BNPL limit: %w", err)
		}
		return existing, nil
	}

	limit := domain.BnplLimit{
		BnplLimitID: uuid.NewString(),
		PartyID:     req.PartyID,
		LimitType:   req.LimitType,
		TotalLimit:  totalLimit,
		UsedLimit:   decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.bnplRepo.SaveLimit(ctx, limit); err != nil {
		logger.Error("Failed to save BNPL limit", slog.String("error", err.Error()), slog.String("party_id", req.PartyID))
		return nil, fmt.Errorf("failed to save BNPL limit: %w", err)
	}

	logger.Info("BNPL limit created", slog.String("party_id", req.PartyID), slog.String("limit_type", string(req.LimitType)))
	return &limit, nil
}

// GetLimits retrieves all limits recorded for a party.
func (s *bnplService) GetLimits(ctx context.Context, userID string, partyID string) ([]domain.BnplLimit, error) {
	if _, err := s.ownedParty(ctx, userID, partyID); err != nil {
		return nil, err
	}
	limits, err := s.bnplRepo.FindLimitsByPartyID(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve BNPL limits for party %s: %w", partyID, err)
	}
	return limits, nil
}

// RecordUsage consumes part of the limit, holding UsedLimit <= TotalLimit.
func (s *bnplService) RecordUsage(ctx context.Context, userID string, partyID string, limitType domain.BnplLimitType, amount decimal.Decimal) (*domain.BnplLimit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: usage amount cannot be negative", apperrors.ErrValidation)
	}

	limit, err := s.bnplRepo.FindLimit(ctx, partyID, limitType)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no %s BNPL limit set for party %s", apperrors.ErrValidation, limitType, partyID)
		}
		return nil, fmt.Errorf("failed to fetch BNPL limit: %w", err)
	}

	if !limit.CanUse(amount) {
		logger.Warn("BNPL usage rejected",
			slog.String("party_id", partyID),
			slog.String("requested", amount.String()),
			slog.String("available", limit.Available().String()))
		return nil, fmt.Errorf("%w: requested %s exceeds available %s",
			ErrBnplLimitExceeded, amount.String(), limit.Available().String())
	}

	limit.UsedLimit = limit.UsedLimit.Add(amount)
	limit.LastUpdatedAt = time.Now().UTC()
	limit.LastUpdatedBy = userID

	if err := s.bnplRepo.UpdateLimit(ctx, *limit); err != nil {
		logger.Error("Failed to record BNPL usage", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to record BNPL usage: %w", err)
	}
	return limit, nil
}

// ReleaseUsage returns part of the limit, flooring UsedLimit at zero.
func (s *bnplService) ReleaseUsage(ctx context.Context, userID string, partyID string, limitType domain.BnplLimitType, amount decimal.Decimal) (*domain.BnplLimit, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: release amount cannot be negative", apperrors.ErrValidation)
	}

	limit, err := s.bnplRepo.FindLimit(ctx, partyID, limitType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch BNPL limit: %w", err)
	}

	limit.UsedLimit = limit.UsedLimit.Sub(amount)
	if limit.UsedLimit.IsNegative() {
		limit.UsedLimit = decimal.Zero
	}
	limit.LastUpdatedAt = time.Now().UTC()
	limit.LastUpdatedBy = userID

	if err := s.bnplRepo.UpdateLimit(ctx, *limit); err != nil {
		return nil, fmt.Errorf("failed to release BNPL usage: %w", err)
	}
	return limit, nil
}

// ownedParty fetches a party and verifies ownership, reporting ErrNotFound
// for other users' parties.
func (s *bnplService) ownedParty(ctx context.Context, userID string, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	if party.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return party, nil
}

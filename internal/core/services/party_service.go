package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
	"github.com/bizbookshq/biz_books_app/internal/utils/numeric"
)

// partyService provides CRUD over customer/vendor counterparties.
type partyService struct {
	partyRepo portsrepo.PartyRepositoryFacade
	txnRepo   portsrepo.TransactionReader
}

// NewPartyService creates a new party service.
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade, txnRepo portsrepo.TransactionReader) portssvc.PartySvcFacade {
	return &partyService{partyRepo: partyRepo, txnRepo: txnRepo}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

// CreateParty persists a new party for the user.
func (s *partyService) CreateParty(ctx context.Context, userID string, req dto.CreatePartyRequest) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	party := req.ToDomainParty()
	party.PartyID = uuid.NewString()
	party.UserID = userID
	party.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		logger.Error("Failed to save party", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save party: %w", err)
	}

	logger.Info("Party created", slog.String("party_id", party.PartyID), slog.String("type", string(party.Type)))
	return &party, nil
}

// GetPartyByID retrieves a party owned by the user.
func (s *partyService) GetPartyByID(ctx context.Context, userID string, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to find party %s: %w", partyID, err)
	}
	if party.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return party, nil
}

// ListParties retrieves the user's parties, optionally narrowed to one type.
func (s *partyService) ListParties(ctx context.Context, userID string, partyType *domain.PartyType) ([]domain.Party, error) {
	parties, err := s.partyRepo.ListPartiesByUser(ctx, userID, partyType)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve parties: %w", err)
	}
	return parties, nil
}

// UpdateParty applies a partial update to a party owned by the user.
func (s *partyService) UpdateParty(ctx context.Context, userID string, partyID string, req dto.UpdatePartyRequest) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.GetPartyByID(ctx, userID, partyID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		party.Name = *req.Name
		updated = true
	}
	if req.State != nil {
		party.State = *req.State
		updated = true
	}
	if req.GSTIN != nil {
		party.GSTIN = *req.GSTIN
		updated = true
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
		updated = true
	}
	if req.Email != nil {
		party.Email = *req.Email
		updated = true
	}
	if req.BillingAddress != nil {
		party.BillingAddress = *req.BillingAddress
		updated = true
	}
	if req.CreditLimit != nil {
		party.CreditLimit = numeric.LenientDecimal(*req.CreditLimit)
		updated = true
	}
	if req.CreditPeriod != nil {
		party.CreditPeriod = *req.CreditPeriod
		updated = true
	}

	if !updated {
		return party, nil
	}

	party.LastUpdatedAt = time.Now().UTC()
	party.LastUpdatedBy = userID

	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		logger.Error("Failed to update party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to update party: %w", err)
	}
	return party, nil
}

// DeleteParty removes a party that has no transactions referencing it.
func (s *partyService) DeleteParty(ctx context.Context, userID string, partyID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetPartyByID(ctx, userID, partyID); err != nil {
		return err
	}

	txns, err := s.txnRepo.FindTransactionsByPartyID(ctx, partyID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check transactions for party %s: %w", partyID, err)
	}
	if len(txns) > 0 {
		return fmt.Errorf("%w: party %s has %d transactions", apperrors.ErrConflict, partyID, len(txns))
	}

	if err := s.partyRepo.DeleteParty(ctx, partyID); err != nil {
		logger.Error("Failed to delete party", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return fmt.Errorf("failed to delete party %s: %w", partyID, err)
	}

	logger.Info("Party deleted", slog.String("party_id", partyID))
	return nil
}

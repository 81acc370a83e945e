package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizbookshq/biz_books_app/internal/apperrors"
	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
)

// PgxPartyRepository persists customer/vendor parties.
type PgxPartyRepository struct {
	pool *pgxpool.Pool
}

// NewPartyRepository creates a new repository for party data.
func NewPartyRepository(pool *pgxpool.Pool) portsrepo.PartyRepositoryFacade {
	return &PgxPartyRepository{pool: pool}
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

const partyColumns = `party_id, user_id, name, type, state, gstin, phone, email, billing_address,
	credit_limit, credit_period, created_at, created_by, last_updated_at, last_updated_by`

// SaveParty persists a new party.
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	query := `
		INSERT INTO parties (` + partyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.pool.Exec(ctx, query,
		party.PartyID,
		party.UserID,
		party.Name,
		party.Type,
		party.State,
		party.GSTIN,
		party.Phone,
		party.Email,
		party.BillingAddress,
		party.CreditLimit,
		party.CreditPeriod,
		party.CreatedAt,
		party.CreatedBy,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert party %s: %w", party.PartyID, err)
	}
	return nil
}

// FindPartyByID retrieves a specific party by its identifier.
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE party_id = $1;`

	var party domain.Party
	err := r.pool.QueryRow(ctx, query, partyID).Scan(
		&party.PartyID,
		&party.UserID,
		&party.Name,
		&party.Type,
		&party.State,
		&party.GSTIN,
		&party.Phone,
		&party.Email,
		&party.BillingAddress,
		&party.CreditLimit,
		&party.CreditPeriod,
		&party.CreatedAt,
		&party.CreatedBy,
		&party.LastUpdatedAt,
		&party.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find party by ID %s: %w", partyID, err)
	}
	return &party, nil
}

// ListPartiesByUser retrieves a user's parties, optionally narrowed to one type.
func (r *PgxPartyRepository) ListPartiesByUser(ctx context.Context, userID string, partyType *domain.PartyType) ([]domain.Party, error) {
	query := `SELECT ` + partyColumns + ` FROM parties WHERE user_id = $1`
	args := []interface{}{userID}
	if partyType != nil {
		query += ` AND type = $2`
		args = append(args, *partyType)
	}
	query += ` ORDER BY name;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties for user %s: %w", userID, err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		var party domain.Party
		if err := rows.Scan(
			&party.PartyID,
			&party.UserID,
			&party.Name,
			&party.Type,
			&party.State,
			&party.GSTIN,
			&party.Phone,
			&party.Email,
			&party.BillingAddress,
			&party.CreditLimit,
			&party.CreditPeriod,
			&party.CreatedAt,
			&party.CreatedBy,
			&party.LastUpdatedAt,
			&party.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan party row: %w", err)
		}
		parties = append(parties, party)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party rows: %w", err)
	}
	return parties, nil
}

// UpdateParty updates an existing party; ErrNotFound if absent.
func (r *PgxPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	query := `
		UPDATE parties
		SET name = $2, state = $3, gstin = $4, phone = $5, email = $6, billing_address = $7,
			credit_limit = $8, credit_period = $9, last_updated_at = $10, last_updated_by = $11
		WHERE party_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		party.PartyID,
		party.Name,
		party.State,
		party.GSTIN,
		party.Phone,
		party.Email,
		party.BillingAddress,
		party.CreditLimit,
		party.CreditPeriod,
		party.LastUpdatedAt,
		party.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update party %s: %w", party.PartyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteParty removes a party.
func (r *PgxPartyRepository) DeleteParty(ctx context.Context, partyID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM parties WHERE party_id = $1;`, partyID)
	if err != nil {
		return fmt.Errorf("failed to delete party %s: %w", partyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

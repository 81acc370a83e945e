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

// PgxBnplLimitRepository persists BNPL credit limits.
type PgxBnplLimitRepository struct {
	pool *pgxpool.Pool
}

// NewBnplLimitRepository creates a new repository for BNPL limit data.
func NewBnplLimitRepository(pool *pgxpool.Pool) portsrepo.BnplLimitRepository {
	return &PgxBnplLimitRepository{pool: pool}
}

var _ portsrepo.BnplLimitRepository = (*PgxBnplLimitRepository)(nil)

const bnplLimitColumns = `bnpl_limit_id, party_id, limit_type, total_limit, used_limit,
	created_at, created_by, last_updated_at, last_updated_by`

// FindLimit retrieves the limit for a party and direction; ErrNotFound if absent.
func (r *PgxBnplLimitRepository) FindLimit(ctx context.Context, partyID string, limitType domain.BnplLimitType) (*domain.BnplLimit, error) {
	query := `SELECT ` + bnplLimitColumns + ` FROM bnpl_limits WHERE party_id = $1 AND limit_type = $2;`

	var limit domain.BnplLimit
	err := r.pool.QueryRow(ctx, query, partyID, limitType).Scan(
		&limit.BnplLimitID,
		&limit.PartyID,
		&limit.LimitType,
		&limit.TotalLimit,
		&limit.UsedLimit,
		&limit.CreatedAt,
		&limit.CreatedBy,
		&limit.LastUpdatedAt,
		&limit.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bnpl limit for party %s: %w", partyID, err)
	}
	return &limit, nil
}

// FindLimitsByPartyID retrieves all limits recorded for a party.
func (r *PgxBnplLimitRepository) FindLimitsByPartyID(ctx context.Context, partyID string) ([]domain.BnplLimit, error) {
	query := `SELECT ` + bnplLimitColumns + ` FROM bnpl_limits WHERE party_id = $1 ORDER BY limit_type;`

	rows, err := r.pool.Query(ctx, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bnpl limits for party %s: %w", partyID, err)
	}
	defer rows.Close()

	limits := []domain.BnplLimit{}
	for rows.Next() {
		var limit domain.BnplLimit
		if err := rows.Scan(
			&limit.BnplLimitID,
			&limit.PartyID,
			&limit.LimitType,
			&limit.TotalLimit,
			&limit.UsedLimit,
			&limit.CreatedAt,
			&limit.CreatedBy,
			&limit.LastUpdatedAt,
			&limit.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bnpl limit row: %w", err)
		}
		limits = append(limits, limit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bnpl limit rows: %w", err)
	}
	return limits, nil
}

// SaveLimit persists a new limit.
func (r *PgxBnplLimitRepository) SaveLimit(ctx context.Context, limit domain.BnplLimit) error {
	query := `
		INSERT INTO bnpl_limits (` + bnplLimitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		limit.BnplLimitID,
		limit.PartyID,
		limit.LimitType,
		limit.TotalLimit,
		limit.UsedLimit,
		limit.CreatedAt,
		limit.CreatedBy,
		limit.LastUpdatedAt,
		limit.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bnpl limit already exists for party %s (%s)", apperrors.ErrDuplicate, limit.PartyID, limit.LimitType)
		}
		return fmt.Errorf("failed to insert bnpl limit %s: %w", limit.BnplLimitID, err)
	}
	return nil
}

// UpdateLimit updates an existing limit; ErrNotFound if absent.
func (r *PgxBnplLimitRepository) UpdateLimit(ctx context.Context, limit domain.BnplLimit) error {
	query := `
		UPDATE bnpl_limits
		SET total_limit = $2, used_limit = $3, last_updated_at = $4, last_updated_by = $5
		WHERE bnpl_limit_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		limit.BnplLimitID,
		limit.TotalLimit,
		limit.UsedLimit,
		limit.LastUpdatedAt,
		limit.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update bnpl limit %s: %w", limit.BnplLimitID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

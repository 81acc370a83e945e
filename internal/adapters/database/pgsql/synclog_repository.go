package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
)

// PgxSyncLogRepository persists ledger-tool sync log entries.
type PgxSyncLogRepository struct {
	pool *pgxpool.Pool
}

// NewSyncLogRepository creates a new repository for sync log data.
func NewSyncLogRepository(pool *pgxpool.Pool) portsrepo.SyncLogRepository {
	return &PgxSyncLogRepository{pool: pool}
}

var _ portsrepo.SyncLogRepository = (*PgxSyncLogRepository)(nil)

const syncLogColumns = `sync_log_id, user_id, sync_type, status, record_count, detail, synced_at,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveSyncLog persists a new sync log entry.
func (r *PgxSyncLogRepository) SaveSyncLog(ctx context.Context, entry domain.SyncLog) error {
	query := `
		INSERT INTO sync_logs (` + syncLogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		entry.SyncLogID,
		entry.UserID,
		entry.SyncType,
		entry.Status,
		entry.RecordCount,
		entry.Detail,
		entry.SyncedAt,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync log %s: %w", entry.SyncLogID, err)
	}
	return nil
}

// ListSyncLogsByUser retrieves a user's most recent sync log entries, newest first.
func (r *PgxSyncLogRepository) ListSyncLogsByUser(ctx context.Context, userID string, limit int) ([]domain.SyncLog, error) {
	query := `SELECT ` + syncLogColumns + ` FROM sync_logs WHERE user_id = $1 ORDER BY synced_at DESC LIMIT $2;`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync logs for user %s: %w", userID, err)
	}
	defer rows.Close()

	entries := []domain.SyncLog{}
	for rows.Next() {
		var entry domain.SyncLog
		if err := rows.Scan(
			&entry.SyncLogID,
			&entry.UserID,
			&entry.SyncType,
			&entry.Status,
			&entry.RecordCount,
			&entry.Detail,
			&entry.SyncedAt,
			&entry.CreatedAt,
			&entry.CreatedBy,
			&entry.LastUpdatedAt,
			&entry.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sync log row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sync log rows: %w", err)
	}
	return entries, nil
}

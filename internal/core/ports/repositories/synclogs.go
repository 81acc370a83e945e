package repositories

import (
	"context"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// SyncLogRepository defines data access for ledger-tool sync logs.
type SyncLogRepository interface {
	// SaveSyncLog persists a new sync log entry.
	SaveSyncLog(ctx context.Context, entry domain.SyncLog) error

	// ListSyncLogsByUser retrieves a user's most recent sync log entries,
	// newest first, capped at limit.
	ListSyncLogsByUser(ctx context.Context, userID string, limit int) ([]domain.SyncLog, error)
}

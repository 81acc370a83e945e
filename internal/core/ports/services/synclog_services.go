package services

import (
	"context"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	"github.com/bizbookshq/biz_books_app/internal/dto"
)

// SyncLogSvcFacade defines sync log operations.
type SyncLogSvcFacade interface {
	// RecordSync persists one sync run against the external ledger tool.
	RecordSync(ctx context.Context, userID string, req dto.CreateSyncLogRequest) (*domain.SyncLog, error)

	// ListSyncLogs retrieves the user's most recent sync runs, newest first.
	ListSyncLogs(ctx context.Context, userID string, limit int) ([]domain.SyncLog, error)
}

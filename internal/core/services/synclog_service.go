package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
	portsrepo "github.com/bizbookshq/biz_books_app/internal/core/ports/repositories"
	portssvc "github.com/bizbookshq/biz_books_app/internal/core/ports/services"
	"github.com/bizbookshq/biz_books_app/internal/dto"
	"github.com/bizbookshq/biz_books_app/internal/middleware"
)

const defaultSyncLogLimit = 50

// syncLogService records and lists sync runs against the external ledger tool.
type syncLogService struct {
	syncRepo portsrepo.SyncLogRepository
}

// NewSyncLogService creates a new sync log service.
func NewSyncLogService(syncRepo portsrepo.SyncLogRepository) portssvc.SyncLogSvcFacade {
	return &syncLogService{syncRepo: syncRepo}
}

var _ portssvc.SyncLogSvcFacade = (*syncLogService)(nil)

// RecordSync persists one sync run.
func (s *syncLogService) RecordSync(ctx context.Context, userID string, req dto.CreateSyncLogRequest) (*domain.SyncLog, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	syncedAt := now
	if req.SyncedAt != nil {
		syncedAt = req.SyncedAt.UTC()
	}

	entry := domain.SyncLog{
		SyncLogID:   uuid.NewString(),
		UserID:      userID,
		SyncType:    req.SyncType,
		Status:      req.Status,
		RecordCount: req.RecordCount,
		Detail:      req.Detail,
		SyncedAt:    syncedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.syncRepo.SaveSyncLog(ctx, entry); err != nil {
		logger.Error("Failed to save sync log", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save sync log: %w", err)
	}

	logger.Info("Sync run recorded",
		slog.String("sync_type", string(entry.SyncType)),
		slog.String("status", string(entry.Status)),
		slog.Int("record_count", entry.RecordCount))
	return &entry, nil
}

// ListSyncLogs retrieves the user's most recent sync runs, newest first.
func (s *syncLogService) ListSyncLogs(ctx context.Context, userID string, limit int) ([]domain.SyncLog, error) {
	if limit <= 0 {
		limit = defaultSyncLogLimit
	}
	logs, err := s.syncRepo.ListSyncLogsByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve sync logs: %w", err)
	}
	return logs, nil
}

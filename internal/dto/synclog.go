package dto

import (
	"time"

	"github.com/bizbookshq/biz_books_app/internal/core/domain"
)

// CreateSyncLogRequest records one sync run against the external ledger tool.
type CreateSyncLogRequest struct {
	SyncType    domain.SyncType   `json:"syncType" binding:"required,oneof=push pull"`
	Status      domain.SyncStatus `json:"status" binding:"required,oneof=success failed partial"`
	RecordCount int               `json:"recordCount" binding:"omitempty,min=0"`
	Detail      string            `json:"detail"`
	SyncedAt    *time.Time        `json:"syncedAt,omitempty"` // Defaults to now
}

// SyncLogResponse defines the data returned for a sync log entry.
type SyncLogResponse struct {
	SyncLogID   string            `json:"syncLogID"`
	SyncType    domain.SyncType   `json:"syncType"`
	Status      domain.SyncStatus `json:"status"`
	RecordCount int               `json:"recordCount"`
	Detail      string            `json:"detail,omitempty"`
	SyncedAt    time.Time         `json:"syncedAt"`
}

// ListSyncLogsResponse wraps a sync log listing.
type ListSyncLogsResponse struct {
	SyncLogs []SyncLogResponse `json:"syncLogs"`
}

// ToSyncLogResponse converts a domain sync log to its response DTO.
func ToSyncLogResponse(l *domain.SyncLog) SyncLogResponse {
	return SyncLogResponse{
		SyncLogID:   l.SyncLogID,
		SyncType:    l.SyncType,
		Status:      l.Status,
		RecordCount: l.RecordCount,
		Detail:      l.Detail,
		SyncedAt:    l.SyncedAt,
	}
}

// ToSyncLogResponses converts a slice of domain sync logs to response DTOs.
func ToSyncLogResponses(logs []domain.SyncLog) []SyncLogResponse {
	responses := make([]SyncLogResponse, len(logs))
	for i := range logs {
		responses[i] = ToSyncLogResponse(&logs[i])
	}
	return responses
}

package domain

import "time"

// SyncType is the direction of a sync run with the external ledger tool.
type SyncType string

const (
	SyncPush SyncType = "push"
	SyncPull SyncType = "pull"
)

// SyncStatus is the outcome of a sync run.
type SyncStatus string

const (
	SyncSuccess SyncStatus = "success"
	SyncFailed  SyncStatus = "failed"
	SyncPartial SyncStatus = "partial"
)

// SyncLog records one synchronization run against the external ledger tool.
type SyncLog struct {
	SyncLogID   string     `json:"syncLogID"` // Primary Key (e.g., UUID)
	UserID      string     `json:"userID"`    // Owning user (Not Null)
	SyncType    SyncType   `json:"syncType"`
	Status      SyncStatus `json:"status"`
	RecordCount int        `json:"recordCount"` // Records transferred in this run
	Detail      string     `json:"detail"`      // Nullable failure detail / summary
	SyncedAt    time.Time  `json:"syncedAt"`
	AuditFields
}

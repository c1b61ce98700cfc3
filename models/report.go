package models

import "time"

// SyncError is one failure recorded during a sync cycle.
type SyncError struct {
	// EntityType and EntityID are empty for cycle-level failures
	// (transport down, offline).
	EntityType EntityType `json:"entity_type,omitempty"`
	EntityID   string     `json:"entity_id,omitempty"`

	// Message is the human-readable failure description.
	Message string `json:"message"`

	// Retryable distinguishes transport failures (retried on the next
	// cycle) from validation rejections (entity parked in error status).
	Retryable bool `json:"retryable"`
}

// PushResult summarizes one push pass.
type PushResult struct {
	ItemsSynced int            `json:"items_synced"`
	ItemsFailed int            `json:"items_failed"`
	Conflicts   []SyncConflict `json:"conflicts,omitempty"`
	Errors      []SyncError    `json:"errors,omitempty"`
}

// PullResult summarizes one pull pass.
type PullResult struct {
	ItemsApplied int            `json:"items_applied"`
	Conflicts    []SyncConflict `json:"conflicts,omitempty"`
	Errors       []SyncError    `json:"errors,omitempty"`

	// ServerTime is the server clock at pull time; it becomes the next
	// cycle's "changes since" watermark so client clock skew never widens
	// or narrows the pull window.
	ServerTime time.Time `json:"server_time"`
}

// SyncReport aggregates push and pull outcomes of one orchestrated cycle.
type SyncReport struct {
	Success     bool           `json:"success"`
	ItemsSynced int            `json:"items_synced"`
	ItemsFailed int            `json:"items_failed"`
	Conflicts   []SyncConflict `json:"conflicts,omitempty"`
	Errors      []SyncError    `json:"errors,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
}

// SyncStats is the non-blocking snapshot served by the status reporter.
type SyncStats struct {
	PendingCount  int        `json:"pending_count"`
	ConflictCount int        `json:"conflict_count"`
	ErrorCount    int        `json:"error_count"`
	IsOnline      bool       `json:"is_online"`
	IsSyncing     bool       `json:"is_syncing"`
	LastSyncAt    *time.Time `json:"last_sync_at,omitempty"`
}

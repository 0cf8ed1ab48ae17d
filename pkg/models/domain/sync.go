package domain

import "time"

type SyncStatus string

const (
	SyncStatusRunning SyncStatus = "running"
	SyncStatusStopped SyncStatus = "stopped"
)

// SyncState tracks how far orders of a source have been copied into the store.
type SyncState struct {
	Source    string
	Status    SyncStatus
	CreatedAt time.Time
	Cursor    *time.Time
}

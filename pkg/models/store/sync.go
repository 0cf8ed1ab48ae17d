package store

import "time"

type SyncState struct {
	Source    string
	CreatedAt time.Time
	Cursor    *time.Time
}

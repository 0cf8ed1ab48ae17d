package api

import "time"

type SyncState struct {
	Source    string     `json:"source"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	Cursor    *time.Time `json:"cursor,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}

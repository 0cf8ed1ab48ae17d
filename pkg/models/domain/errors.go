package domain

import "errors"

var (
	ErrSourceNotFound        = errors.New("source not found")
	ErrUnsupportedSourceType = errors.New("unsupported source type")
	ErrSyncNotRunning        = errors.New("sync not running")
	ErrSyncAlreadyRunning    = errors.New("sync already running")
	ErrCacheMiss             = errors.New("cache miss")
)

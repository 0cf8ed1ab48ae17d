package adapters

import (
	"github.com/de-tools/fabric-atlas/pkg/models/api"
	"github.com/de-tools/fabric-atlas/pkg/models/domain"
	"github.com/de-tools/fabric-atlas/pkg/models/store"
)

func MapStoreSyncStateToDomain(s *store.SyncState, running bool) *domain.SyncState {
	if s == nil {
		return nil
	}

	status := domain.SyncStatusStopped
	if running {
		status = domain.SyncStatusRunning
	}

	return &domain.SyncState{
		Source:    s.Source,
		Status:    status,
		CreatedAt: s.CreatedAt,
		Cursor:    s.Cursor,
	}
}

func MapSyncStateDomainToApi(s domain.SyncState) api.SyncState {
	return api.SyncState{
		Source:    s.Source,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		Cursor:    s.Cursor,
	}
}

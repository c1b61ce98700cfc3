package service

import (
	"context"

	"github.com/savichev/memodeck/internal/adapter"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/models"
)

// statusReporter implements [StatusReporter]. Counts come straight from the
// local replica and the orchestrator's atomic flags, so a snapshot never
// waits on a running cycle.
type statusReporter struct {
	entities     store.LocalEntityRepository
	orchestrator SyncOrchestrator
	connectivity adapter.Connectivity
	logger       *logger.Logger
}

func NewStatusReporter(entities store.LocalEntityRepository, orchestrator SyncOrchestrator, connectivity adapter.Connectivity, logger *logger.Logger) StatusReporter {
	return &statusReporter{
		entities:     entities,
		orchestrator: orchestrator,
		connectivity: connectivity,
		logger:       logger,
	}
}

func (s *statusReporter) Stats(ctx context.Context, userID int64) (models.SyncStats, error) {
	pending, err := s.entities.CountByStatus(ctx, userID, models.SyncStatusPending)
	if err != nil {
		return models.SyncStats{}, err
	}
	conflicts, err := s.entities.CountByStatus(ctx, userID, models.SyncStatusConflict)
	if err != nil {
		return models.SyncStats{}, err
	}
	failed, err := s.entities.CountByStatus(ctx, userID, models.SyncStatusError)
	if err != nil {
		return models.SyncStats{}, err
	}

	return models.SyncStats{
		PendingCount:  pending,
		ConflictCount: conflicts,
		ErrorCount:    failed,
		IsOnline:      s.connectivity.IsOnline(),
		IsSyncing:     s.orchestrator.IsSyncing(),
		LastSyncAt:    s.orchestrator.LastSyncAt(),
	}, nil
}

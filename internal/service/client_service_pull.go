// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/savichev/memodeck/internal/adapter"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/models"
)

// clientPullService implements [ClientPullService]. Remote changes are
// applied per type in deck-before-card order so a pulled card never lands
// before the deck it references.
type clientPullService struct {
	entities  store.LocalEntityRepository
	transport adapter.SyncTransport
	logger    *logger.Logger
	now       func() time.Time
}

func NewClientPullService(entities store.LocalEntityRepository, transport adapter.SyncTransport, logger *logger.Logger) ClientPullService {
	return &clientPullService{
		entities:  entities,
		transport: transport,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *clientPullService) Pull(ctx context.Context, userID int64, since *time.Time) (models.PullResult, error) {
	log := logger.FromContext(ctx)

	changes, err := s.transport.PullChanges(ctx, since)
	if err != nil {
		log.Err(err).
			Str("func", "*clientPullService.Pull").
			Int64("user_id", userID).
			Msg("pull request failed")
		return models.PullResult{}, err
	}

	result := models.PullResult{ServerTime: changes.Timestamp}

	for _, t := range models.EntityTypes() {
		for _, change := range changes.Changes(t) {
			if err := s.applyChange(ctx, userID, t, change, &result); err != nil {
				return result, err
			}
		}
	}

	return result, nil
}

func (s *clientPullService) applyChange(ctx context.Context, userID int64, entityType models.EntityType, change models.RemoteChange, result *models.PullResult) error {
	local, err := s.entities.GetEntity(ctx, entityType, change.Data.ID, userID)
	if err != nil {
		if !errors.Is(err, store.ErrEntityNotFound) {
			return err
		}
		if change.Operation == models.SyncOperationDelete {
			// deletion of something never seen locally
			return nil
		}
		if applyErr := s.saveRemote(ctx, userID, change.Data); applyErr != nil {
			return applyErr
		}
		result.ItemsApplied++
		return nil
	}

	if local.SyncStatus == models.SyncStatusPending || local.SyncStatus == models.SyncStatusConflict {
		if local.Version == change.BaseVersion {
			// echo of the base our local edit already builds on
			return nil
		}
		conflict, buildErr := s.buildConflict(entityType, local, change)
		if buildErr != nil {
			return buildErr
		}
		if markErr := s.entities.MarkConflict(ctx, entityType, local.ID); markErr != nil {
			return markErr
		}
		result.Conflicts = append(result.Conflicts, conflict)
		return nil
	}

	if change.Operation == models.SyncOperationDelete {
		// the server already holds the tombstone, nothing local to keep
		tombstone := change.Data
		tombstone.Deleted = true
		if applyErr := s.saveRemote(ctx, userID, tombstone); applyErr != nil {
			return applyErr
		}
		if purgeErr := s.entities.Purge(ctx, entityType, change.Data.ID); purgeErr != nil {
			return purgeErr
		}
		result.ItemsApplied++
		return nil
	}

	if change.Data.Version <= local.Version {
		// stale echo of a change we already hold
		return nil
	}

	if applyErr := s.saveRemote(ctx, userID, change.Data); applyErr != nil {
		return applyErr
	}
	result.ItemsApplied++
	return nil
}

func (s *clientPullService) saveRemote(ctx context.Context, userID int64, entity models.Entity) error {
	now := s.now()
	entity.UserID = userID
	entity.SyncStatus = models.SyncStatusSynced
	entity.SyncError = ""
	entity.LastSyncedAt = &now
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = now
	}
	return s.entities.SaveRemote(ctx, entity)
}

func (s *clientPullService) buildConflict(entityType models.EntityType, local models.Entity, change models.RemoteChange) (models.SyncConflict, error) {
	fields, err := DiffPayloadFields(local.Payload, change.Data.Payload)
	if err != nil {
		return models.SyncConflict{}, fmt.Errorf("diff conflicted payloads (id=%s): %w", local.ID, err)
	}

	return models.SyncConflict{
		EntityType:       entityType,
		EntityID:         local.ID,
		LocalVersion:     local.Version,
		ServerVersion:    change.Data.Version,
		LocalData:        local,
		ServerData:       change.Data,
		ConflictedFields: fields,
	}, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/internal/utils"
	"github.com/savichev/memodeck/models"
)

// fieldLWWResolver implements [ConflictResolver] with field-level
// last-write-wins: every conflicted field takes the value from the copy with
// the later modification timestamp. A timestamp tie goes to the server, which
// keeps resolution deterministic across devices.
type fieldLWWResolver struct {
	entities store.LocalEntityRepository
	ids      *utils.UUIDGenerator
	logger   *logger.Logger
	now      func() time.Time
}

func NewFieldLWWResolver(entities store.LocalEntityRepository, logger *logger.Logger) ConflictResolver {
	return &fieldLWWResolver{
		entities: entities,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
		now:      time.Now,
	}
}

func (r *fieldLWWResolver) Resolve(ctx context.Context, conflict models.SyncConflict) (models.Entity, error) {
	log := logger.FromContext(ctx)

	localWins := conflict.LocalData.LastModifiedAt.After(conflict.ServerData.LastModifiedAt)

	if conflict.LocalData.Deleted != conflict.ServerData.Deleted {
		return r.resolveDeletion(ctx, conflict, localWins)
	}

	merged := conflict.ServerData
	merged.UserID = conflict.LocalData.UserID

	if localWins && len(conflict.ConflictedFields) > 0 {
		payload, err := mergePayload(conflict.LocalData.Payload, conflict.ServerData.Payload, conflict.ConflictedFields)
		if err != nil {
			return models.Entity{}, fmt.Errorf("merge conflicted payloads (id=%s): %w", conflict.EntityID, err)
		}
		merged.Payload = payload
		merged.LastModifiedAt = conflict.LocalData.LastModifiedAt
	}

	if merged.Version < conflict.LocalData.Version {
		merged.Version = conflict.LocalData.Version
	}

	now := r.now()
	fields := map[string]any{
		"payload":          string(merged.Payload),
		"version":          merged.Version,
		"deleted":          merged.Deleted,
		"last_modified_at": merged.LastModifiedAt,
		"sync_status":      string(models.SyncStatusSynced),
		"sync_error":       "",
		"last_synced_at":   now,
	}
	if merged.ServerID != "" {
		fields["server_id"] = merged.ServerID
	}

	err := r.entities.UpdateEntityFields(ctx, conflict.EntityType, conflict.EntityID, merged.UserID, fields)
	if err != nil {
		return models.Entity{}, err
	}

	merged.SyncStatus = models.SyncStatusSynced
	merged.SyncError = ""
	merged.LastSyncedAt = &now

	log.Debug().
		Str("func", "*fieldLWWResolver.Resolve").
		Str("entity_id", conflict.EntityID).
		Bool("local_wins", localWins).
		Int("conflicted_fields", len(conflict.ConflictedFields)).
		Msg("conflict resolved")

	return merged, nil
}

// resolveDeletion handles deleted-versus-edited divergence with whole-record
// last-write-wins. A winning local tombstone goes back through ApplyMutation
// so a fresh delete lands in the mutation queue; conflict handling dropped
// the old items, and the push cycle only uploads what the queue holds.
func (r *fieldLWWResolver) resolveDeletion(ctx context.Context, conflict models.SyncConflict, localWins bool) (models.Entity, error) {
	now := r.now()

	if localWins && conflict.LocalData.Deleted {
		winner := conflict.LocalData
		if winner.Version <= conflict.ServerData.Version {
			winner.Version = conflict.ServerData.Version + 1
		}
		winner.SyncStatus = models.SyncStatusPending
		winner.SyncError = ""

		snapshot, err := json.Marshal(winner)
		if err != nil {
			return models.Entity{}, fmt.Errorf("snapshot winning tombstone (id=%s): %w", conflict.EntityID, err)
		}
		item := models.MutationQueueItem{
			ID:         r.ids.Generate(),
			Operation:  models.SyncOperationDelete,
			EntityType: winner.Type,
			EntityID:   winner.ID,
			Data:       snapshot,
			Timestamp:  now,
		}
		if err = r.entities.ApplyMutation(ctx, winner, item); err != nil {
			return models.Entity{}, err
		}
		return winner, nil
	}

	winner := conflict.ServerData
	winner.UserID = conflict.LocalData.UserID
	if winner.Version < conflict.LocalData.Version {
		winner.Version = conflict.LocalData.Version
	}
	winner.SyncStatus = models.SyncStatusSynced
	winner.SyncError = ""
	winner.LastSyncedAt = &now

	if !localWins && !conflict.LocalData.Deleted && conflict.ServerData.Deleted {
		// remote delete beat the local edit; drop the local copy entirely
		err := r.entities.UpdateEntityFields(ctx, conflict.EntityType, conflict.EntityID, winner.UserID, map[string]any{
			"deleted":     true,
			"version":     winner.Version,
			"sync_status": string(models.SyncStatusSynced),
			"sync_error":  "",
		})
		if err != nil {
			return models.Entity{}, err
		}
		if err = r.entities.Purge(ctx, conflict.EntityType, conflict.EntityID); err != nil {
			return models.Entity{}, err
		}
		return winner, nil
	}

	// local tombstone lost to a newer remote edit: resurrect with server data
	resurrect := map[string]any{
		"payload":          string(winner.Payload),
		"version":          winner.Version,
		"deleted":          winner.Deleted,
		"last_modified_at": winner.LastModifiedAt,
		"sync_status":      string(models.SyncStatusSynced),
		"sync_error":       "",
		"last_synced_at":   now,
	}
	if winner.ServerID != "" {
		resurrect["server_id"] = winner.ServerID
	}

	err := r.entities.UpdateEntityFields(ctx, conflict.EntityType, conflict.EntityID, winner.UserID, resurrect)
	if err != nil {
		return models.Entity{}, err
	}
	return winner, nil
}

// mergePayload starts from the server payload and overlays the local value
// of every conflicted field.
func mergePayload(local, server json.RawMessage, conflictedFields []string) (json.RawMessage, error) {
	localFields, err := decodeFields(local)
	if err != nil {
		return nil, err
	}
	serverFields, err := decodeFields(server)
	if err != nil {
		return nil, err
	}

	for _, name := range conflictedFields {
		if value, ok := localFields[name]; ok {
			serverFields[name] = value
		} else {
			delete(serverFields, name)
		}
	}

	return json.Marshal(serverFields)
}

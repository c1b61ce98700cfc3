// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/internal/utils"
	"github.com/savichev/memodeck/models"
)

// syncService is the server-side implementation of [SyncService]. Pushes are
// applied change by change; a rejected entity is reported in the response and
// never blocks the rest of the batch.
type syncService struct {
	entities store.ServerEntityRepository
	ids      *utils.UUIDGenerator
	logger   *logger.Logger
	now      func() time.Time
}

func NewSyncService(entities store.ServerEntityRepository, logger *logger.Logger) SyncService {
	return &syncService{
		entities: entities,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
		now:      time.Now,
	}
}

func (s *syncService) ProcessPush(ctx context.Context, userID int64, req models.SyncRequest) (models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	resp := models.SyncResponse{Success: true, Timestamp: s.now()}

	for _, t := range models.EntityTypes() {
		changes := req.Changes(t)
		if len(changes) == 0 {
			continue
		}

		typeResult := &models.SyncTypeResult{}
		for _, change := range changes {
			if err := s.applyChange(ctx, userID, t, change, typeResult); err != nil {
				log.Err(err).
					Str("func", "*syncService.ProcessPush").
					Int64("user_id", userID).
					Msg("push aborted on storage failure")
				return models.SyncResponse{}, err
			}
		}
		resp.SetTypeResult(t, typeResult)
	}

	return resp, nil
}

// applyChange applies one pushed change. Entity-level rejections land in
// typeResult.Errors; only storage failures propagate as errors.
func (s *syncService) applyChange(ctx context.Context, userID int64, entityType models.EntityType, change models.SyncChange, typeResult *models.SyncTypeResult) error {
	if reason := validateChange(change); reason != "" {
		typeResult.Errors = append(typeResult.Errors, models.EntityError{
			EntityID: change.Data.ID,
			Message:  reason,
		})
		return nil
	}

	entity := change.Data
	entity.UserID = userID
	entity.Type = entityType

	switch change.Operation {
	case models.SyncOperationCreate:
		entity.ServerID = s.ids.Generate()
		stored, err := s.entities.ApplyCreate(ctx, entity)
		if err != nil {
			return s.recordFailure(err, entity.ID, typeResult)
		}
		typeResult.Created = append(typeResult.Created, models.CreatedAck{ID: stored.ID, ServerID: stored.ServerID})

	case models.SyncOperationUpdate:
		_, conflict, err := s.entities.ApplyUpdate(ctx, entity)
		if err != nil {
			return s.recordFailure(err, entity.ID, typeResult)
		}
		if conflict != nil {
			typeResult.Conflicts = append(typeResult.Conflicts, *conflict)
			return nil
		}
		typeResult.Updated = append(typeResult.Updated, entity.ID)

	case models.SyncOperationDelete:
		conflict, err := s.entities.ApplyDelete(ctx, entity)
		if err != nil {
			return s.recordFailure(err, entity.ID, typeResult)
		}
		if conflict != nil {
			typeResult.Conflicts = append(typeResult.Conflicts, *conflict)
			return nil
		}
		typeResult.Deleted = append(typeResult.Deleted, entity.ID)
	}

	return nil
}

// recordFailure turns an entity-level error into a response entry and lets
// retryable storage failures abort the batch.
func (s *syncService) recordFailure(err error, entityID string, typeResult *models.SyncTypeResult) error {
	if errors.Is(err, store.ErrStorageUnavailable) {
		return err
	}

	message := "entity rejected"
	if errors.Is(err, store.ErrEntityNotFound) {
		message = store.ErrEntityNotFound.Error()
	}

	typeResult.Errors = append(typeResult.Errors, models.EntityError{
		EntityID: entityID,
		Message:  fmt.Sprintf("%s: %s", message, err),
	})
	return nil
}

func (s *syncService) ChangesSince(ctx context.Context, userID int64, since *time.Time) (models.SyncChanges, error) {
	watermark := time.Time{}
	if since != nil {
		watermark = *since
	}

	remote, err := s.entities.ChangesSince(ctx, userID, watermark)
	if err != nil {
		return models.SyncChanges{}, err
	}

	changes := models.SyncChanges{Timestamp: s.now()}
	for _, t := range models.EntityTypes() {
		var typed []models.RemoteChange
		for _, change := range remote {
			if change.Data.Type == t {
				typed = append(typed, change)
			}
		}
		changes.SetChanges(t, typed)
	}

	return changes, nil
}

func validateChange(change models.SyncChange) string {
	if change.Data.ID == "" {
		return "entity id is required"
	}
	if !change.Operation.Valid() {
		return fmt.Sprintf("unknown operation %q", change.Operation)
	}
	if change.Data.Version < 1 {
		return "version must be positive"
	}
	if len(change.Data.Payload) > 0 && !json.Valid(change.Data.Payload) {
		return "payload is not valid JSON"
	}
	return ""
}

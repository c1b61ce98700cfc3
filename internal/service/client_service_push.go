// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/savichev/memodeck/internal/adapter"
	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/internal/utils"
	"github.com/savichev/memodeck/models"
)

// maxPushPasses bounds one push call so a queue that refills concurrently
// cannot keep the cycle alive forever.
const maxPushPasses = 20

// clientPushService implements [ClientPushService]. Each pass drains one
// batch from the mutation queue, uploads the current state of the affected
// entities and applies the per-entity acknowledgements.
type clientPushService struct {
	entities  store.LocalEntityRepository
	queue     store.MutationQueueRepository
	transport adapter.SyncTransport
	cfg       config.ClientSync
	ids       *utils.UUIDGenerator
	logger    *logger.Logger
	now       func() time.Time
}

func NewClientPushService(storages *store.ClientStorages, transport adapter.SyncTransport, cfg config.ClientSync, logger *logger.Logger) ClientPushService {
	return &clientPushService{
		entities:  storages.EntityRepository,
		queue:     storages.QueueRepository,
		transport: transport,
		cfg:       cfg,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
		now:       time.Now,
	}
}

// pushedState remembers what one entity looked like when its batch was
// uploaded: the version the server acknowledged and the queue items that
// snapshot covered. Acks settle exactly that version and retire exactly
// those items, so a mutation made while the request was in flight survives.
type pushedState struct {
	version int64
	itemIDs []string
}

func (s *clientPushService) Push(ctx context.Context, userID int64) (models.PushResult, error) {
	var (
		result    models.PushResult
		attempted = make(map[string]struct{})
		requeued  bool
	)

	for pass := 0; pass < maxPushPasses; pass++ {
		items, err := s.queue.Drain(ctx, s.cfg.BatchSize)
		if err != nil {
			return result, err
		}
		if len(items) == 0 {
			if requeued {
				return result, nil
			}
			requeued = true
			refilled, err := s.requeueOrphans(ctx, userID)
			if err != nil {
				return result, err
			}
			if !refilled {
				return result, nil
			}
			continue
		}

		done, err := s.pushBatch(ctx, userID, items, attempted, &result)
		if err != nil {
			return result, err
		}
		if done {
			return result, nil
		}
	}

	return result, nil
}

// requeueOrphans re-enqueues pending entities that have no queue item left,
// e.g. a tombstone restored by conflict resolution after its queue items
// were already dropped. It reports whether anything was enqueued.
func (s *clientPushService) requeueOrphans(ctx context.Context, userID int64) (bool, error) {
	pending, err := s.entities.GetPending(ctx, userID)
	if err != nil {
		return false, err
	}

	refilled := false
	for _, entity := range pending {
		if entity.Type == models.EntityTypeSession && !s.cfg.SyncSessions {
			continue
		}

		snapshot, err := json.Marshal(entity)
		if err != nil {
			return false, fmt.Errorf("snapshot pending entity (id=%s): %w", entity.ID, err)
		}
		item := models.MutationQueueItem{
			ID:         s.ids.Generate(),
			Operation:  entity.WireOperation(),
			EntityType: entity.Type,
			EntityID:   entity.ID,
			Data:       snapshot,
			Timestamp:  s.now(),
		}
		if err = s.entities.ApplyMutation(ctx, entity, item); err != nil {
			return false, err
		}
		refilled = true
	}

	return refilled, nil
}

// pushBatch uploads one drained batch. It reports done=true when the batch
// produced no uploadable changes, meaning the queue holds only leftovers of
// settled entities or items already attempted this cycle.
func (s *clientPushService) pushBatch(ctx context.Context, userID int64, items []models.MutationQueueItem, attempted map[string]struct{}, result *models.PushResult) (bool, error) {
	log := logger.FromContext(ctx)

	entities, pushed, err := s.collectPending(ctx, userID, items, attempted)
	if err != nil {
		return false, err
	}
	if len(entities) == 0 {
		return true, nil
	}

	req := models.SyncRequest{}
	for _, t := range models.EntityTypes() {
		var changes []models.SyncChange
		for _, e := range entities {
			if e.Type != t {
				continue
			}
			changes = append(changes, models.SyncChange{Operation: e.WireOperation(), Data: e})
		}
		req.SetChanges(t, changes)
	}
	if req.Empty() {
		return true, nil
	}

	resp, err := s.transport.PushSync(ctx, req)
	if err != nil {
		log.Err(err).
			Str("func", "*clientPushService.Push").
			Int64("user_id", userID).
			Msg("push request failed, queue kept intact")
		return false, err
	}

	for _, t := range models.EntityTypes() {
		typeResult := resp.TypeResult(t)
		if typeResult == nil {
			continue
		}
		if err = s.applyTypeResult(ctx, userID, t, typeResult, resp.Timestamp, items, pushed, result); err != nil {
			return false, err
		}
	}

	result.Errors = append(result.Errors, resp.Errors...)
	return false, nil
}

// collectPending resolves queue items to the current entity state. Items
// whose entity vanished or already settled are removed on the spot; the
// remainder is deduplicated so each entity uploads once per batch. The
// returned map records, per entity, the uploaded version and the queue items
// that version covers.
func (s *clientPushService) collectPending(ctx context.Context, userID int64, items []models.MutationQueueItem, attempted map[string]struct{}) ([]models.Entity, map[string]*pushedState, error) {
	var (
		entities []models.Entity
		pushed   = make(map[string]*pushedState, len(items))
	)

	for _, item := range items {
		if _, ok := attempted[item.ID]; ok {
			continue
		}
		attempted[item.ID] = struct{}{}

		if state, ok := pushed[item.EntityID]; ok {
			// a later item of an entity already collected this batch; the
			// uploaded snapshot covers it, so the ack may retire it too
			state.itemIDs = append(state.itemIDs, item.ID)
			continue
		}

		if item.EntityType == models.EntityTypeSession && !s.cfg.SyncSessions {
			// session sync was switched off after this item was queued;
			// localize the session instead of letting it clog the queue
			entity, err := s.entities.GetEntity(ctx, item.EntityType, item.EntityID, userID)
			if err != nil {
				if errors.Is(err, store.ErrEntityNotFound) {
					if removeErr := s.queue.RemoveForEntity(ctx, item.EntityType, item.EntityID); removeErr != nil {
						return nil, nil, removeErr
					}
					continue
				}
				return nil, nil, err
			}
			if err = s.entities.MarkSynced(ctx, item.EntityType, item.EntityID, "", entity.Version, s.now()); err != nil &&
				!errors.Is(err, store.ErrEntityNotFound) {
				return nil, nil, err
			}
			if err = s.queue.RemoveForEntity(ctx, item.EntityType, item.EntityID); err != nil {
				return nil, nil, err
			}
			continue
		}

		entity, err := s.entities.GetEntity(ctx, item.EntityType, item.EntityID, userID)
		if err != nil {
			if errors.Is(err, store.ErrEntityNotFound) {
				if removeErr := s.queue.RemoveForEntity(ctx, item.EntityType, item.EntityID); removeErr != nil {
					return nil, nil, removeErr
				}
				continue
			}
			return nil, nil, err
		}

		if entity.SyncStatus != models.SyncStatusPending {
			if removeErr := s.queue.RemoveForEntity(ctx, item.EntityType, item.EntityID); removeErr != nil {
				return nil, nil, removeErr
			}
			continue
		}

		pushed[item.EntityID] = &pushedState{version: entity.Version, itemIDs: []string{item.ID}}
		entities = append(entities, entity)
	}

	return entities, pushed, nil
}

func (s *clientPushService) applyTypeResult(
	ctx context.Context,
	userID int64,
	entityType models.EntityType,
	typeResult *models.SyncTypeResult,
	serverTime time.Time,
	items []models.MutationQueueItem,
	pushed map[string]*pushedState,
	result *models.PushResult,
) error {
	for _, ack := range typeResult.Created {
		if err := s.ackEntity(ctx, entityType, ack.ID, ack.ServerID, pushed[ack.ID], serverTime); err != nil {
			return err
		}
		result.ItemsSynced++
	}

	for _, id := range typeResult.Updated {
		if err := s.ackEntity(ctx, entityType, id, "", pushed[id], serverTime); err != nil {
			return err
		}
		result.ItemsSynced++
	}

	for _, id := range typeResult.Deleted {
		state := pushed[id]
		if state == nil {
			continue
		}
		// the tombstone first settles as synced, then the row is retired for
		// good; a tombstone cannot be edited concurrently, so the blanket
		// queue removal is safe here
		if err := s.entities.MarkSynced(ctx, entityType, id, "", state.version, serverTime); err != nil &&
			!errors.Is(err, store.ErrEntityNotFound) {
			return err
		}
		if err := s.entities.Purge(ctx, entityType, id); err != nil {
			return err
		}
		if err := s.queue.RemoveForEntity(ctx, entityType, id); err != nil {
			return err
		}
		result.ItemsSynced++
	}

	for _, remote := range typeResult.Conflicts {
		conflict, err := s.buildConflict(ctx, userID, entityType, remote)
		if err != nil {
			return err
		}
		if err = s.entities.MarkConflict(ctx, entityType, remote.EntityID); err != nil {
			return err
		}
		if err = s.queue.RemoveForEntity(ctx, entityType, remote.EntityID); err != nil {
			return err
		}
		result.Conflicts = append(result.Conflicts, conflict)
	}

	for _, entityErr := range typeResult.Errors {
		if err := s.parkFailedEntity(ctx, entityType, entityErr, items); err != nil {
			return err
		}
		result.ItemsFailed++
		result.Errors = append(result.Errors, models.SyncError{
			EntityType: entityType,
			EntityID:   entityErr.EntityID,
			Message:    entityErr.Message,
			Retryable:  false,
		})
	}

	return nil
}

// ackEntity settles one acknowledged entity. MarkSynced applies only while
// the entity still holds the pushed version; when an edit landed during the
// request the guard misses, the entity stays pending and only the drained
// snapshot items retire, leaving the fresh mutation for the next push.
func (s *clientPushService) ackEntity(ctx context.Context, entityType models.EntityType, entityID, serverID string, state *pushedState, serverTime time.Time) error {
	if state == nil {
		return nil
	}

	if err := s.entities.MarkSynced(ctx, entityType, entityID, serverID, state.version, serverTime); err != nil &&
		!errors.Is(err, store.ErrEntityNotFound) {
		return err
	}
	for _, itemID := range state.itemIDs {
		if err := s.queue.Remove(ctx, itemID); err != nil {
			return err
		}
	}
	return nil
}

// parkFailedEntity records a server-side rejection. Rejections are retried a
// few times because some clear up on their own (a card pushed before its
// deck's create was acknowledged); once the retry budget is spent the entity
// is parked in error status and its queue items are dropped.
func (s *clientPushService) parkFailedEntity(ctx context.Context, entityType models.EntityType, entityErr models.EntityError, items []models.MutationQueueItem) error {
	exhausted := false

	for _, item := range items {
		if item.EntityType != entityType || item.EntityID != entityErr.EntityID {
			continue
		}
		if item.RetryCount+1 >= s.cfg.MaxRetries {
			exhausted = true
			continue
		}
		if err := s.queue.MarkFailed(ctx, item.ID, entityErr.Message); err != nil {
			return err
		}
	}

	if !exhausted {
		return nil
	}

	if err := s.entities.MarkSyncError(ctx, entityType, entityErr.EntityID, entityErr.Message); err != nil {
		return err
	}
	return s.queue.RemoveForEntity(ctx, entityType, entityErr.EntityID)
}

func (s *clientPushService) buildConflict(ctx context.Context, userID int64, entityType models.EntityType, remote models.RemoteConflict) (models.SyncConflict, error) {
	local, err := s.entities.GetEntity(ctx, entityType, remote.EntityID, userID)
	if err != nil {
		return models.SyncConflict{}, fmt.Errorf("load local side of conflict (id=%s): %w", remote.EntityID, err)
	}

	fields, err := DiffPayloadFields(local.Payload, remote.ServerData.Payload)
	if err != nil {
		return models.SyncConflict{}, err
	}

	return models.SyncConflict{
		EntityType:       entityType,
		EntityID:         remote.EntityID,
		LocalVersion:     local.Version,
		ServerVersion:    remote.ServerVersion,
		LocalData:        local,
		ServerData:       remote.ServerData,
		ConflictedFields: fields,
	}, nil
}

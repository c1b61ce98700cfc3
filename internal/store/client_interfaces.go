package store

import (
	"context"
	"time"

	"github.com/savichev/memodeck/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalEntityRepository is the low-level repository for the client's local
// replica of syncable entities.
type LocalEntityRepository interface {
	// ApplyMutation writes the mutated entity and appends its mutation
	// queue item in one transaction, so the queue and entity state can
	// never diverge.
	ApplyMutation(ctx context.Context, entity models.Entity, item models.MutationQueueItem) error

	// GetEntity loads one entity, tombstones included.
	// Returns [ErrEntityNotFound] when no row exists.
	GetEntity(ctx context.Context, entityType models.EntityType, entityID string, userID int64) (models.Entity, error)

	// ListEntities loads all live entities of one type for the user.
	// Tombstones are included only when includeDeleted is set.
	ListEntities(ctx context.Context, entityType models.EntityType, userID int64, includeDeleted bool) ([]models.Entity, error)

	// GetPending returns every entity with SyncStatusPending, oldest ID
	// first, across all types.
	GetPending(ctx context.Context, userID int64) ([]models.Entity, error)

	// SaveRemote upserts an entity received from the server, already
	// stamped as synced. No queue item is written.
	SaveRemote(ctx context.Context, entity models.Entity) error

	// MarkSynced flips the entity to SyncStatusSynced, records the server
	// acknowledgment time, clears any retained error, and stores serverID
	// when non-empty. The update only applies while the entity still holds
	// version; a mutation made after the push snapshot leaves the row
	// pending and MarkSynced returns [ErrEntityNotFound].
	MarkSynced(ctx context.Context, entityType models.EntityType, entityID string, serverID string, version int64, at time.Time) error

	// MarkSyncError parks the entity in SyncStatusError retaining the
	// server's message.
	MarkSyncError(ctx context.Context, entityType models.EntityType, entityID string, message string) error

	// MarkConflict flags the entity as diverged pending resolution.
	MarkConflict(ctx context.Context, entityType models.EntityType, entityID string) error

	// UpdateEntityFields applies a partial column update to one entity row.
	// Used by the conflict resolver to write a merged record.
	UpdateEntityFields(ctx context.Context, entityType models.EntityType, entityID string, userID int64, fields map[string]any) error

	// CountByStatus counts the user's entities in the given sync status
	// across all types.
	CountByStatus(ctx context.Context, userID int64, status models.SyncStatus) (int, error)

	// Purge physically removes an acknowledged tombstone row.
	Purge(ctx context.Context, entityType models.EntityType, entityID string) error
}

// MutationQueueRepository reads and acknowledges the append-only local
// mutation log. Items are inserted by [LocalEntityRepository.ApplyMutation]
// inside the entity transaction.
type MutationQueueRepository interface {
	// Drain returns the oldest queued items up to limit for one
	// synchronizer pass.
	Drain(ctx context.Context, limit int) ([]models.MutationQueueItem, error)

	// Remove deletes a single acknowledged item.
	Remove(ctx context.Context, itemID string) error

	// RemoveForEntity deletes every queued item for the given entity once
	// its push is acknowledged.
	RemoveForEntity(ctx context.Context, entityType models.EntityType, entityID string) error

	// MarkFailed increments the item's retry counter and retains the
	// failure message.
	MarkFailed(ctx context.Context, itemID string, message string) error

	// Len returns the current queue depth.
	Len(ctx context.Context) (int, error)
}

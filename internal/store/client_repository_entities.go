package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/models"
)

type localEntityRepository struct {
	*DB
	logger *logger.Logger
}

func NewLocalEntityRepository(db *DB, logger *logger.Logger) LocalEntityRepository {
	return &localEntityRepository{
		DB:     db,
		logger: logger,
	}
}

func (l *localEntityRepository) ApplyMutation(ctx context.Context, entity models.Entity, item models.MutationQueueItem) error {
	log := logger.FromContext(ctx)

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.ApplyMutation").
			Str("entity_id", entity.ID).
			Msg("failed to begin mutation transaction")
		return fmt.Errorf("failed to begin mutation transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, upsertEntity,
		entity.ID,
		entity.ServerID,
		entity.UserID,
		string(entity.Type),
		entity.Version,
		string(entity.Payload),
		string(entity.SyncStatus),
		entity.Deleted,
		entity.SyncError,
		entity.LastModifiedAt,
		nullableTime(entity.LastSyncedAt),
		entity.CreatedAt,
	); err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.ApplyMutation").
			Str("entity_id", entity.ID).
			Msg("failed to upsert entity")
		return fmt.Errorf("failed to upsert entity (id=%s): %w", entity.ID, err)
	}

	if _, err = tx.ExecContext(ctx, enqueueMutation,
		item.ID,
		string(item.Operation),
		string(item.EntityType),
		item.EntityID,
		string(item.Data),
		item.Timestamp,
		item.RetryCount,
		item.LastError,
	); err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.ApplyMutation").
			Str("entity_id", entity.ID).
			Msg("failed to enqueue mutation")
		return fmt.Errorf("failed to enqueue mutation (entity_id=%s): %w", entity.ID, err)
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.ApplyMutation").
			Str("entity_id", entity.ID).
			Msg("failed to commit mutation transaction")
		return fmt.Errorf("failed to commit mutation transaction: %w", err)
	}

	return nil
}

func (l *localEntityRepository) GetEntity(ctx context.Context, entityType models.EntityType, entityID string, userID int64) (models.Entity, error) {
	log := logger.FromContext(ctx)

	row := l.DB.QueryRowContext(ctx, getSingleEntity, string(entityType), entityID, userID)

	entity, err := scanEntity(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entity{}, ErrEntityNotFound
		}
		log.Err(err).
			Str("func", "localEntityRepository.GetEntity").
			Str("entity_id", entityID).
			Msg("failed to scan entity row")
		return models.Entity{}, fmt.Errorf("failed to scan entity row: %w", err)
	}

	return entity, nil
}

func (l *localEntityRepository) ListEntities(ctx context.Context, entityType models.EntityType, userID int64, includeDeleted bool) ([]models.Entity, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(entityColumns...).
		From("entities").
		Where(sq.Eq{"entity_type": string(entityType), "user_id": userID}).
		OrderBy("id")
	if !includeDeleted {
		builder = builder.Where(sq.Eq{"deleted": false})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.ListEntities").
			Int64("user_id", userID).
			Msg("failed to execute query for listing entities")
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer rows.Close()

	return collectEntities(rows)
}

func (l *localEntityRepository) GetPending(ctx context.Context, userID int64) ([]models.Entity, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, getPendingEntities, userID)
	if err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.GetPending").
			Int64("user_id", userID).
			Msg("failed to execute query for pending entities")
		return nil, fmt.Errorf("failed to query pending entities: %w", err)
	}
	defer rows.Close()

	return collectEntities(rows)
}

func (l *localEntityRepository) SaveRemote(ctx context.Context, entity models.Entity) error {
	log := logger.FromContext(ctx)

	_, err := l.DB.ExecContext(ctx, upsertEntity,
		entity.ID,
		entity.ServerID,
		entity.UserID,
		string(entity.Type),
		entity.Version,
		string(entity.Payload),
		string(entity.SyncStatus),
		entity.Deleted,
		entity.SyncError,
		entity.LastModifiedAt,
		nullableTime(entity.LastSyncedAt),
		entity.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.SaveRemote").
			Str("entity_id", entity.ID).
			Msg("failed to upsert remote entity")
		return fmt.Errorf("failed to save remote entity (id=%s): %w", entity.ID, err)
	}

	return nil
}

func (l *localEntityRepository) MarkSynced(ctx context.Context, entityType models.EntityType, entityID string, serverID string, version int64, at time.Time) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, markEntitySynced, serverID, serverID, at, string(entityType), entityID, version)
	if err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.MarkSynced").
			Str("entity_id", entityID).
			Msg("failed to mark entity as synced")
		return fmt.Errorf("failed to mark entity as synced (id=%s): %w", entityID, err)
	}

	return requireRowsAffected(result, entityID)
}

func (l *localEntityRepository) MarkSyncError(ctx context.Context, entityType models.EntityType, entityID string, message string) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, markEntitySyncError, message, string(entityType), entityID)
	if err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.MarkSyncError").
			Str("entity_id", entityID).
			Msg("failed to mark entity sync error")
		return fmt.Errorf("failed to mark entity sync error (id=%s): %w", entityID, err)
	}

	return requireRowsAffected(result, entityID)
}

func (l *localEntityRepository) MarkConflict(ctx context.Context, entityType models.EntityType, entityID string) error {
	log := logger.FromContext(ctx)

	result, err := l.DB.ExecContext(ctx, markEntityConflict, string(entityType), entityID)
	if err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.MarkConflict").
			Str("entity_id", entityID).
			Msg("failed to mark entity conflict")
		return fmt.Errorf("failed to mark entity conflict (id=%s): %w", entityID, err)
	}

	return requireRowsAffected(result, entityID)
}

func (l *localEntityRepository) UpdateEntityFields(ctx context.Context, entityType models.EntityType, entityID string, userID int64, fields map[string]any) error {
	log := logger.FromContext(ctx)

	if len(fields) == 0 {
		return nil
	}

	query, args, err := sq.Update("entities").
		SetMap(fields).
		Where(sq.Eq{"entity_type": string(entityType), "id": entityID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.UpdateEntityFields").
			Str("entity_id", entityID).
			Msg("failed to execute partial entity update")
		return fmt.Errorf("failed to update entity fields (id=%s): %w", entityID, err)
	}

	return requireRowsAffected(result, entityID)
}

func (l *localEntityRepository) CountByStatus(ctx context.Context, userID int64, status models.SyncStatus) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.Select("COUNT(*)").
		From("entities").
		Where(sq.Eq{"user_id": userID, "sync_status": string(status)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int
	if err = l.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.CountByStatus").
			Int64("user_id", userID).
			Msg("failed to count entities by status")
		return 0, fmt.Errorf("failed to count entities by status: %w", err)
	}

	return count, nil
}

func (l *localEntityRepository) Purge(ctx context.Context, entityType models.EntityType, entityID string) error {
	log := logger.FromContext(ctx)

	if _, err := l.DB.ExecContext(ctx, purgeEntity, string(entityType), entityID); err != nil {
		log.Err(err).
			Str("func", "localEntityRepository.Purge").
			Str("entity_id", entityID).
			Msg("failed to purge tombstone")
		return fmt.Errorf("failed to purge tombstone (id=%s): %w", entityID, err)
	}

	return nil
}

var entityColumns = []string{
	"id",
	"server_id",
	"user_id",
	"entity_type",
	"version",
	"payload",
	"sync_status",
	"deleted",
	"sync_error",
	"last_modified_at",
	"last_synced_at",
	"created_at",
}

func scanEntity(scan func(dest ...any) error) (models.Entity, error) {
	var (
		entity       models.Entity
		entityType   string
		payload      string
		status       string
		lastSyncedAt sql.NullTime
	)

	err := scan(
		&entity.ID,
		&entity.ServerID,
		&entity.UserID,
		&entityType,
		&entity.Version,
		&payload,
		&status,
		&entity.Deleted,
		&entity.SyncError,
		&entity.LastModifiedAt,
		&lastSyncedAt,
		&entity.CreatedAt,
	)
	if err != nil {
		return models.Entity{}, err
	}

	entity.Type = models.EntityType(entityType)
	entity.Payload = []byte(payload)
	entity.SyncStatus = models.SyncStatus(status)
	if lastSyncedAt.Valid {
		t := lastSyncedAt.Time
		entity.LastSyncedAt = &t
	}

	return entity, nil
}

func collectEntities(rows *sql.Rows) ([]models.Entity, error) {
	var items []models.Entity

	for rows.Next() {
		item, err := scanEntity(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entity row: %w", err)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating entity rows: %w", rowsErr)
	}

	return items, nil
}

func requireRowsAffected(result sql.Result, entityID string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected (id=%s): %w", entityID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w (id=%s)", ErrEntityNotFound, entityID)
	}
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

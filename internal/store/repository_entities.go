package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/models"
)

// serverEntityRepository is the PostgreSQL-backed implementation of
// [ServerEntityRepository]. Push operations run their version check inside a
// transaction holding a row lock, so concurrent pushes for the same entity
// serialise instead of clobbering each other.
type serverEntityRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewServerEntityRepository constructs a [ServerEntityRepository] backed by
// the provided database connection and logger.
func NewServerEntityRepository(db *DB, logger *logger.Logger) ServerEntityRepository {
	logger.Debug().Msg("creating server entity repository")
	return &serverEntityRepository{
		db:     db,
		logger: logger,
	}
}

func (r *serverEntityRepository) ApplyCreate(ctx context.Context, entity models.Entity) (models.Entity, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createEntity,
		entity.ServerID,
		entity.ID,
		entity.UserID,
		string(entity.Type),
		entity.Version,
		string(entity.Payload),
		entity.Deleted,
		entity.LastModifiedAt,
		entity.CreatedAt,
	)

	stored, _, err := scanServerEntity(row.Scan)
	if err != nil {
		log.Err(err).Str("func", "*serverEntityRepository.ApplyCreate").Str("client_id", entity.ID).Msg("error: create failed")
		return models.Entity{}, r.wrapDBError(err)
	}

	return stored, nil
}

func (r *serverEntityRepository) ApplyUpdate(ctx context.Context, entity models.Entity) (models.Entity, *models.RemoteConflict, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Entity{}, nil, r.wrapDBError(err)
	}
	defer tx.Rollback()

	current, _, err := lockServerEntity(ctx, tx, entity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Entity{}, nil, fmt.Errorf("%w (client_id=%s)", ErrEntityNotFound, entity.ID)
		}
		log.Err(err).Str("func", "*serverEntityRepository.ApplyUpdate").Str("client_id", entity.ID).Msg("error: row lock failed")
		return models.Entity{}, nil, r.wrapDBError(err)
	}

	if entity.Version <= current.Version {
		return models.Entity{}, &models.RemoteConflict{
			EntityID:      entity.ID,
			ServerVersion: current.Version,
			ServerData:    current,
		}, nil
	}

	if err = applyServerEntity(ctx, tx, current, entity, entity.Deleted); err != nil {
		log.Err(err).Str("func", "*serverEntityRepository.ApplyUpdate").Str("client_id", entity.ID).Msg("error: update failed")
		return models.Entity{}, nil, r.wrapDBError(err)
	}

	if err = tx.Commit(); err != nil {
		return models.Entity{}, nil, r.wrapDBError(err)
	}

	stored := entity
	stored.ServerID = current.ServerID
	return stored, nil, nil
}

func (r *serverEntityRepository) ApplyDelete(ctx context.Context, entity models.Entity) (*models.RemoteConflict, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, r.wrapDBError(err)
	}
	defer tx.Rollback()

	current, _, err := lockServerEntity(ctx, tx, entity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// deleting what the server never saw is a success
			return nil, nil
		}
		log.Err(err).Str("func", "*serverEntityRepository.ApplyDelete").Str("client_id", entity.ID).Msg("error: row lock failed")
		return nil, r.wrapDBError(err)
	}

	if current.Deleted {
		return nil, nil
	}

	if entity.Version <= current.Version {
		return &models.RemoteConflict{
			EntityID:      entity.ID,
			ServerVersion: current.Version,
			ServerData:    current,
		}, nil
	}

	if err = applyServerEntity(ctx, tx, current, entity, true); err != nil {
		log.Err(err).Str("func", "*serverEntityRepository.ApplyDelete").Str("client_id", entity.ID).Msg("error: delete failed")
		return nil, r.wrapDBError(err)
	}

	if err = tx.Commit(); err != nil {
		return nil, r.wrapDBError(err)
	}

	return nil, nil
}

func (r *serverEntityRepository) ChangesSince(ctx context.Context, userID int64, since time.Time) ([]models.RemoteChange, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getChangesSince, userID, since)
	if err != nil {
		log.Err(err).Str("func", "*serverEntityRepository.ChangesSince").Int64("user_id", userID).Msg("error: changes query failed")
		return nil, r.wrapDBError(err)
	}
	defer rows.Close()

	var changes []models.RemoteChange
	for rows.Next() {
		entity, baseVersion, scanErr := scanServerEntity(rows.Scan)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan entity change row: %w", scanErr)
		}

		changes = append(changes, models.RemoteChange{
			Operation:   remoteOperation(entity, baseVersion),
			Data:        entity,
			BaseVersion: baseVersion,
		})
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating entity change rows: %w", rowsErr)
	}

	return changes, nil
}

func (r *serverEntityRepository) PurgeTombstones(ctx context.Context, olderThan time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, purgeTombstones, olderThan)
	if err != nil {
		log.Err(err).Str("func", "*serverEntityRepository.PurgeTombstones").Msg("error: purge failed")
		return 0, r.wrapDBError(err)
	}

	purged, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get purged row count: %w", err)
	}

	return purged, nil
}

// wrapDBError tags transient driver failures so the transport layer can tell
// clients to retry instead of discarding their queue items.
func (r *serverEntityRepository) wrapDBError(err error) error {
	if r.db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return fmt.Errorf("unexpected DB error: %w", err)
}

func lockServerEntity(ctx context.Context, tx *sql.Tx, entity models.Entity) (models.Entity, int64, error) {
	row := tx.QueryRowContext(ctx, getEntityForUpdate, entity.UserID, string(entity.Type), entity.ID)
	return scanServerEntity(row.Scan)
}

func applyServerEntity(ctx context.Context, tx *sql.Tx, current, incoming models.Entity, deleted bool) error {
	_, err := tx.ExecContext(ctx, updateEntity,
		incoming.Version,
		current.Version,
		string(incoming.Payload),
		deleted,
		incoming.LastModifiedAt,
		current.ServerID,
	)
	return err
}

func scanServerEntity(scan func(dest ...any) error) (models.Entity, int64, error) {
	var (
		entity      models.Entity
		entityType  string
		payload     string
		baseVersion int64
	)

	err := scan(
		&entity.ServerID,
		&entity.ID,
		&entity.UserID,
		&entityType,
		&entity.Version,
		&baseVersion,
		&payload,
		&entity.Deleted,
		&entity.LastModifiedAt,
		&entity.CreatedAt,
	)
	if err != nil {
		return models.Entity{}, 0, err
	}

	entity.Type = models.EntityType(entityType)
	entity.Payload = []byte(payload)
	return entity, baseVersion, nil
}

func remoteOperation(entity models.Entity, baseVersion int64) models.SyncOperation {
	switch {
	case entity.Deleted:
		return models.SyncOperationDelete
	case baseVersion == 0:
		return models.SyncOperationCreate
	default:
		return models.SyncOperationUpdate
	}
}

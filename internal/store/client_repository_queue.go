// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/models"
)

type mutationQueueRepository struct {
	*DB
	logger *logger.Logger
}

func NewMutationQueueRepository(db *DB, logger *logger.Logger) MutationQueueRepository {
	return &mutationQueueRepository{
		DB:     db,
		logger: logger,
	}
}

func (m *mutationQueueRepository) Drain(ctx context.Context, limit int) ([]models.MutationQueueItem, error) {
	log := logger.FromContext(ctx)

	rows, err := m.DB.QueryContext(ctx, drainQueue, limit)
	if err != nil {
		log.Err(err).
			Str("func", "mutationQueueRepository.Drain").
			Msg("failed to query mutation queue")
		return nil, fmt.Errorf("failed to query mutation queue: %w", err)
	}
	defer rows.Close()

	var items []models.MutationQueueItem
	for rows.Next() {
		var (
			item      models.MutationQueueItem
			operation string
			eType     string
			data      string
		)

		err = rows.Scan(
			&item.ID,
			&operation,
			&eType,
			&item.EntityID,
			&data,
			&item.Timestamp,
			&item.RetryCount,
			&item.LastError,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mutation queue row: %w", err)
		}

		item.Operation = models.SyncOperation(operation)
		item.EntityType = models.EntityType(eType)
		item.Data = []byte(data)
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("error iterating mutation queue rows: %w", rowsErr)
	}

	return items, nil
}

func (m *mutationQueueRepository) Remove(ctx context.Context, itemID string) error {
	log := logger.FromContext(ctx)

	if _, err := m.DB.ExecContext(ctx, removeQueueItem, itemID); err != nil {
		log.Err(err).
			Str("func", "mutationQueueRepository.Remove").
			Str("item_id", itemID).
			Msg("failed to remove mutation queue item")
		return fmt.Errorf("failed to remove mutation queue item (id=%s): %w", itemID, err)
	}

	return nil
}

func (m *mutationQueueRepository) RemoveForEntity(ctx context.Context, entityType models.EntityType, entityID string) error {
	log := logger.FromContext(ctx)

	if _, err := m.DB.ExecContext(ctx, removeQueueItemsForEntity, string(entityType), entityID); err != nil {
		log.Err(err).
			Str("func", "mutationQueueRepository.RemoveForEntity").
			Str("entity_id", entityID).
			Msg("failed to remove mutation queue items for entity")
		return fmt.Errorf("failed to remove mutation queue items (entity_id=%s): %w", entityID, err)
	}

	return nil
}

func (m *mutationQueueRepository) MarkFailed(ctx context.Context, itemID string, message string) error {
	log := logger.FromContext(ctx)

	if _, err := m.DB.ExecContext(ctx, markQueueItemFailed, message, itemID); err != nil {
		log.Err(err).
			Str("func", "mutationQueueRepository.MarkFailed").
			Str("item_id", itemID).
			Msg("failed to mark mutation queue item as failed")
		return fmt.Errorf("failed to mark mutation queue item as failed (id=%s): %w", itemID, err)
	}

	return nil
}

func (m *mutationQueueRepository) Len(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	var count int
	if err := m.DB.QueryRowContext(ctx, countQueueItems).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "mutationQueueRepository.Len").
			Msg("failed to count mutation queue items")
		return 0, fmt.Errorf("failed to count mutation queue items: %w", err)
	}

	return count, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	upsertEntity = `
		INSERT INTO entities (
			id,
			server_id,
			user_id,
			entity_type,
			version,
			payload,
			sync_status,
			deleted,
			sync_error,
			last_modified_at,
			last_synced_at,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			server_id        = excluded.server_id,
			version          = excluded.version,
			payload          = excluded.payload,
			sync_status      = excluded.sync_status,
			deleted          = excluded.deleted,
			sync_error       = excluded.sync_error,
			last_modified_at = excluded.last_modified_at,
			last_synced_at   = excluded.last_synced_at;`

	enqueueMutation = `
		INSERT INTO mutation_queue (
			id,
			operation,
			entity_type,
			entity_id,
			data,
			created_at,
			retry_count,
			last_error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?);`

	getSingleEntity = `
		SELECT
			id,
			server_id,
			user_id,
			entity_type,
			version,
			payload,
			sync_status,
			deleted,
			sync_error,
			last_modified_at,
			last_synced_at,
			created_at
		FROM entities
		WHERE entity_type = ? AND id = ? AND user_id = ?;`

	getPendingEntities = `
		SELECT
			id,
			server_id,
			user_id,
			entity_type,
			version,
			payload,
			sync_status,
			deleted,
			sync_error,
			last_modified_at,
			last_synced_at,
			created_at
		FROM entities
		WHERE user_id = ? AND sync_status = 'pending'
		ORDER BY id;`

	// The version guard keeps an acknowledgement from settling an entity
	// that was edited again while the push request was in flight.
	markEntitySynced = `
		UPDATE entities SET
			sync_status    = 'synced',
			server_id      = CASE WHEN ? <> '' THEN ? ELSE server_id END,
			last_synced_at = ?,
			sync_error     = ''
		WHERE entity_type = ? AND id = ? AND version = ?;`

	markEntitySyncError = `
		UPDATE entities SET
			sync_status = 'error',
			sync_error  = ?
		WHERE entity_type = ? AND id = ?;`

	markEntityConflict = `
		UPDATE entities SET
			sync_status = 'conflict'
		WHERE entity_type = ? AND id = ?;`

	purgeEntity = `
		DELETE FROM entities
		WHERE entity_type = ? AND id = ? AND deleted = 1;`

	drainQueue = `
		SELECT
			id,
			operation,
			entity_type,
			entity_id,
			data,
			created_at,
			retry_count,
			last_error
		FROM mutation_queue
		ORDER BY retry_count, id
		LIMIT ?;`

	removeQueueItem = `
		DELETE FROM mutation_queue
		WHERE id = ?;`

	removeQueueItemsForEntity = `
		DELETE FROM mutation_queue
		WHERE entity_type = ? AND entity_id = ?;`

	markQueueItemFailed = `
		UPDATE mutation_queue SET
			retry_count = retry_count + 1,
			last_error  = ?
		WHERE id = ?;`

	countQueueItems = `
		SELECT COUNT(*) FROM mutation_queue;`
)

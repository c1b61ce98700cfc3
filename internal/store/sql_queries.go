// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	createUser = `INSERT INTO users (login, password_hash, name)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, password_hash, name, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, name, created_at
    FROM users
    WHERE login = $1;`

	// The no-op DO UPDATE makes RETURNING yield the existing row when a
	// create is replayed after a lost ack.
	createEntity = `INSERT INTO entities (
			server_id,
			client_id,
			user_id,
			entity_type,
			version,
			base_version,
			payload,
			deleted,
			last_modified_at,
			updated_at,
			created_at
		) VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, NOW(), $9)
		ON CONFLICT (user_id, entity_type, client_id) DO UPDATE SET client_id = EXCLUDED.client_id
		RETURNING server_id, client_id, user_id, entity_type, version, base_version, payload, deleted, last_modified_at, created_at;`

	getEntityForUpdate = `SELECT server_id, client_id, user_id, entity_type, version, base_version, payload, deleted, last_modified_at, created_at
		FROM entities
		WHERE user_id = $1 AND entity_type = $2 AND client_id = $3
		FOR UPDATE;`

	updateEntity = `UPDATE entities
		SET version = $1, base_version = $2, payload = $3, deleted = $4, last_modified_at = $5, updated_at = NOW()
		WHERE server_id = $6;`

	getChangesSince = `SELECT server_id, client_id, user_id, entity_type, version, base_version, payload, deleted, last_modified_at, created_at
		FROM entities
		WHERE user_id = $1 AND updated_at > $2
		ORDER BY updated_at, server_id;`

	purgeTombstones = `DELETE FROM entities
		WHERE deleted = TRUE AND updated_at < $1;`
)

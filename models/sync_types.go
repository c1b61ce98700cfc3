// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// EntityType identifies which syncable table a record belongs to.
type EntityType string

const (
	EntityTypeDeck    EntityType = "deck"
	EntityTypeCard    EntityType = "card"
	EntityTypeSession EntityType = "session"
)

// EntityTypes lists every known entity type in a stable order. Synchronizers
// iterate over this slice so that decks are always applied before the cards
// that reference them.
func EntityTypes() []EntityType {
	return []EntityType{EntityTypeDeck, EntityTypeCard, EntityTypeSession}
}

// Valid reports whether t is one of the known entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityTypeDeck, EntityTypeCard, EntityTypeSession:
		return true
	default:
		return false
	}
}

// SyncStatus describes where a local record stands relative to the server.
type SyncStatus string

const (
	// SyncStatusSynced means the local version equals the last version the
	// server acknowledged.
	SyncStatusSynced SyncStatus = "synced"

	// SyncStatusPending means the record carries local mutations the server
	// has not acknowledged yet.
	SyncStatusPending SyncStatus = "pending"

	// SyncStatusConflict means a pull detected a concurrent remote edit and
	// the record awaits resolution.
	SyncStatusConflict SyncStatus = "conflict"

	// SyncStatusError means the server rejected the record with a
	// non-retryable error; the message is kept on the entity.
	SyncStatusError SyncStatus = "error"
)

// Valid reports whether s is one of the known sync statuses.
func (s SyncStatus) Valid() bool {
	switch s {
	case SyncStatusSynced, SyncStatusPending, SyncStatusConflict, SyncStatusError:
		return true
	default:
		return false
	}
}

// SyncOperation is the wire operation derived from local entity state.
type SyncOperation string

const (
	SyncOperationCreate SyncOperation = "create"
	SyncOperationUpdate SyncOperation = "update"
	SyncOperationDelete SyncOperation = "delete"
)

// Valid reports whether o is one of the known sync operations.
func (o SyncOperation) Valid() bool {
	switch o {
	case SyncOperationCreate, SyncOperationUpdate, SyncOperationDelete:
		return true
	default:
		return false
	}
}

// ParseSyncOperation converts a raw string (queue row, wire payload) into a
// SyncOperation, rejecting unknown values instead of letting them flow
// silently through the synchronizers.
func ParseSyncOperation(raw string) (SyncOperation, error) {
	op := SyncOperation(raw)
	if !op.Valid() {
		return "", fmt.Errorf("unknown sync operation %q", raw)
	}
	return op, nil
}

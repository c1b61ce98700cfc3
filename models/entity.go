package models

import (
	"encoding/json"
	"time"
)

// Entity is the sync envelope shared by every syncable record (deck, card,
// review session). The type-specific fields live in Payload as an opaque JSON
// object; the envelope carries everything the sync engine needs to reconcile
// the record with the server.
//
// SyncStatus and LastSyncedAt are local bookkeeping and never travel over the
// wire.
type Entity struct {
	// ID is the locally generated identifier: a UUIDv7, globally unique and
	// time-sortable.
	ID string `json:"id"`

	// ServerID is the remote identifier. Empty until the first successful
	// push is acknowledged.
	ServerID string `json:"server_id,omitempty"`

	// UserID is the owner of the record, for multi-tenant scoping.
	UserID int64 `json:"user_id"`

	// Type discriminates the payload shape.
	Type EntityType `json:"entity_type"`

	// Version is incremented on every local mutation and must never
	// decrease. The server acknowledges versions; Version greater than the
	// last acknowledged one is exactly what SyncStatusPending means.
	Version int64 `json:"version"`

	// Payload holds the type-specific fields as a JSON object.
	Payload json.RawMessage `json:"payload"`

	// Deleted is the soft-delete tombstone. The row stays queryable locally
	// until the server acknowledges the deletion.
	Deleted bool `json:"deleted"`

	// LastModifiedAt is the timestamp of the last local mutation. Conflict
	// resolution compares this field between the local and server copies.
	LastModifiedAt time.Time `json:"last_modified_at"`

	// CreatedAt is when the record was first created on this device.
	CreatedAt time.Time `json:"created_at"`

	SyncStatus   SyncStatus `json:"-"`
	LastSyncedAt *time.Time `json:"-"`

	// SyncError retains the server's rejection message while the record sits
	// in SyncStatusError.
	SyncError string `json:"-"`
}

// WireOperation derives the sync operation to transmit from local state:
// delete for tombstones, create for records the server has never seen,
// update otherwise.
func (e Entity) WireOperation() SyncOperation {
	switch {
	case e.Deleted:
		return SyncOperationDelete
	case e.ServerID == "":
		return SyncOperationCreate
	default:
		return SyncOperationUpdate
	}
}

// DecodePayload unmarshals the opaque payload into the typed destination
// (Deck, Card, ReviewSession).
func (e Entity) DecodePayload(dst any) error {
	return json.Unmarshal(e.Payload, dst)
}

// TableName returns the name of the local database table holding all
// syncable entities.
func (e *Entity) TableName() string {
	return "entities"
}

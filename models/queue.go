// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"time"
)

// MutationQueueItem is one row of the append-only local mutation log. Every
// state-changing local operation writes exactly one item in the same
// transaction that updates the entity, so a crash between mutation and
// transmission cannot silently lose the change.
type MutationQueueItem struct {
	// ID is a UUIDv7 assigned at enqueue time.
	ID string `json:"id"`

	// Operation is the intent recorded at enqueue time. It may differ from
	// the operation eventually derived at push time (e.g. an update queued
	// before the entity was ever pushed still goes out as a create).
	Operation SyncOperation `json:"operation"`

	// EntityType and EntityID identify the mutated record.
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`

	// Data is the entity payload snapshot taken at enqueue time.
	Data json.RawMessage `json:"data"`

	// Timestamp is when the mutation occurred.
	Timestamp time.Time `json:"timestamp"`

	// RetryCount counts failed push attempts for this item.
	RetryCount int `json:"retry_count"`

	// LastError holds the most recent push failure message, if any.
	LastError string `json:"last_error,omitempty"`
}

// TableName returns the name of the local database table backing the queue.
func (i *MutationQueueItem) TableName() string {
	return "mutation_queue"
}

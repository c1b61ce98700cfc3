// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncChange is one outbound operation in a push request: the wire operation
// derived from local state plus the full entity envelope at push time.
type SyncChange struct {
	Operation SyncOperation `json:"operation"`
	Data      Entity        `json:"data"`
}

// SyncRequest is the body of POST /api/sync. Entities are partitioned by
// type; absent slices mean "nothing to push for this type".
type SyncRequest struct {
	// LastSyncAt is the client's last successful sync watermark, informational
	// for the server's metrics. Nil on the first ever sync.
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`

	Decks    []SyncChange `json:"decks,omitempty"`
	Cards    []SyncChange `json:"cards,omitempty"`
	Sessions []SyncChange `json:"sessions,omitempty"`
}

// Changes returns the batch for one entity type. Exhaustive over EntityType.
func (r SyncRequest) Changes(t EntityType) []SyncChange {
	switch t {
	case EntityTypeDeck:
		return r.Decks
	case EntityTypeCard:
		return r.Cards
	case EntityTypeSession:
		return r.Sessions
	default:
		return nil
	}
}

// SetChanges stores the batch for one entity type.
func (r *SyncRequest) SetChanges(t EntityType, changes []SyncChange) {
	switch t {
	case EntityTypeDeck:
		r.Decks = changes
	case EntityTypeCard:
		r.Cards = changes
	case EntityTypeSession:
		r.Sessions = changes
	}
}

// Empty reports whether the request carries no changes at all.
func (r SyncRequest) Empty() bool {
	return len(r.Decks) == 0 && len(r.Cards) == 0 && len(r.Sessions) == 0
}

// CreatedAck maps a client-side entity ID to the server identifier assigned
// on first create.
type CreatedAck struct {
	ID       string `json:"id"`
	ServerID string `json:"server_id"`
}

// EntityError is a per-entity rejection inside an otherwise successful push
// response. These are non-retryable: the entity is parked in error status
// with the message kept.
type EntityError struct {
	EntityID string `json:"entity_id"`
	Message  string `json:"message"`
}

// SyncTypeResult is the per-type block of a push response: which ids were
// acknowledged, which diverged, which were rejected.
type SyncTypeResult struct {
	Created   []CreatedAck     `json:"created,omitempty"`
	Updated   []string         `json:"updated,omitempty"`
	Deleted   []string         `json:"deleted,omitempty"`
	Conflicts []RemoteConflict `json:"conflicts,omitempty"`
	Errors    []EntityError    `json:"errors,omitempty"`
}

// SyncResponse is the body of a POST /api/sync response.
type SyncResponse struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`

	Decks    *SyncTypeResult `json:"decks,omitempty"`
	Cards    *SyncTypeResult `json:"cards,omitempty"`
	Sessions *SyncTypeResult `json:"sessions,omitempty"`

	// Errors holds request-level failures not attributable to one entity.
	Errors []SyncError `json:"errors,omitempty"`
}

// TypeResult returns the result block for one entity type, or nil when the
// push carried nothing of that type.
func (r SyncResponse) TypeResult(t EntityType) *SyncTypeResult {
	switch t {
	case EntityTypeDeck:
		return r.Decks
	case EntityTypeCard:
		return r.Cards
	case EntityTypeSession:
		return r.Sessions
	default:
		return nil
	}
}

// SetTypeResult stores the result block for one entity type.
func (r *SyncResponse) SetTypeResult(t EntityType, res *SyncTypeResult) {
	switch t {
	case EntityTypeDeck:
		r.Decks = res
	case EntityTypeCard:
		r.Cards = res
	case EntityTypeSession:
		r.Sessions = res
	}
}

// RemoteChange is one server-side change delivered by GET /api/sync/changes.
type RemoteChange struct {
	Operation SyncOperation `json:"operation"`
	Data      Entity        `json:"data"`

	// BaseVersion is the version the server last acknowledged from this
	// client's lineage before applying the remote edit. The pull
	// synchronizer compares it against the local version to tell "local is
	// simply behind" from "both sides diverged".
	BaseVersion int64 `json:"base_version"`
}

// SyncChanges is the body of a GET /api/sync/changes response, shaped like
// the push response's per-type blocks.
type SyncChanges struct {
	Timestamp time.Time `json:"timestamp"`

	Decks    []RemoteChange `json:"decks,omitempty"`
	Cards    []RemoteChange `json:"cards,omitempty"`
	Sessions []RemoteChange `json:"sessions,omitempty"`
}

// Changes returns the remote changes for one entity type.
func (c SyncChanges) Changes(t EntityType) []RemoteChange {
	switch t {
	case EntityTypeDeck:
		return c.Decks
	case EntityTypeCard:
		return c.Cards
	case EntityTypeSession:
		return c.Sessions
	default:
		return nil
	}
}

// SetChanges stores the remote changes for one entity type.
func (c *SyncChanges) SetChanges(t EntityType, changes []RemoteChange) {
	switch t {
	case EntityTypeDeck:
		c.Decks = changes
	case EntityTypeCard:
		c.Cards = changes
	case EntityTypeSession:
		c.Sessions = changes
	}
}

// Total counts all remote changes across types.
func (c SyncChanges) Total() int {
	return len(c.Decks) + len(c.Cards) + len(c.Sessions)
}

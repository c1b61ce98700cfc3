package service

import (
	"context"
	"time"

	"github.com/savichev/memodeck/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_services_mock.go -package=mock

// ClientEntityService defines the client-side contract for managing decks,
// cards and review sessions. Every mutation is applied to the local replica
// and recorded in the durable mutation queue in the same transaction; nothing
// here talks to the network.
type ClientEntityService interface {
	// CreateDeck assigns a fresh id, stores the deck locally in pending state
	// and enqueues the create for the next push.
	CreateDeck(ctx context.Context, userID int64, deck models.Deck) (models.Entity, error)

	// UpdateDeck replaces the deck payload, bumps the local version and
	// enqueues the update. Returns [store.ErrEntityNotFound] for unknown or
	// deleted decks.
	UpdateDeck(ctx context.Context, userID int64, entityID string, deck models.Deck) (models.Entity, error)

	// CreateCard and UpdateCard mirror the deck operations for cards.
	CreateCard(ctx context.Context, userID int64, card models.Card) (models.Entity, error)
	UpdateCard(ctx context.Context, userID int64, entityID string, card models.Card) (models.Entity, error)

	// RecordReview grades a card: the scheduler recomputes the card's ease
	// factor, interval and due date, the card update and a new review session
	// are both stored locally and enqueued. Returns the updated card entity.
	RecordReview(ctx context.Context, userID int64, cardEntityID string, grade models.ReviewGrade, duration time.Duration) (models.Entity, error)

	// Get loads one entity from the local replica.
	Get(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Entity, error)

	// List loads all non-deleted entities of one type from the local replica.
	List(ctx context.Context, userID int64, entityType models.EntityType) ([]models.Entity, error)

	// Delete soft-deletes the entity, bumps its version and enqueues the
	// delete. The tombstone survives locally until the server acknowledges it.
	Delete(ctx context.Context, userID int64, entityType models.EntityType, entityID string) error
}

// ClientAuthService defines the client-side contract for account access. On
// success the transport keeps the issued bearer token for subsequent sync
// calls.
type ClientAuthService interface {
	// Register creates a new account on the server and returns the
	// server-assigned user id.
	Register(ctx context.Context, user models.User) (int64, error)

	// Login authenticates against the server and returns the user id
	// extracted from the issued token.
	Login(ctx context.Context, user models.User) (int64, error)
}

// ClientPushService uploads pending local changes.
type ClientPushService interface {
	// Push drains the mutation queue in batches and uploads the current state
	// of every pending entity, applying server acknowledgements as they come
	// back. A transport-level failure aborts the pass with the queue intact.
	Push(ctx context.Context, userID int64) (models.PushResult, error)
}

// ClientPullService downloads and applies remote changes.
type ClientPullService interface {
	// Pull fetches changes recorded after since (nil means everything),
	// applies non-conflicting ones to the local replica and reports
	// conflicts for entities with concurrent local edits. The returned
	// ServerTime is the next cycle's watermark.
	Pull(ctx context.Context, userID int64, since *time.Time) (models.PullResult, error)
}

// ConflictResolver merges a diverged entity pair into a single record.
type ConflictResolver interface {
	// Resolve merges the conflict field by field, persists the merged record
	// to the local replica in synced state and returns it.
	Resolve(ctx context.Context, conflict models.SyncConflict) (models.Entity, error)
}

// SyncOrchestrator runs complete sync cycles: push, then pull, then conflict
// resolution. At most one cycle runs at a time.
type SyncOrchestrator interface {
	// SyncNow runs one cycle. Concurrent callers coalesce onto the in-flight
	// cycle and all receive its report. When the server is unreachable the
	// report carries a single retryable error and no state is touched.
	SyncNow(ctx context.Context, userID int64) (models.SyncReport, error)

	// IsSyncing reports whether a cycle is currently in flight.
	IsSyncing() bool

	// LastSyncAt returns the server timestamp of the last successful cycle,
	// or nil before the first one.
	LastSyncAt() *time.Time
}

// StatusReporter serves sync state snapshots without blocking on a running
// cycle.
type StatusReporter interface {
	Stats(ctx context.Context, userID int64) (models.SyncStats, error)
}

// ClientSyncJob is the background worker that triggers sync cycles on a
// timer and on reconnect.
type ClientSyncJob interface {
	// Start launches the background goroutine. It syncs every interval,
	// defaulting to 30 seconds if interval is zero or negative, and
	// immediately when connectivity comes back. Any previously running job
	// is stopped before the new one begins.
	Start(ctx context.Context, userID int64, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()

	// Flush makes one bounded attempt to push whatever is still queued.
	// Meant for shutdown; failures are logged, never returned.
	Flush(ctx context.Context, userID int64, timeout time.Duration)
}

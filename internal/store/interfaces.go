package store

import (
	"context"
	"time"

	"github.com/savichev/memodeck/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, user models.User) (models.User, error)
}

// ServerEntityRepository is the authoritative store for syncable entities.
// Apply* methods implement the push side of the protocol and enforce the
// version check; ChangesSince implements the pull side.
type ServerEntityRepository interface {
	// ApplyCreate inserts a new entity and returns the stored row. A retried
	// create for an already known (user, type, client id) triple returns the
	// existing row instead of failing, so lost acks are safe to replay.
	ApplyCreate(ctx context.Context, entity models.Entity) (models.Entity, error)

	// ApplyUpdate replaces the entity payload when the incoming version is
	// strictly greater than the stored one. A stale version yields a
	// [models.RemoteConflict] carrying the server copy; the row is untouched.
	ApplyUpdate(ctx context.Context, entity models.Entity) (models.Entity, *models.RemoteConflict, error)

	// ApplyDelete marks the entity deleted under the same version check as
	// ApplyUpdate. Deleting an unknown entity is a no-op.
	ApplyDelete(ctx context.Context, entity models.Entity) (*models.RemoteConflict, error)

	// ChangesSince returns every change for the user whose server-side
	// updated_at is strictly after since, oldest first.
	ChangesSince(ctx context.Context, userID int64, since time.Time) ([]models.RemoteChange, error)

	// PurgeTombstones deletes soft-deleted rows older than olderThan and
	// reports how many were removed.
	PurgeTombstones(ctx context.Context, olderThan time.Time) (int64, error)
}

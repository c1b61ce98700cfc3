package service

import (
	"context"
	"time"

	"github.com/savichev/memodeck/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

// AuthService handles account registration, credential verification and JWT
// lifecycle on the server.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// SyncService applies pushed client batches to the authoritative store and
// serves the change feed for pulls.
type SyncService interface {
	// ProcessPush applies every change in the request under optimistic
	// version checks and reports the per-entity outcome. Entity-level
	// failures never abort the batch; only storage-level failures do.
	ProcessPush(ctx context.Context, userID int64, req models.SyncRequest) (models.SyncResponse, error)

	// ChangesSince returns all changes for the user recorded after since,
	// partitioned by entity type. A nil since returns the full state.
	ChangesSince(ctx context.Context, userID int64, since *time.Time) (models.SyncChanges, error)
}

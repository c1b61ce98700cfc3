package store

import (
	"context"
	"fmt"

	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
)

// Storages groups the server-side repositories behind a single value handed
// to the service layer.
type Storages struct {
	UserRepository   UserRepository
	EntityRepository ServerEntityRepository
}

// NewStorages connects to PostgreSQL, runs pending migrations and wires up
// the server repositories.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.MigrateServer(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		UserRepository:   NewUserRepository(db, logger),
		EntityRepository: NewServerEntityRepository(db, logger),
	}, nil
}

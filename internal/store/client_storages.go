package store

import (
	"context"
	"fmt"

	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// EntityRepository is the SQLite-backed repository for syncable
	// entities stored locally on the client device.
	EntityRepository LocalEntityRepository

	// QueueRepository reads and acknowledges durable mutation queue items.
	QueueRepository MutationQueueRepository
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.Path,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.MigrateClient].
//  3. Constructs and returns a [ClientStorages] value wired to fresh
//     repositories sharing the single connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		EntityRepository: NewLocalEntityRepository(db, logger),
		QueueRepository:  NewMutationQueueRepository(db, logger),
	}, nil
}

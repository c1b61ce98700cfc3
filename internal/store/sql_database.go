package store

import (
	"database/sql"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/migrations"
)

type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func (db *DB) MigrateClient() error {
	return migrations.MigrateClient(db.DB)
}

func (db *DB) MigrateServer() error {
	return migrations.MigrateServer(db.DB)
}

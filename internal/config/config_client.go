package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// BaseURL is the server endpoint the client talks to.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// LogPath is the optional client log file.
	LogPath string
}

// ClientDBConfig contains local database connection settings for the client.
type ClientDBConfig struct {
	// Path is the SQLite database file path used by the client.
	Path string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDBConfig
}

// ClientSync holds the synchronization policy for the client orchestrator,
// mapped from the shared [Sync] section.
type ClientSync struct {
	AutoSync     bool
	Interval     time.Duration
	BatchSize    int
	MaxRetries   int
	Network      NetworkType
	SyncSessions bool
	FlushTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport settings.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains the synchronization policy.
	Sync ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			LogPath:        cfg.Adapter.LogPath,
		},
		Storage: ClientStorage{
			DB: ClientDBConfig{
				Path: cfg.Storage.ClientDB.Path,
			},
		},
		Sync: ClientSync{
			AutoSync:     cfg.Sync.AutoSync,
			Interval:     cfg.Sync.Interval,
			BatchSize:    cfg.Sync.BatchSize,
			MaxRetries:   cfg.Sync.MaxRetries,
			Network:      cfg.Sync.Network,
			SyncSessions: cfg.Sync.SyncSessions,
			FlushTimeout: cfg.Sync.FlushTimeout,
		},
	}

	return clientCfg, clientCfg.validate()
}

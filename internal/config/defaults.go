package config

import "time"

// Default sync policy values, applied after all sources are merged so an
// explicit zero from the user never survives into the orchestrator.
const (
	DefaultSyncInterval       = 30 * time.Second
	DefaultBatchSize          = 50
	DefaultMaxRetries         = 3
	DefaultRequestTimeout     = 15 * time.Second
	DefaultFlushTimeout       = 3 * time.Second
	DefaultPurgeSchedule      = "0 3 * * *"
	DefaultTombstoneRetention = 30 * 24 * time.Hour
)

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Sync.Interval <= 0 {
		cfg.Sync.Interval = DefaultSyncInterval
	}
	if cfg.Sync.BatchSize <= 0 {
		cfg.Sync.BatchSize = DefaultBatchSize
	}
	if cfg.Sync.MaxRetries <= 0 {
		cfg.Sync.MaxRetries = DefaultMaxRetries
	}
	if cfg.Sync.Network == "" {
		cfg.Sync.Network = NetworkAny
	}
	if cfg.Sync.FlushTimeout <= 0 {
		cfg.Sync.FlushTimeout = DefaultFlushTimeout
	}
	if cfg.Adapter.RequestTimeout <= 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.PurgeSchedule == "" {
		cfg.Workers.PurgeSchedule = DefaultPurgeSchedule
	}
	if cfg.Workers.TombstoneRetention <= 0 {
		cfg.Workers.TombstoneRetention = DefaultTombstoneRetention
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/store"
)

// purgeWorker deletes acknowledged tombstones older than the retention
// window. Clients that have not pulled within the window fall back to a
// full resync, so the window doubles as the maximum tolerated offline gap.
type purgeWorker struct {
	cron      *cron.Cron
	entities  store.ServerEntityRepository
	retention time.Duration
	schedule  string
	logger    *logger.Logger
	now       func() time.Time
}

// NewPurgeWorker creates a cron-scheduled tombstone purge job.
func NewPurgeWorker(entities store.ServerEntityRepository, cfg config.Workers, logger *logger.Logger) Worker {
	return &purgeWorker{
		cron:      cron.New(),
		entities:  entities,
		retention: cfg.TombstoneRetention,
		schedule:  cfg.PurgeSchedule,
		logger:    logger,
		now:       time.Now,
	}
}

func (w *purgeWorker) Start() error {
	log := w.logger.With().Str("func", "purgeWorker.Start").Logger()

	if _, err := w.cron.AddFunc(w.schedule, w.runOnce); err != nil {
		return err
	}
	w.cron.Start()
	log.Info().Str("schedule", w.schedule).Dur("retention", w.retention).Msg("tombstone purge worker started")

	return nil
}

func (w *purgeWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info().Str("func", "purgeWorker.Stop").Msg("tombstone purge worker stopped")
}

func (w *purgeWorker) runOnce() {
	log := w.logger.With().Str("func", "purgeWorker.runOnce").Logger()

	olderThan := w.now().Add(-w.retention)
	purged, err := w.entities.PurgeTombstones(context.Background(), olderThan)
	if err != nil {
		log.Error().Err(err).Msg("tombstone purge failed")
		return
	}
	log.Info().Int64("purged", purged).Time("older_than", olderThan).Msg("tombstone purge completed")
}

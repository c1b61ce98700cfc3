// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/savichev/memodeck/internal/adapter"
	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/models"
)

// syncOrchestrator implements [SyncOrchestrator]. It sequences one cycle as
// push, push-conflict resolution, pull, pull-conflict resolution, and uses a
// singleflight group so overlapping triggers (timer, reconnect, manual)
// coalesce onto one running cycle.
type syncOrchestrator struct {
	push         ClientPushService
	pull         ClientPullService
	resolver     ConflictResolver
	connectivity adapter.Connectivity
	cfg          config.ClientSync
	logger       *logger.Logger
	now          func() time.Time

	group   singleflight.Group
	syncing atomic.Bool

	mu         sync.Mutex
	lastSyncAt *time.Time
}

func NewSyncOrchestrator(
	push ClientPushService,
	pull ClientPullService,
	resolver ConflictResolver,
	connectivity adapter.Connectivity,
	cfg config.ClientSync,
	logger *logger.Logger,
) SyncOrchestrator {
	return &syncOrchestrator{
		push:         push,
		pull:         pull,
		resolver:     resolver,
		connectivity: connectivity,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (o *syncOrchestrator) SyncNow(ctx context.Context, userID int64) (models.SyncReport, error) {
	report, err, _ := o.group.Do("sync", func() (any, error) {
		return o.runCycle(ctx, userID), nil
	})
	if err != nil {
		return models.SyncReport{}, err
	}
	return report.(models.SyncReport), nil
}

func (o *syncOrchestrator) IsSyncing() bool {
	return o.syncing.Load()
}

func (o *syncOrchestrator) LastSyncAt() *time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.lastSyncAt == nil {
		return nil
	}
	t := *o.lastSyncAt
	return &t
}

func (o *syncOrchestrator) runCycle(ctx context.Context, userID int64) models.SyncReport {
	log := logger.FromContext(ctx)

	report := models.SyncReport{Timestamp: o.now()}

	if !o.connectivity.IsOnline() {
		report.Errors = append(report.Errors, models.SyncError{
			Message:   adapter.ErrOffline.Error(),
			Retryable: true,
		})
		return report
	}

	if o.cfg.Network == config.NetworkUnmetered && o.connectivity.NetworkType() != config.NetworkUnmetered {
		report.Errors = append(report.Errors, models.SyncError{
			Message:   ErrSyncSkippedMetered.Error(),
			Retryable: true,
		})
		return report
	}

	o.syncing.Store(true)
	defer o.syncing.Store(false)

	pushResult, err := o.push.Push(ctx, userID)
	o.mergePush(&report, pushResult)
	if err != nil {
		log.Err(err).Str("func", "*syncOrchestrator.runCycle").Msg("push failed")
		report.Errors = append(report.Errors, models.SyncError{
			Message:   err.Error(),
			Retryable: adapter.Retryable(err),
		})
		return report
	}

	o.resolveConflicts(ctx, pushResult.Conflicts, &report)

	since := o.LastSyncAt()
	pullResult, err := o.pull.Pull(ctx, userID, since)
	o.mergePull(&report, pullResult)
	if err != nil {
		log.Err(err).Str("func", "*syncOrchestrator.runCycle").Msg("pull failed")
		report.Errors = append(report.Errors, models.SyncError{
			Message:   err.Error(),
			Retryable: adapter.Retryable(err),
		})
		return report
	}

	o.resolveConflicts(ctx, pullResult.Conflicts, &report)

	if !pullResult.ServerTime.IsZero() {
		o.mu.Lock()
		serverTime := pullResult.ServerTime
		o.lastSyncAt = &serverTime
		o.mu.Unlock()
	}

	report.Success = len(report.Errors) == 0
	return report
}

func (o *syncOrchestrator) resolveConflicts(ctx context.Context, conflicts []models.SyncConflict, report *models.SyncReport) {
	log := logger.FromContext(ctx)

	for _, conflict := range conflicts {
		if _, err := o.resolver.Resolve(ctx, conflict); err != nil {
			log.Err(err).
				Str("func", "*syncOrchestrator.resolveConflicts").
				Str("entity_id", conflict.EntityID).
				Msg("conflict resolution failed")
			report.Errors = append(report.Errors, models.SyncError{
				EntityType: conflict.EntityType,
				EntityID:   conflict.EntityID,
				Message:    err.Error(),
				Retryable:  false,
			})
		}
	}
}

func (o *syncOrchestrator) mergePush(report *models.SyncReport, result models.PushResult) {
	report.ItemsSynced += result.ItemsSynced
	report.ItemsFailed += result.ItemsFailed
	report.Conflicts = append(report.Conflicts, result.Conflicts...)
	report.Errors = append(report.Errors, result.Errors...)
}

func (o *syncOrchestrator) mergePull(report *models.SyncReport, result models.PullResult) {
	report.ItemsSynced += result.ItemsApplied
	report.Conflicts = append(report.Conflicts, result.Conflicts...)
	report.Errors = append(report.Errors, result.Errors...)
}

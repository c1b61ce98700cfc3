package service

import (
	"context"
	"testing"
	"time"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/mock"
	"github.com/savichev/memodeck/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestStatusReporter_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock.NewMockLocalEntityRepository(ctrl)
	mockOrch := mock.NewMockSyncOrchestrator(ctrl)
	mockConn := mock.NewMockConnectivity(ctrl)
	reporter := NewStatusReporter(mockRepo, mockOrch, mockConn, logger.Nop())

	ctx := context.Background()
	lastSync := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	mockRepo.EXPECT().CountByStatus(ctx, int64(1), models.SyncStatusPending).Return(4, nil)
	mockRepo.EXPECT().CountByStatus(ctx, int64(1), models.SyncStatusConflict).Return(1, nil)
	mockRepo.EXPECT().CountByStatus(ctx, int64(1), models.SyncStatusError).Return(2, nil)
	mockConn.EXPECT().IsOnline().Return(true)
	mockOrch.EXPECT().IsSyncing().Return(false)
	mockOrch.EXPECT().LastSyncAt().Return(&lastSync)

	stats, err := reporter.Stats(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.PendingCount)
	assert.Equal(t, 1, stats.ConflictCount)
	assert.Equal(t, 2, stats.ErrorCount)
	assert.True(t, stats.IsOnline)
	assert.False(t, stats.IsSyncing)
	require.NotNil(t, stats.LastSyncAt)
	assert.Equal(t, lastSync, *stats.LastSyncAt)
}

func TestStatusReporter_Stats_CountFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock.NewMockLocalEntityRepository(ctrl)
	mockOrch := mock.NewMockSyncOrchestrator(ctrl)
	mockConn := mock.NewMockConnectivity(ctrl)
	reporter := NewStatusReporter(mockRepo, mockOrch, mockConn, logger.Nop())

	ctx := context.Background()
	mockRepo.EXPECT().CountByStatus(ctx, int64(1), models.SyncStatusPending).Return(0, assert.AnError)

	_, err := reporter.Stats(ctx, 1)

	assert.ErrorIs(t, err, assert.AnError)
}

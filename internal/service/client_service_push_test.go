// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/savichev/memodeck/internal/adapter"
	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/mock"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestPushSvc(
	t *testing.T,
	ctrl *gomock.Controller,
	cfg config.ClientSync,
) (*clientPushService, *mock.MockLocalEntityRepository, *mock.MockMutationQueueRepository, *mock.MockSyncTransport) {
	t.Helper()
	mockRepo := mock.NewMockLocalEntityRepository(ctrl)
	mockQueue := mock.NewMockMutationQueueRepository(ctrl)
	mockTransport := mock.NewMockSyncTransport(ctrl)

	storages := &store.ClientStorages{
		EntityRepository: mockRepo,
		QueueRepository:  mockQueue,
	}

	svc := NewClientPushService(storages, mockTransport, cfg, logger.Nop()).(*clientPushService)
	return svc, mockRepo, mockQueue, mockTransport
}

func pendingDeck(id string, version int64) models.Entity {
	return models.Entity{
		ID:         id,
		UserID:     1,
		Type:       models.EntityTypeDeck,
		Version:    version,
		Payload:    json.RawMessage(`{"name":"go"}`),
		SyncStatus: models.SyncStatusPending,
	}
}

func queueItem(id, entityID string, entityType models.EntityType) models.MutationQueueItem {
	return models.MutationQueueItem{
		ID:         id,
		Operation:  models.SyncOperationUpdate,
		EntityType: entityType,
		EntityID:   entityID,
	}
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestClientPushService_Push_EmptyQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, _ := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50})
	ctx := context.Background()

	mockQueue.EXPECT().Drain(ctx, 50).Return(nil, nil)
	mockRepo.EXPECT().GetPending(ctx, int64(1)).Return(nil, nil)

	result, err := svc.Push(ctx, 1)

	require.NoError(t, err)
	assert.Zero(t, result.ItemsSynced)
	assert.Empty(t, result.Errors)
}

func TestClientPushService_Push_CreateAcknowledged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, mockTransport := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50, MaxRetries: 3})
	ctx := context.Background()
	serverTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entity := pendingDeck("deck-1", 1)
	item := queueItem("item-1", "deck-1", models.EntityTypeDeck)

	gomock.InOrder(
		mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{item}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(entity, nil),
		mockTransport.EXPECT().PushSync(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SyncRequest) (models.SyncResponse, error) {
				require.Len(t, req.Decks, 1)
				assert.Equal(t, models.SyncOperationCreate, req.Decks[0].Operation)
				return models.SyncResponse{
					Success:   true,
					Timestamp: serverTime,
					Decks: &models.SyncTypeResult{
						Created: []models.CreatedAck{{ID: "deck-1", ServerID: "srv-9"}},
					},
				}, nil
			}),
		mockRepo.EXPECT().MarkSynced(ctx, models.EntityTypeDeck, "deck-1", "srv-9", int64(1), serverTime).Return(nil),
		mockQueue.EXPECT().Remove(ctx, "item-1").Return(nil),
		mockQueue.EXPECT().Drain(ctx, 50).Return(nil, nil),
		mockRepo.EXPECT().GetPending(ctx, int64(1)).Return(nil, nil),
	)

	result, err := svc.Push(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsSynced)
	assert.Zero(t, result.ItemsFailed)
}

func TestClientPushService_Push_TransportFailureKeepsQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, mockTransport := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50, MaxRetries: 3})
	ctx := context.Background()

	item := queueItem("item-1", "deck-1", models.EntityTypeDeck)

	mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{item}, nil)
	mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(pendingDeck("deck-1", 1), nil)
	mockTransport.EXPECT().PushSync(ctx, gomock.Any()).Return(models.SyncResponse{}, adapter.ErrTransport)

	// no MarkSynced, no Remove: the queue survives the failed pass
	_, err := svc.Push(ctx, 1)

	assert.ErrorIs(t, err, adapter.ErrTransport)
}

func TestClientPushService_Push_ConflictMarksEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, mockTransport := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50, MaxRetries: 3})
	ctx := context.Background()

	local := pendingDeck("deck-1", 3)
	serverCopy := models.Entity{
		ID:      "deck-1",
		Type:    models.EntityTypeDeck,
		Version: 5,
		Payload: json.RawMessage(`{"name":"rust"}`),
	}
	item := queueItem("item-1", "deck-1", models.EntityTypeDeck)

	gomock.InOrder(
		mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{item}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(local, nil),
		mockTransport.EXPECT().PushSync(ctx, gomock.Any()).Return(models.SyncResponse{
			Success: true,
			Decks: &models.SyncTypeResult{
				Conflicts: []models.RemoteConflict{{EntityID: "deck-1", ServerVersion: 5, ServerData: serverCopy}},
			},
		}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(local, nil),
		mockRepo.EXPECT().MarkConflict(ctx, models.EntityTypeDeck, "deck-1").Return(nil),
		mockQueue.EXPECT().RemoveForEntity(ctx, models.EntityTypeDeck, "deck-1").Return(nil),
		mockQueue.EXPECT().Drain(ctx, 50).Return(nil, nil),
		mockRepo.EXPECT().GetPending(ctx, int64(1)).Return(nil, nil),
	)

	result, err := svc.Push(ctx, 1)

	require.NoError(t, err)
	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.Equal(t, int64(3), conflict.LocalVersion)
	assert.Equal(t, int64(5), conflict.ServerVersion)
	assert.Equal(t, []string{"name"}, conflict.ConflictedFields)
}

func TestClientPushService_Push_DeleteAckPurgesTombstone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, mockTransport := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50, MaxRetries: 3})
	ctx := context.Background()

	tombstone := pendingDeck("deck-1", 4)
	tombstone.ServerID = "srv-9"
	tombstone.Deleted = true
	item := queueItem("item-1", "deck-1", models.EntityTypeDeck)

	gomock.InOrder(
		mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{item}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(tombstone, nil),
		mockTransport.EXPECT().PushSync(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SyncRequest) (models.SyncResponse, error) {
				require.Len(t, req.Decks, 1)
				assert.Equal(t, models.SyncOperationDelete, req.Decks[0].Operation)
				return models.SyncResponse{
					Success: true,
					Decks:   &models.SyncTypeResult{Deleted: []string{"deck-1"}},
				}, nil
			}),
		mockRepo.EXPECT().MarkSynced(ctx, models.EntityTypeDeck, "deck-1", "", int64(4), gomock.Any()).Return(nil),
		mockRepo.EXPECT().Purge(ctx, models.EntityTypeDeck, "deck-1").Return(nil),
		mockQueue.EXPECT().RemoveForEntity(ctx, models.EntityTypeDeck, "deck-1").Return(nil),
		mockQueue.EXPECT().Drain(ctx, 50).Return(nil, nil),
		mockRepo.EXPECT().GetPending(ctx, int64(1)).Return(nil, nil),
	)

	result, err := svc.Push(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsSynced)
}

func TestClientPushService_Push_EntityErrorRetriedThenParked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, mockTransport := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50, MaxRetries: 2})
	ctx := context.Background()

	rejection := models.EntityError{EntityID: "deck-1", Message: "payload too large"}

	fresh := queueItem("item-1", "deck-1", models.EntityTypeDeck)
	respWithError := models.SyncResponse{
		Success: true,
		Decks:   &models.SyncTypeResult{Errors: []models.EntityError{rejection}},
	}

	// first attempt: retry budget left, the item is marked failed
	gomock.InOrder(
		mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{fresh}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(pendingDeck("deck-1", 1), nil),
		mockTransport.EXPECT().PushSync(ctx, gomock.Any()).Return(respWithError, nil),
		mockQueue.EXPECT().MarkFailed(ctx, "item-1", "payload too large").Return(nil),
		mockQueue.EXPECT().Drain(ctx, 50).Return(nil, nil),
		mockRepo.EXPECT().GetPending(ctx, int64(1)).Return(nil, nil),
	)

	result, err := svc.Push(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsFailed)
	require.Len(t, result.Errors, 1)
	assert.False(t, result.Errors[0].Retryable)

	// second attempt on a fresh cycle: budget exhausted, entity parked
	exhausted := fresh
	exhausted.RetryCount = 1

	gomock.InOrder(
		mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{exhausted}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(pendingDeck("deck-1", 1), nil),
		mockTransport.EXPECT().PushSync(ctx, gomock.Any()).Return(respWithError, nil),
		mockRepo.EXPECT().MarkSyncError(ctx, models.EntityTypeDeck, "deck-1", "payload too large").Return(nil),
		mockQueue.EXPECT().RemoveForEntity(ctx, models.EntityTypeDeck, "deck-1").Return(nil),
		mockQueue.EXPECT().Drain(ctx, 50).Return(nil, nil),
		mockRepo.EXPECT().GetPending(ctx, int64(1)).Return(nil, nil),
	)

	result, err = svc.Push(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsFailed)
}

func TestClientPushService_Push_DeduplicatesQueueItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, mockTransport := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50, MaxRetries: 3})
	ctx := context.Background()

	// three queued mutations for the same deck upload a single change
	items := []models.MutationQueueItem{
		queueItem("item-1", "deck-1", models.EntityTypeDeck),
		queueItem("item-2", "deck-1", models.EntityTypeDeck),
		queueItem("item-3", "deck-1", models.EntityTypeDeck),
	}

	gomock.InOrder(
		mockQueue.EXPECT().Drain(ctx, 50).Return(items, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(pendingDeck("deck-1", 3), nil),
		mockTransport.EXPECT().PushSync(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.SyncRequest) (models.SyncResponse, error) {
				assert.Len(t, req.Decks, 1)
				return models.SyncResponse{
					Success: true,
					Decks:   &models.SyncTypeResult{Updated: []string{"deck-1"}},
				}, nil
			}),
		mockRepo.EXPECT().MarkSynced(ctx, models.EntityTypeDeck, "deck-1", "", int64(3), gomock.Any()).Return(nil),
		mockQueue.EXPECT().Remove(ctx, "item-1").Return(nil),
		mockQueue.EXPECT().Remove(ctx, "item-2").Return(nil),
		mockQueue.EXPECT().Remove(ctx, "item-3").Return(nil),
		mockQueue.EXPECT().Drain(ctx, 50).Return(nil, nil),
		mockRepo.EXPECT().GetPending(ctx, int64(1)).Return(nil, nil),
	)

	result, err := svc.Push(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsSynced)
}

func TestClientPushService_Push_SettledEntityItemsAreDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, mockTransport := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50, MaxRetries: 3})
	ctx := context.Background()
	_ = mockTransport

	synced := pendingDeck("deck-1", 1)
	synced.SyncStatus = models.SyncStatusSynced
	item := queueItem("item-1", "deck-1", models.EntityTypeDeck)

	gomock.InOrder(
		mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{item}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(synced, nil),
		mockQueue.EXPECT().RemoveForEntity(ctx, models.EntityTypeDeck, "deck-1").Return(nil),
	)

	result, err := svc.Push(ctx, 1)

	require.NoError(t, err)
	assert.Zero(t, result.ItemsSynced)
}

func TestClientPushService_Push_LocalizesSessionsWhenSyncDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, mockTransport := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50, MaxRetries: 3, SyncSessions: false})
	ctx := context.Background()
	_ = mockTransport

	item := queueItem("item-1", "sess-1", models.EntityTypeSession)
	session := models.Entity{
		ID:         "sess-1",
		UserID:     1,
		Type:       models.EntityTypeSession,
		Version:    1,
		SyncStatus: models.SyncStatusPending,
	}

	gomock.InOrder(
		mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{item}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeSession, "sess-1", int64(1)).Return(session, nil),
		mockRepo.EXPECT().MarkSynced(ctx, models.EntityTypeSession, "sess-1", "", int64(1), gomock.Any()).Return(nil),
		mockQueue.EXPECT().RemoveForEntity(ctx, models.EntityTypeSession, "sess-1").Return(nil),
	)

	result, err := svc.Push(ctx, 1)

	require.NoError(t, err)
	assert.Zero(t, result.ItemsSynced)
}

func TestClientPushService_Push_EditDuringRequestStaysPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, mockTransport := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50, MaxRetries: 3})
	ctx := context.Background()
	serverTime := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// an edit lands while the first push request is in flight: the ack
	// must not settle the newer version, and only the uploaded snapshot's
	// queue item may retire; the follow-up item from the edit pushes next
	gomock.InOrder(
		mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{queueItem("item-1", "deck-1", models.EntityTypeDeck)}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(pendingDeck("deck-1", 1), nil),
		mockTransport.EXPECT().PushSync(ctx, gomock.Any()).Return(models.SyncResponse{
			Success:   true,
			Timestamp: serverTime,
			Decks:     &models.SyncTypeResult{Updated: []string{"deck-1"}},
		}, nil),
		mockRepo.EXPECT().MarkSynced(ctx, models.EntityTypeDeck, "deck-1", "", int64(1), serverTime).
			Return(store.ErrEntityNotFound),
		mockQueue.EXPECT().Remove(ctx, "item-1").Return(nil),
		mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{queueItem("item-2", "deck-1", models.EntityTypeDeck)}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(pendingDeck("deck-1", 2), nil),
		mockTransport.EXPECT().PushSync(ctx, gomock.Any()).Return(models.SyncResponse{
			Success:   true,
			Timestamp: serverTime,
			Decks:     &models.SyncTypeResult{Updated: []string{"deck-1"}},
		}, nil),
		mockRepo.EXPECT().MarkSynced(ctx, models.EntityTypeDeck, "deck-1", "", int64(2), serverTime).Return(nil),
		mockQueue.EXPECT().Remove(ctx, "item-2").Return(nil),
		mockQueue.EXPECT().Drain(ctx, 50).Return(nil, nil),
		mockRepo.EXPECT().GetPending(ctx, int64(1)).Return(nil, nil),
	)

	result, err := svc.Push(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 2, result.ItemsSynced)
}

func TestClientPushService_Push_RequeuesPendingWithoutQueueItems(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo, mockQueue, mockTransport := newTestPushSvc(t, ctrl, config.ClientSync{BatchSize: 50, MaxRetries: 3})
	ctx := context.Background()

	// a tombstone restored by conflict resolution sits pending with no
	// queue item left; push re-enqueues it so the delete reaches the server
	tombstone := pendingDeck("deck-1", 6)
	tombstone.Deleted = true

	gomock.InOrder(
		mockQueue.EXPECT().Drain(ctx, 50).Return(nil, nil),
		mockRepo.EXPECT().GetPending(ctx, int64(1)).Return([]models.Entity{tombstone}, nil),
		mockRepo.EXPECT().ApplyMutation(ctx, tombstone, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ models.Entity, item models.MutationQueueItem) error {
				assert.NotEmpty(t, item.ID)
				assert.Equal(t, models.SyncOperationDelete, item.Operation)
				assert.Equal(t, "deck-1", item.EntityID)
				return nil
			}),
		mockQueue.EXPECT().Drain(ctx, 50).Return([]models.MutationQueueItem{queueItem("item-9", "deck-1", models.EntityTypeDeck)}, nil),
		mockRepo.EXPECT().GetEntity(ctx, models.EntityTypeDeck, "deck-1", int64(1)).Return(tombstone, nil),
		mockTransport.EXPECT().PushSync(ctx, gomock.Any()).Return(models.SyncResponse{
			Success: true,
			Decks:   &models.SyncTypeResult{Deleted: []string{"deck-1"}},
		}, nil),
		mockRepo.EXPECT().MarkSynced(ctx, models.EntityTypeDeck, "deck-1", "", int64(6), gomock.Any()).Return(nil),
		mockRepo.EXPECT().Purge(ctx, models.EntityTypeDeck, "deck-1").Return(nil),
		mockQueue.EXPECT().RemoveForEntity(ctx, models.EntityTypeDeck, "deck-1").Return(nil),
		mockQueue.EXPECT().Drain(ctx, 50).Return(nil, nil),
	)

	result, err := svc.Push(ctx, 1)

	require.NoError(t, err)
	assert.Equal(t, 1, result.ItemsSynced)
}

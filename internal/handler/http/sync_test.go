// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/mock"
	"github.com/savichev/memodeck/internal/service"
	"github.com/savichev/memodeck/internal/store"
	"github.com/savichev/memodeck/internal/utils"
	"github.com/savichev/memodeck/models"
)

func newTestSyncHandler(t *testing.T) (*Handler, *mock.MockSyncService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	syncSvc := mock.NewMockSyncService(ctrl)
	h := NewHandler(&service.Services{SyncService: syncSvc}, logger.Nop())
	return h, syncSvc
}

func withUserID(r *http.Request, userID int64) *http.Request {
	ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
	return r.WithContext(ctx)
}

// ─────────────────────────────────────────────
// POST /api/sync
// ─────────────────────────────────────────────

func TestProcessPush_Success(t *testing.T) {
	h, syncSvc := newTestSyncHandler(t)

	syncSvc.EXPECT().
		ProcessPush(gomock.Any(), int64(42), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, req models.SyncRequest) (models.SyncResponse, error) {
			require.Len(t, req.Decks, 1)
			assert.Equal(t, "deck-1", req.Decks[0].Data.ID)
			return models.SyncResponse{
				Success:   true,
				Timestamp: time.Now().UTC(),
				Decks:     &models.SyncTypeResult{Updated: []string{"deck-1"}},
			}, nil
		})

	body := `{"decks":[{"operation":"update","data":{"id":"deck-1","entity_type":"deck","version":3,"payload":{}}}]}`
	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewBufferString(body)), 42)
	rec := httptest.NewRecorder()

	h.processPush(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.SyncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Decks)
	assert.Equal(t, []string{"deck-1"}, resp.Decks.Updated)
}

func TestProcessPush_NoUserInContext(t *testing.T) {
	h, _ := newTestSyncHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewBufferString(`{}`))
	rec := httptest.NewRecorder()

	h.processPush(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProcessPush_InvalidJSON(t *testing.T) {
	h, _ := newTestSyncHandler(t)

	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewBufferString("{broken")), 42)
	rec := httptest.NewRecorder()

	h.processPush(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProcessPush_StorageUnavailable(t *testing.T) {
	h, syncSvc := newTestSyncHandler(t)

	syncSvc.EXPECT().
		ProcessPush(gomock.Any(), int64(42), gomock.Any()).
		Return(models.SyncResponse{}, store.ErrStorageUnavailable)

	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/sync", bytes.NewBufferString(`{}`)), 42)
	rec := httptest.NewRecorder()

	h.processPush(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

// ─────────────────────────────────────────────
// GET /api/sync/changes
// ─────────────────────────────────────────────

func TestGetChanges_WithSince(t *testing.T) {
	h, syncSvc := newTestSyncHandler(t)

	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	syncSvc.EXPECT().
		ChangesSince(gomock.Any(), int64(42), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, got *time.Time) (models.SyncChanges, error) {
			require.NotNil(t, got)
			assert.True(t, got.Equal(since))
			return models.SyncChanges{
				Timestamp: time.Now().UTC(),
				Decks:     []models.RemoteChange{{Operation: models.SyncOperationCreate, Data: models.Entity{ID: "deck-1"}}},
			}, nil
		})

	target := "/api/sync/changes?since=" + since.Format(time.RFC3339Nano)
	req := withUserID(httptest.NewRequest(http.MethodGet, target, nil), 42)
	rec := httptest.NewRecorder()

	h.getChanges(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var changes models.SyncChanges
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &changes))
	assert.Equal(t, 1, changes.Total())
}

func TestGetChanges_WithoutSinceReturnsFullState(t *testing.T) {
	h, syncSvc := newTestSyncHandler(t)

	syncSvc.EXPECT().
		ChangesSince(gomock.Any(), int64(42), nil).
		Return(models.SyncChanges{}, nil)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/sync/changes", nil), 42)
	rec := httptest.NewRecorder()

	h.getChanges(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetChanges_InvalidSince(t *testing.T) {
	h, _ := newTestSyncHandler(t)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/sync/changes?since=yesterday", nil), 42)
	rec := httptest.NewRecorder()

	h.getChanges(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetChanges_NoUserInContext(t *testing.T) {
	h, _ := newTestSyncHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/sync/changes", nil)
	rec := httptest.NewRecorder()

	h.getChanges(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

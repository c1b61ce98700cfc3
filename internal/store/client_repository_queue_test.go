// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/models"
)

func newTestQueueRepo(t *testing.T) (*mutationQueueRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l := logger.Nop()
	repo := &mutationQueueRepository{
		DB:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock
}

func TestDrain(t *testing.T) {
	repo, mock := newTestQueueRepo(t)

	ts := time.Now().UTC().Truncate(time.Second)
	rows := sqlmock.NewRows([]string{"id", "operation", "entity_type", "entity_id", "data", "created_at", "retry_count", "last_error"}).
		AddRow("item-1", "create", "deck", "deck-1", `{"name":"go"}`, ts, 0, "").
		AddRow("item-2", "update", "card", "card-1", `{"front":"q"}`, ts, 2, "timeout")

	mock.ExpectQuery("SELECT .+ FROM mutation_queue").
		WithArgs(50).
		WillReturnRows(rows)

	items, err := repo.Drain(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.SyncOperationCreate, items[0].Operation)
	assert.Equal(t, models.EntityTypeDeck, items[0].EntityType)
	assert.Equal(t, []byte(`{"name":"go"}`), []byte(items[0].Data))
	assert.Equal(t, 2, items[1].RetryCount)
	assert.Equal(t, "timeout", items[1].LastError)
}

func TestDrain_Empty(t *testing.T) {
	repo, mock := newTestQueueRepo(t)

	mock.ExpectQuery("SELECT .+ FROM mutation_queue").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "operation", "entity_type", "entity_id", "data", "created_at", "retry_count", "last_error"}))

	items, err := repo.Drain(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemove(t *testing.T) {
	repo, mock := newTestQueueRepo(t)

	mock.ExpectExec("DELETE FROM mutation_queue").
		WithArgs("item-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Remove(context.Background(), "item-1"))
}

func TestRemoveForEntity(t *testing.T) {
	repo, mock := newTestQueueRepo(t)

	mock.ExpectExec("DELETE FROM mutation_queue").
		WithArgs("deck", "deck-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.RemoveForEntity(context.Background(), models.EntityTypeDeck, "deck-1"))
}

func TestMarkFailed(t *testing.T) {
	repo, mock := newTestQueueRepo(t)

	mock.ExpectExec("UPDATE mutation_queue").
		WithArgs("connection reset", "item-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkFailed(context.Background(), "item-1", "connection reset"))
}

func TestLen(t *testing.T) {
	repo, mock := newTestQueueRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.Len(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestLen_QueryError(t *testing.T) {
	repo, mock := newTestQueueRepo(t)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnError(errors.New("database is locked"))

	_, err := repo.Len(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count mutation queue items")
}

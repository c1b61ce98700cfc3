package workers

import (
	"context"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/models"
)

type stubPurgeRepo struct {
	olderThan time.Time
	purged    int64
	err       error
	calls     int
}

func (s *stubPurgeRepo) ApplyCreate(context.Context, models.Entity) (models.Entity, error) {
	return models.Entity{}, nil
}

func (s *stubPurgeRepo) ApplyUpdate(context.Context, models.Entity) (models.Entity, *models.RemoteConflict, error) {
	return models.Entity{}, nil, nil
}

func (s *stubPurgeRepo) ApplyDelete(context.Context, models.Entity) (*models.RemoteConflict, error) {
	return nil, nil
}

func (s *stubPurgeRepo) ChangesSince(context.Context, int64, time.Time) ([]models.RemoteChange, error) {
	return nil, nil
}

func (s *stubPurgeRepo) PurgeTombstones(_ context.Context, olderThan time.Time) (int64, error) {
	s.calls++
	s.olderThan = olderThan
	return s.purged, s.err
}

func newTestPurgeWorker(repo *stubPurgeRepo, retention time.Duration, now time.Time) *purgeWorker {
	return &purgeWorker{
		cron:      cron.New(),
		entities:  repo,
		retention: retention,
		schedule:  "@hourly",
		logger:    logger.Nop(),
		now:       func() time.Time { return now },
	}
}

func TestRunOnce_PurgesOlderThanRetention(t *testing.T) {
	now := time.Date(2026, 4, 1, 3, 0, 0, 0, time.UTC)
	repo := &stubPurgeRepo{purged: 5}
	w := newTestPurgeWorker(repo, 30*24*time.Hour, now)

	w.runOnce()

	assert.Equal(t, 1, repo.calls)
	assert.True(t, repo.olderThan.Equal(now.Add(-30*24*time.Hour)))
}

func TestRunOnce_RepositoryErrorDoesNotPanic(t *testing.T) {
	repo := &stubPurgeRepo{err: assert.AnError}
	w := newTestPurgeWorker(repo, time.Hour, time.Now())

	assert.NotPanics(t, w.runOnce)
	assert.Equal(t, 1, repo.calls)
}

func TestStart_RejectsInvalidSchedule(t *testing.T) {
	w := newTestPurgeWorker(&stubPurgeRepo{}, time.Hour, time.Now())
	w.schedule = "not-a-cron-spec"

	require.Error(t, w.Start())
}

func TestStartStop(t *testing.T) {
	w := newTestPurgeWorker(&stubPurgeRepo{}, time.Hour, time.Now())

	require.NoError(t, w.Start())
	assert.NotPanics(t, w.Stop)
}

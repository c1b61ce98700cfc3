package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
	"github.com/savichev/memodeck/internal/mock"
)

// ── Probe state ─────────────────────────────────────────────────────────────

func TestPingMonitor_SeedsStateOnStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockSyncTransport(ctrl)
	transport.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()

	m := NewPingMonitor(transport, time.Hour, config.NetworkAny, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	assert.True(t, m.IsOnline())
	assert.Equal(t, config.NetworkAny, m.NetworkType())
}

func TestPingMonitor_OfflineWhenPingFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockSyncTransport(ctrl)
	transport.EXPECT().Ping(gomock.Any()).Return(ErrTransport).AnyTimes()

	m := NewPingMonitor(transport, time.Hour, config.NetworkUnmetered, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	assert.False(t, m.IsOnline())
}

// ── Events ──────────────────────────────────────────────────────────────────

func TestPingMonitor_EmitsEventOnTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockSyncTransport(ctrl)

	// first probe fails, every later probe succeeds
	gomock.InOrder(
		transport.EXPECT().Ping(gomock.Any()).Return(ErrTransport),
		transport.EXPECT().Ping(gomock.Any()).Return(nil).MinTimes(1),
	)

	m := NewPingMonitor(transport, 10*time.Millisecond, config.NetworkAny, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	select {
	case online := <-m.Events():
		assert.True(t, online)
	case <-time.After(time.Second):
		t.Fatal("no connectivity event received")
	}
	assert.True(t, m.IsOnline())
}

func TestPingMonitor_NoEventWithoutTransition(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockSyncTransport(ctrl)
	transport.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()

	m := NewPingMonitor(transport, 10*time.Millisecond, config.NetworkAny, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	// steady online state keeps the channel quiet
	select {
	case <-m.Events():
		t.Fatal("unexpected event for unchanged state")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestPingMonitor_StaleEventIsReplaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockSyncTransport(ctrl)

	first := transport.EXPECT().Ping(gomock.Any()).Return(nil)
	second := transport.EXPECT().Ping(gomock.Any()).Return(ErrTransport).After(first)
	transport.EXPECT().Ping(gomock.Any()).Return(ErrTransport).After(second).AnyTimes()

	m := NewPingMonitor(transport, 10*time.Millisecond, config.NetworkAny, logger.Nop())
	m.Start(context.Background())
	defer m.Stop()

	require.Eventually(t, func() bool { return !m.IsOnline() }, time.Second, 5*time.Millisecond)

	// the unread "online" seed event was dropped in favor of the newer one
	select {
	case online := <-m.Events():
		assert.False(t, online)
	case <-time.After(time.Second):
		t.Fatal("no connectivity event received")
	}
}

// ── Lifecycle ───────────────────────────────────────────────────────────────

func TestPingMonitor_StopTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockSyncTransport(ctrl)
	transport.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()

	m := NewPingMonitor(transport, time.Hour, config.NetworkAny, logger.Nop())
	m.Start(context.Background())

	m.Stop()
	assert.NotPanics(t, m.Stop)
}

func TestPingMonitor_Defaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	transport := mock.NewMockSyncTransport(ctrl)

	m := NewPingMonitor(transport, 0, "", logger.Nop())

	assert.Equal(t, 10*time.Second, m.interval)
	assert.Equal(t, config.NetworkUnmetered, m.NetworkType())
}

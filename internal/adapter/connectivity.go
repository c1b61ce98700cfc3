package adapter

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/savichev/memodeck/internal/config"
	"github.com/savichev/memodeck/internal/logger"
)

// PingMonitor implements [Connectivity] by probing the server's /ping
// endpoint on a fixed interval. The network type is taken from configuration
// since the process has no portable way to detect metered links itself.
type PingMonitor struct {
	transport SyncTransport
	interval  time.Duration
	network   config.NetworkType
	logger    *logger.Logger

	online atomic.Bool
	events chan bool

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewPingMonitor(transport SyncTransport, interval time.Duration, network config.NetworkType, logger *logger.Logger) *PingMonitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if network == "" {
		network = config.NetworkUnmetered
	}

	return &PingMonitor{
		transport: transport,
		interval:  interval,
		network:   network,
		logger:    logger,
		events:    make(chan bool, 1),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Start probes once immediately to seed the state, then keeps probing in a
// background goroutine until Stop is called or ctx is cancelled.
func (p *PingMonitor) Start(ctx context.Context) {
	p.probe(ctx)

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-p.stop:
				return
			case <-ticker.C:
				p.probe(ctx)
			}
		}
	}()
}

// Stop terminates the probe loop and waits for it to exit.
func (p *PingMonitor) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}

func (p *PingMonitor) IsOnline() bool {
	return p.online.Load()
}

func (p *PingMonitor) NetworkType() config.NetworkType {
	return p.network
}

func (p *PingMonitor) Events() <-chan bool {
	return p.events
}

func (p *PingMonitor) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	online := p.transport.Ping(pingCtx) == nil
	if p.online.Swap(online) == online {
		return
	}

	p.logger.Info().Str("func", "*PingMonitor.probe").Bool("online", online).Msg("connectivity changed")

	// drop the stale event if nobody consumed it yet
	select {
	case <-p.events:
	default:
	}
	select {
	case p.events <- online:
	default:
	}
}

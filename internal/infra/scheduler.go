package infra

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Pinger is a storage backend that can report its health
type Pinger interface {
	Ping(ctx context.Context) error
	Stats() PoolStats
}

// HealthMonitor periodically pings the store and logs pool usage
type HealthMonitor struct {
	cron     *cron.Cron
	store    Pinger
	schedule string
	log      zerolog.Logger
	healthy  atomic.Bool
}

// NewHealthMonitor creates a new monitor.
// schedule uses the six-field cron syntax (with seconds).
func NewHealthMonitor(store Pinger, schedule string, log zerolog.Logger) *HealthMonitor {
	m := &HealthMonitor{
		cron:     cron.New(cron.WithSeconds()),
		store:    store,
		schedule: schedule,
		log:      log.With().Str("component", "health_monitor").Logger(),
	}
	m.healthy.Store(true)
	return m
}

// Start registers the check and starts the scheduler
func (m *HealthMonitor) Start() error {
	if _, err := m.cron.AddFunc(m.schedule, m.Check); err != nil {
		return err
	}

	m.cron.Start()
	m.log.Info().Str("schedule", m.schedule).Msg("Health monitor started")
	return nil
}

// Check pings the store once. Transitions between healthy and unhealthy are
// logged at warn/info, steady state at debug.
func (m *HealthMonitor) Check() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	stats := m.store.Stats()
	err := m.store.Ping(ctx)

	wasHealthy := m.healthy.Load()
	switch {
	case err != nil && wasHealthy:
		m.log.Warn().Err(err).Msg("Database became unreachable")
	case err == nil && !wasHealthy:
		m.log.Info().Msg("Database reachable again")
	case err == nil:
		m.log.Debug().
			Int("open", stats.Open).
			Int("idle", stats.Idle).
			Int("in_use", stats.InUse).
			Msg("Database healthy")
	}
	m.healthy.Store(err == nil)
}

// Healthy reports the result of the last check
func (m *HealthMonitor) Healthy() bool {
	return m.healthy.Load()
}

// Stop stops the scheduler gracefully
func (m *HealthMonitor) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info().Msg("Health monitor stopped")
}

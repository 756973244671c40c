package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger is the store surface the monitor needs
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusRecorder receives the outcome of every health check
type StatusRecorder interface {
	SetStoreUp(up bool)
}

// StoreHealthMonitor periodically pings the set store
// - Feeds every result to the status recorder (the store_up gauge)
// - Logs only when the store goes up or down
type StoreHealthMonitor struct {
	store    Pinger
	recorder StatusRecorder
	logger   *zap.Logger
	backend  string
	interval time.Duration
	timeout  time.Duration

	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex

	// last known state; nil until the first check completes
	up *bool
}

// StoreHealthConfig holds the monitor dependencies
type StoreHealthConfig struct {
	Store    Pinger
	Recorder StatusRecorder
	Logger   *zap.Logger
	Backend  string
	Interval time.Duration
	Timeout  time.Duration
}

// NewStoreHealthMonitor creates a new store health monitor job
func NewStoreHealthMonitor(cfg StoreHealthConfig) *StoreHealthMonitor {
	if cfg.Interval == 0 {
		cfg.Interval = 30 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &StoreHealthMonitor{
		store:    cfg.Store,
		recorder: cfg.Recorder,
		logger:   cfg.Logger.Named("store_health"),
		backend:  cfg.Backend,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the monitor job
func (m *StoreHealthMonitor) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return
	}
	m.running = true
	m.mu.Unlock()

	m.wg.Add(1)
	go m.run()
	m.logger.Info("store health monitor started",
		zap.String("backend", m.backend),
		zap.Duration("interval", m.interval),
	)
}

// Stop gracefully stops the monitor job
func (m *StoreHealthMonitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	m.mu.Unlock()

	close(m.stopCh)
	m.wg.Wait()
	m.logger.Info("store health monitor stopped")
}

func (m *StoreHealthMonitor) run() {
	defer m.wg.Done()

	m.check()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.check()
		case <-m.stopCh:
			return
		}
	}
}

func (m *StoreHealthMonitor) check() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()
	_ = m.RunOnce(ctx)
}

// RunOnce pings the store once and records the result (for testing or manual trigger)
func (m *StoreHealthMonitor) RunOnce(ctx context.Context) error {
	err := m.store.Ping(ctx)
	up := err == nil

	if m.recorder != nil {
		m.recorder.SetStoreUp(up)
	}

	m.mu.Lock()
	changed := m.up == nil || *m.up != up
	m.up = &up
	m.mu.Unlock()

	if changed {
		if up {
			m.logger.Info("set store is up", zap.String("backend", m.backend))
		} else {
			m.logger.Error("set store is down", zap.String("backend", m.backend), zap.Error(err))
		}
	}
	return err
}

// IsRunning returns whether the monitor is running
func (m *StoreHealthMonitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

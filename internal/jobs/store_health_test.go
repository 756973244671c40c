package jobs

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/forgo/smartwords/internal/metrics"
)

type fakePinger struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (p *fakePinger) Ping(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.err
}

func (p *fakePinger) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *fakePinger) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type fakeRecorder struct {
	mu      sync.Mutex
	results []bool
}

func (r *fakeRecorder) SetStoreUp(up bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, up)
}

func (r *fakeRecorder) snapshot() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool(nil), r.results...)
}

func TestStoreHealthMonitor_RunOnce_RecordsEveryResult(t *testing.T) {
	store := &fakePinger{}
	rec := &fakeRecorder{}
	m := NewStoreHealthMonitor(StoreHealthConfig{Store: store, Recorder: rec, Backend: "memory"})
	ctx := context.Background()

	require.NoError(t, m.RunOnce(ctx))
	require.NoError(t, m.RunOnce(ctx))

	store.setErr(errors.New("connection refused"))
	assert.Error(t, m.RunOnce(ctx))

	assert.Equal(t, []bool{true, true, false}, rec.snapshot())
}

func TestStoreHealthMonitor_LogsOnlyTransitions(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	store := &fakePinger{}
	m := NewStoreHealthMonitor(StoreHealthConfig{Store: store, Logger: zap.New(core), Backend: "sqlite"})
	ctx := context.Background()

	_ = m.RunOnce(ctx)
	_ = m.RunOnce(ctx)
	store.setErr(errors.New("disk I/O error"))
	_ = m.RunOnce(ctx)
	_ = m.RunOnce(ctx)
	store.setErr(nil)
	_ = m.RunOnce(ctx)

	var messages []string
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"set store is up", "set store is down", "set store is up"}, messages)

	down := logs.FilterMessage("set store is down").All()
	require.Len(t, down, 1)
	assert.Equal(t, zapcore.ErrorLevel, down[0].Level)
	assert.Equal(t, "sqlite", down[0].ContextMap()["backend"])
}

func TestStoreHealthMonitor_FeedsStoreUpGauge(t *testing.T) {
	store := &fakePinger{}
	mx := metrics.New()
	m := NewStoreHealthMonitor(StoreHealthConfig{Store: store, Recorder: mx})

	require.NoError(t, m.RunOnce(context.Background()))
	store.setErr(errors.New("down"))
	require.Error(t, m.RunOnce(context.Background()))

	expected := `
# HELP smartwords_store_up Whether the last set store health check succeeded (1) or failed (0)
# TYPE smartwords_store_up gauge
smartwords_store_up 0
`
	err := testutil.GatherAndCompare(mx.Registry(), strings.NewReader(expected), "smartwords_store_up")
	assert.NoError(t, err)
}

func TestStoreHealthMonitor_StartStop(t *testing.T) {
	store := &fakePinger{}
	rec := &fakeRecorder{}
	m := NewStoreHealthMonitor(StoreHealthConfig{Store: store, Recorder: rec, Interval: 10 * time.Millisecond})

	m.Start()
	m.Start()
	assert.True(t, m.IsRunning())

	require.Eventually(t, func() bool { return store.callCount() >= 3 }, 2*time.Second, 5*time.Millisecond)

	m.Stop()
	m.Stop()
	assert.False(t, m.IsRunning())

	calls := store.callCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, store.callCount(), "no checks after Stop")
}

func TestNewStoreHealthMonitor_Defaults(t *testing.T) {
	m := NewStoreHealthMonitor(StoreHealthConfig{Store: &fakePinger{}})

	assert.Equal(t, 30*time.Second, m.interval)
	assert.Equal(t, 5*time.Second, m.timeout)
	assert.NotNil(t, m.logger)
}

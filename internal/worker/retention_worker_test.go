package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appauditlog "github.com/gatehouse-io/gatehouse/internal/application/auditlog"
	"github.com/gatehouse-io/gatehouse/internal/infrastructure/metrics"
	"github.com/gatehouse-io/gatehouse/internal/worker"
)

// MockPurger is a mock implementation of ExpiredPurger. It serves a
// configured backlog of expired entries in batch-sized chunks.
type MockPurger struct {
	remaining atomic.Int64
	execErr   error
	calls     atomic.Int32

	lastCutoff    time.Time
	lastBatchSize int
}

func NewMockPurger(backlog int64) *MockPurger {
	p := &MockPurger{}
	p.remaining.Store(backlog)
	return p
}

func (m *MockPurger) Execute(_ context.Context, cmd appauditlog.PurgeExpiredCommand) (appauditlog.PurgeResult, error) {
	m.calls.Add(1)
	m.lastCutoff = cmd.Cutoff
	m.lastBatchSize = cmd.BatchSize

	if m.execErr != nil {
		return appauditlog.PurgeResult{}, m.execErr
	}

	purged := m.remaining.Load()
	if purged > int64(cmd.BatchSize) {
		purged = int64(cmd.BatchSize)
	}
	m.remaining.Add(-purged)

	return appauditlog.PurgeResult{PurgedCount: purged}, nil
}

func newTestWorker(purger worker.ExpiredPurger, cfg worker.RetentionWorkerConfig) (*worker.RetentionWorker, *metrics.RetentionMetrics) {
	registry := prometheus.NewRegistry()
	retentionMetrics := metrics.NewRetentionMetrics(registry)
	return worker.NewRetentionWorker(purger, nil, retentionMetrics, cfg), retentionMetrics
}

func TestRetentionWorker_RunOnce_DrainsBacklog(t *testing.T) {
	purger := NewMockPurger(1250)
	w, retentionMetrics := newTestWorker(purger, worker.RetentionWorkerConfig{
		Interval:  time.Hour,
		MaxAge:    30 * 24 * time.Hour,
		BatchSize: 500,
		Enabled:   true,
	})

	purged, err := w.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1250), purged)
	// 500 + 500 + 250: the short batch ends the pass.
	assert.Equal(t, int32(3), purger.calls.Load())
	assert.Equal(t, 500, purger.lastBatchSize)
	assert.InDelta(t, 1250, testutil.ToFloat64(retentionMetrics.PurgedTotal), 0.01)
}

func TestRetentionWorker_RunOnce_EmptyBacklog(t *testing.T) {
	purger := NewMockPurger(0)
	w, _ := newTestWorker(purger, worker.RetentionWorkerConfig{
		Interval:  time.Hour,
		MaxAge:    30 * 24 * time.Hour,
		BatchSize: 500,
		Enabled:   true,
	})

	purged, err := w.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Zero(t, purged)
	assert.Equal(t, int32(1), purger.calls.Load())
}

func TestRetentionWorker_RunOnce_CutoffUsesMaxAge(t *testing.T) {
	purger := NewMockPurger(0)
	maxAge := 90 * 24 * time.Hour
	w, _ := newTestWorker(purger, worker.RetentionWorkerConfig{
		Interval:  time.Hour,
		MaxAge:    maxAge,
		BatchSize: 500,
		Enabled:   true,
	})

	_, err := w.RunOnce(context.Background())

	require.NoError(t, err)
	wantCutoff := time.Now().Add(-maxAge)
	assert.WithinDuration(t, wantCutoff, purger.lastCutoff, 5*time.Second)
}

func TestRetentionWorker_RunOnce_PropagatesError(t *testing.T) {
	purger := NewMockPurger(100)
	purger.execErr = errors.New("storage unavailable")
	w, _ := newTestWorker(purger, worker.RetentionWorkerConfig{
		Interval:  time.Hour,
		MaxAge:    30 * 24 * time.Hour,
		BatchSize: 500,
		Enabled:   true,
	})

	_, err := w.RunOnce(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage unavailable")
}

func TestRetentionWorker_Start_DisabledReturnsImmediately(t *testing.T) {
	purger := NewMockPurger(100)
	w, _ := newTestWorker(purger, worker.RetentionWorkerConfig{Enabled: false})

	err := w.Start(context.Background())

	require.NoError(t, err)
	assert.Zero(t, purger.calls.Load())
}

func TestRetentionWorker_Start_StopsOnContextCancel(t *testing.T) {
	purger := NewMockPurger(0)
	w, _ := newTestWorker(purger, worker.RetentionWorkerConfig{
		Interval:  10 * time.Millisecond,
		MaxAge:    time.Hour,
		BatchSize: 100,
		Enabled:   true,
	})

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	// Let at least the startup pass run.
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	assert.GreaterOrEqual(t, purger.calls.Load(), int32(1))
}

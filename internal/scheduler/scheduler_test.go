package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsulin/stockscan/pkg/logger"
)

// stubJob is a controllable job for tests.
type stubJob struct {
	name     string
	schedule string
	calls    int32
	failures int32 // fail the first N calls
}

func (j *stubJob) Name() string     { return j.name }
func (j *stubJob) Schedule() string { return j.schedule }

func (j *stubJob) Run(ctx context.Context) error {
	n := atomic.AddInt32(&j.calls, 1)
	if n <= atomic.LoadInt32(&j.failures) {
		return errors.New("transient failure")
	}
	return nil
}

func newTestScheduler() *Scheduler {
	return New(logger.NewWriter(io.Discard)).WithRetry(2, time.Millisecond)
}

func TestScheduler_AddJob(t *testing.T) {
	s := newTestScheduler()
	job := &stubJob{name: "daily_scan", schedule: "0 30 8 * * MON-FRI"}

	require.NoError(t, s.AddJob(job))

	// Duplicate names are rejected.
	err := s.AddJob(&stubJob{name: "daily_scan", schedule: "@daily"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestScheduler_AddJobBadSchedule(t *testing.T) {
	s := newTestScheduler()
	err := s.AddJob(&stubJob{name: "broken", schedule: "not a cron spec"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to schedule")
}

func TestScheduler_RunJobImmediate(t *testing.T) {
	s := newTestScheduler()
	job := &stubJob{name: "daily_scan", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("daily_scan"))
	assert.Equal(t, int32(1), atomic.LoadInt32(&job.calls))

	history, err := s.GetJobHistory("daily_scan")
	require.NoError(t, err)
	latest, ok := history.Latest()
	require.True(t, ok)
	assert.True(t, latest.Success)
}

func TestScheduler_RunJobRetriesThenSucceeds(t *testing.T) {
	s := newTestScheduler()
	job := &stubJob{name: "daily_scan", schedule: "@daily", failures: 2}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("daily_scan"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&job.calls))
}

func TestScheduler_RunJobExhaustsRetries(t *testing.T) {
	s := newTestScheduler()
	job := &stubJob{name: "daily_scan", schedule: "@daily", failures: 100}
	require.NoError(t, s.AddJob(job))

	err := s.RunJob("daily_scan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transient failure")

	history, _ := s.GetJobHistory("daily_scan")
	latest, ok := history.Latest()
	require.True(t, ok)
	assert.False(t, latest.Success)
	assert.Equal(t, 0.0, history.SuccessRate())
}

func TestScheduler_RunJobUnknown(t *testing.T) {
	s := newTestScheduler()
	err := s.RunJob("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestJobHistory_Caps(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{JobName: "daily_scan", Success: i%2 == 0})
	}
	assert.Len(t, h.Results, 100)
}

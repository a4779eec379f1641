// internal/common/camunda/camunda_test.go
package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
)

var fastRetry = &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetry_TransientThenSuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "complete job", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return status.Error(codes.Unavailable, "gateway unavailable")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "complete job", func(ctx context.Context) error {
		calls++
		return status.Error(codes.NotFound, "job not found")
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "complete job failed")
}

func TestRetry_BudgetExhausted(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastRetry, "complete job", func(ctx context.Context) error {
		calls++
		return stderrors.New("connection refused")
	})
	assert.Error(t, err)
	assert.Equal(t, fastRetry.MaxRetries+1, calls)
}

func TestRetry_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}

	err := Retry(ctx, cfg, "complete job", func(ctx context.Context) error {
		cancel()
		return stderrors.New("timeout")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(status.Error(codes.DeadlineExceeded, "slow")))
	assert.True(t, IsTransient(stderrors.New("read: connection reset by peer")))
	assert.False(t, IsTransient(status.Error(codes.InvalidArgument, "bad variables")))
	assert.False(t, IsTransient(context.Canceled))
	assert.False(t, IsTransient(stderrors.New("unexpected")))
}

type stubHandler struct {
	err error
}

func (s stubHandler) Handle(worker.JobClient, entities.Job) error {
	return s.err
}

func testJob(key int64) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{Key: key, Type: "instrument-test"}}
}

func TestInstrument_RecordsOutcome(t *testing.T) {
	log := logger.NewTestLogger(t)
	taskType := "instrument-test"

	Instrument(taskType, stubHandler{}, nil, log)(nil, testJob(1))
	Instrument(taskType, stubHandler{err: errors.NewJobNotFoundError("j-1")}, nil, log)(nil, testJob(2))
	Instrument(taskType, stubHandler{err: stderrors.New("panic-free failure")}, nil, log)(nil, testJob(3))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsCompleted.WithLabelValues(taskType)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, "JOB_NOT_FOUND")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WorkerJobsFailed.WithLabelValues(taskType, "INTERNAL_ERROR")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.WorkerJobsActive.WithLabelValues(taskType)))
}

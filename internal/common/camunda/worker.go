// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
	"jobmatch-workers/internal/common/observability"
)

// JobHandler is implemented by every worker. A returned error means the
// job was already failed or thrown; it is only used for bookkeeping here.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job) error
}

type WorkerOptions struct {
	TaskType      string
	MaxJobsActive int
	Timeout       time.Duration
}

type CamundaWorker struct {
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

// StartWorker opens a job worker for opts.TaskType with instrumentation.
func StartWorker(client zbc.Client, opts WorkerOptions, handler JobHandler, obs *observability.Observability, log logger.Logger) *CamundaWorker {
	log = log.WithFields(map[string]interface{}{"taskType": opts.TaskType})

	step := client.NewJobWorker().
		JobType(opts.TaskType).
		Handler(Instrument(opts.TaskType, handler, obs, log)).
		MaxJobsActive(opts.MaxJobsActive)
	if opts.Timeout > 0 {
		step = step.Timeout(opts.Timeout)
	}
	jobWorker := step.Open()

	log.Info("worker started", map[string]interface{}{
		"maxJobsActive": opts.MaxJobsActive,
		"timeout_ms":    opts.Timeout.Milliseconds(),
	})
	return &CamundaWorker{worker: jobWorker, logger: log, taskType: opts.TaskType}
}

// Instrument adapts a JobHandler to the Zeebe callback and records job
// metrics around it.
func Instrument(taskType string, handler JobHandler, obs *observability.Observability, log logger.Logger) worker.JobHandler {
	return func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		metrics.WorkerJobsActive.WithLabelValues(taskType).Inc()
		defer metrics.WorkerJobsActive.WithLabelValues(taskType).Dec()

		err := handler.Handle(client, job)
		elapsed := time.Since(start)
		metrics.WorkerJobDuration.WithLabelValues(taskType).Observe(elapsed.Seconds())

		status := "completed"
		if err != nil {
			status = "failed"
			code := errors.Normalize(err).Code
			metrics.WorkerJobsFailed.WithLabelValues(taskType, string(code)).Inc()
			log.Debug("job handler returned error", map[string]interface{}{
				"jobKey":    job.Key,
				"errorCode": string(code),
			})
		} else {
			metrics.WorkerJobsCompleted.WithLabelValues(taskType).Inc()
		}
		obs.RecordJob(context.Background(), taskType, status, elapsed)
	}
}

// CompleteJob completes job with output as its variables, retrying
// transient gateway errors.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, retry *RetryConfig) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		return errors.NewInternalError(err)
	}
	return Retry(ctx, retry, "complete job", func(ctx context.Context) error {
		_, err := cmd.Send(ctx)
		return err
	})
}

func (w *CamundaWorker) Stop() {
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}

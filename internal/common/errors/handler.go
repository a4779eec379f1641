// internal/common/errors/handler.go
package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// Logger is the subset of logger.Logger the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// ErrorHandler turns worker errors into Zeebe fail or throw commands.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Decision is what HandleJobError did with a job.
type Decision string

const (
	DecisionRetry Decision = "retry"
	DecisionThrow Decision = "throw"
)

// Decide picks retry or throw for err given the job's remaining retries.
// The returned retries value is what the fail command should carry.
func Decide(stdErr *StandardError, remaining int32) (Decision, int32) {
	max := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable || max == 0 || remaining <= 1 {
		return DecisionThrow, 0
	}
	next := remaining - 1
	if next > int32(max) {
		next = int32(max)
	}
	return DecisionRetry, next
}

// Normalize returns err as a StandardError, wrapping unknown errors as
// internal errors.
func Normalize(err error) *StandardError {
	if stdErr, ok := AsStandardError(err); ok {
		return stdErr
	}
	return NewInternalError(err)
}

// HandleJobError fails job with retries for retryable codes, otherwise it
// throws a BPMN error the process model can catch.
func (h *ErrorHandler) HandleJobError(ctx context.Context, client worker.JobClient, job entities.Job, err error) Decision {
	stdErr := Normalize(err)
	bpmnErr := ConvertToBPMNError(stdErr)

	decision, retries := Decide(stdErr, job.Retries)
	h.logError(job, stdErr, bpmnErr, decision)

	vars := bpmnErr.ToErrorVariables()
	payload, mErr := json.Marshal(vars)

	if decision == DecisionRetry {
		cmd := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(retries).
			ErrorMessage(bpmnErr.Message)
		if mErr == nil {
			if withVars, vErr := cmd.VariablesFromString(string(payload)); vErr == nil {
				h.send(job, func() error { _, e := withVars.Send(ctx); return e })
				return decision
			}
		}
		h.send(job, func() error { _, e := cmd.Send(ctx); return e })
		return decision
	}

	cmd := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message)
	if mErr == nil {
		if withVars, vErr := cmd.VariablesFromString(string(payload)); vErr == nil {
			h.send(job, func() error { _, e := withVars.Send(ctx); return e })
			return decision
		}
	}
	h.send(job, func() error { _, e := cmd.Send(ctx); return e })
	return decision
}

func (h *ErrorHandler) send(job entities.Job, fn func() error) {
	if err := fn(); err != nil {
		h.logger.Error("Failed to report job error", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *ErrorHandler) logError(job entities.Job, stdErr *StandardError, bpmnErr *BPMNError, decision Decision) {
	h.logger.Error("Job failed", map[string]interface{}{
		"jobKey":           job.Key,
		"jobType":          job.Type,
		"errorCode":        string(stdErr.Code),
		"message":          bpmnErr.Message,
		"details":          stdErr.Details,
		"retryable":        stdErr.Retryable,
		"decision":         string(decision),
		"errorCategory":    GetErrorCategory(stdErr.Code),
		"workflowInstance": job.ProcessInstanceKey,
	})
}

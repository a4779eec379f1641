// internal/common/errors/errors_test.go
package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors_Retryability(t *testing.T) {
	cause := stderrors.New("connection reset")

	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"invalid input", NewInvalidMatchInputError("jobId is required"), ErrCodeInvalidMatchInput, false},
		{"candidate missing", NewCandidateNotFoundError("c-1"), ErrCodeCandidateNotFound, false},
		{"job missing", NewJobNotFoundError("j-1"), ErrCodeJobNotFound, false},
		{"db connection", NewDatabaseConnectionFailedError(cause), ErrCodeDatabaseConnectionFailed, true},
		{"query", NewQueryExecutionFailedError("load_candidate", cause), ErrCodeQueryExecutionFailed, true},
		{"query timeout", NewQueryTimeoutError("load_job"), ErrCodeQueryTimeout, true},
		{"update", NewDatabaseUpdateFailedError(cause), ErrCodeDatabaseUpdateFailed, true},
		{"application missing", NewApplicationNotFoundError("a-1"), ErrCodeApplicationNotFound, false},
		{"search", NewSearchQueryFailedError("candidate_search", cause), ErrCodeSearchQueryFailed, true},
		{"search timeout", NewSearchTimeoutError("candidate_search"), ErrCodeSearchTimeout, true},
		{"notification", NewNotificationSendFailedError("email", cause), ErrCodeNotificationSendFailed, true},
		{"template", NewTemplateNotFoundError("strong_match"), ErrCodeTemplateNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.retryable, IsRetryableErrorCode(tt.code))
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.Contains(t, tt.err.Error(), string(tt.code))
		})
	}
}

func TestAsStandardError_Unwraps(t *testing.T) {
	cause := context.DeadlineExceeded
	wrapped := fmt.Errorf("load candidate: %w", NewQueryExecutionFailedError("load_candidate", cause))

	stdErr, ok := AsStandardError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.True(t, HasCode(wrapped, ErrCodeQueryExecutionFailed))
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)

	_, ok = AsStandardError(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	stdErr := Normalize(stderrors.New("nil pointer"))
	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.False(t, stdErr.Retryable)
	assert.Equal(t, "nil pointer", stdErr.Details)

	original := NewJobNotFoundError("j-9")
	assert.Same(t, original, Normalize(original))
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewCandidateNotFoundError("c-42").WithMetadata("candidateId", "c-42")

	bpmnErr := ConvertToBPMNError(stdErr)
	assert.Equal(t, "CANDIDATE_NOT_FOUND", bpmnErr.Code)
	assert.Equal(t, 0, bpmnErr.Retries)
	assert.False(t, bpmnErr.Retryable)

	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "CANDIDATE_NOT_FOUND", vars["errorCode"])
	assert.Equal(t, "MATCHING", vars["errorCategory"])
	assert.Equal(t, "c-42", vars["candidateId"])
	assert.Equal(t, "candidateId: c-42", vars["errorDetails"])
}

func TestConvertToBPMNError_NonRetryableOverridesCode(t *testing.T) {
	stdErr := NewQueryTimeoutError("load_job")
	stdErr.Retryable = false

	assert.Equal(t, 0, ConvertToBPMNError(stdErr).Retries)
	assert.Equal(t, 2, ConvertToBPMNError(NewQueryTimeoutError("load_job")).Retries)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		remaining   int32
		wantDecided Decision
		wantRetries int32
	}{
		{"business error throws", NewJobNotFoundError("j"), 3, DecisionThrow, 0},
		{"retryable with budget", NewDatabaseUpdateFailedError(stderrors.New("x")), 3, DecisionRetry, 2},
		{"retries capped by code", NewSearchTimeoutError("q"), 10, DecisionRetry, 2},
		{"last attempt throws", NewQueryExecutionFailedError("q", stderrors.New("x")), 1, DecisionThrow, 0},
		{"internal never retries", NewInternalError(stderrors.New("x")), 3, DecisionThrow, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, retries := Decide(tt.err, tt.remaining)
			assert.Equal(t, tt.wantDecided, decision)
			assert.Equal(t, tt.wantRetries, retries)
		})
	}
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "MATCHING", GetErrorCategory(ErrCodeInvalidMatchInput))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeApplicationNotFound))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchTimeout))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeTemplateNotFound))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING_ELSE"))
}

// cmd/worker-manager/server_test.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type stubCheck struct{ err error }

func (s stubCheck) Ping(context.Context) error        { return s.err }
func (s stubCheck) HealthCheck(context.Context) error { return s.err }

func TestServeMux_Health(t *testing.T) {
	mux := newServeMux(stubCheck{}, stubCheck{}, zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestServeMux_Ready(t *testing.T) {
	t.Run("all dependencies up", func(t *testing.T) {
		mux := newServeMux(stubCheck{}, stubCheck{}, zaptest.NewLogger(t))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("database down", func(t *testing.T) {
		mux := newServeMux(stubCheck{}, stubCheck{err: errors.New("connection refused")}, zaptest.NewLogger(t))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body struct {
			Status string            `json:"status"`
			Checks map[string]string `json:"checks"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "ok", body.Checks["zeebe"])
		assert.Equal(t, "connection refused", body.Checks["postgres"])
	})
}

func TestServeMux_Metrics(t *testing.T) {
	mux := newServeMux(stubCheck{}, stubCheck{}, zaptest.NewLogger(t))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := retryWithBackoff(func() error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	}, 5, time.Millisecond, zap.NewNop(), "test op")
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	err = retryWithBackoff(func() error { return errors.New("down") }, 2, time.Millisecond, zap.NewNop(), "test op")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test op failed after 2 attempts")
}

// cmd/worker-manager/server.go
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func newServeMux(zeebe healthChecker, db pinger, log *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{"zeebe": "ok", "postgres": "ok"}
		code := http.StatusOK
		if err := zeebe.HealthCheck(ctx); err != nil {
			checks["zeebe"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if err := db.Ping(ctx); err != nil {
			checks["postgres"] = err.Error()
			code = http.StatusServiceUnavailable
		}
		if code != http.StatusOK {
			log.Warn("readiness check failed", zap.Any("checks", checks))
		}

		status := "ready"
		if code != http.StatusOK {
			status = "not_ready"
		}
		writeStatus(w, code, map[string]interface{}{
			"status": status,
			"checks": checks,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

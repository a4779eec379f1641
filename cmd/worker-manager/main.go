// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	awsclient "jobmatch-workers/internal/common/aws"
	"jobmatch-workers/internal/common/camunda"
	"jobmatch-workers/internal/common/config"
	"jobmatch-workers/internal/common/database"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/observability"
	"jobmatch-workers/internal/common/validation"
	"jobmatch-workers/internal/repository"
	"jobmatch-workers/internal/scoring"
	"jobmatch-workers/pkg/registry"

	rmr "jobmatch-workers/internal/workers/application/record-match-result"
	nm "jobmatch-workers/internal/workers/communication/notify-match"
	cms "jobmatch-workers/internal/workers/matching/calculate-match-score"
	rc "jobmatch-workers/internal/workers/matching/rank-candidates"
)

// retryWithBackoff runs operation until it succeeds, doubling the delay
// between attempts.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(operationName+" failed, retrying",
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting worker manager",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.UsePlaintext,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected")

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected")

	// --- Redis (optional cache) ---
	var cache *database.RedisClient
	if cfg.Database.Redis.Address != "" && cfg.Scoring.CacheTTL > 0 {
		err = retryWithBackoff(func() error {
			var err error
			cache, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return cache.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Warn("redis unavailable, profile cache disabled", zap.Error(err))
			cache = nil
		} else {
			defer cache.Close()
			zapLog.Info("Redis connected")
		}
	}

	// --- Elasticsearch (optional candidate search) ---
	var search *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			search, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return search.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Warn("elasticsearch unavailable, candidate search disabled", zap.Error(err))
			search = nil
		} else {
			zapLog.Info("Elasticsearch connected")
		}
	}

	repo := repository.New(repository.Options{
		DB:         pg,
		Cache:      cache,
		Search:     search,
		CacheTTL:   time.Duration(cfg.Scoring.CacheTTL) * time.Second,
		Index:      cfg.Database.Elasticsearch.CandidatesIndex,
		SearchSize: cfg.Scoring.RankSearchSize,
		Logger:     log,
	})

	// --- Scorer, registry, validator ---
	scorer, err := scoring.New(cfg.Scoring.Params())
	if err != nil {
		zapLog.Fatal("invalid scoring parameters", zap.Error(err))
	}

	reg, err := registry.LoadOrDefault(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.Error(err))
	}
	validator, err := validation.NewValidator(reg)
	if err != nil {
		zapLog.Fatal("input schema compile failed", zap.Error(err))
	}

	// --- Workers ---
	var workers []*camunda.CamundaWorker
	start := func(taskType string, maxJobs int, timeout time.Duration, enabled bool, h camunda.JobHandler) {
		if !enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		workers = append(workers, camunda.StartWorker(zeebe.GetClient(), camunda.WorkerOptions{
			TaskType:      taskType,
			MaxJobsActive: maxJobs,
			Timeout:       timeout,
		}, h, obs, log))
	}

	scoreCfg := cms.LoadConfig(cfg)
	start(cms.TaskType, scoreCfg.MaxJobsActive, scoreCfg.Timeout, scoreCfg.Enabled, cms.NewHandler(cms.HandlerOptions{
		Config:    scoreCfg,
		Scorer:    scorer,
		Store:     repo,
		Validator: validator,
		Logger:    log,
	}))

	rankCfg := rc.LoadConfig(cfg)
	start(rc.TaskType, rankCfg.MaxJobsActive, rankCfg.Timeout, rankCfg.Enabled, rc.NewHandler(rc.HandlerOptions{
		Config:    rankCfg,
		Scorer:    scorer,
		Store:     repo,
		Validator: validator,
		Logger:    log,
	}))

	recordCfg := rmr.LoadConfig(cfg)
	start(rmr.TaskType, recordCfg.MaxJobsActive, recordCfg.Timeout, recordCfg.Enabled, rmr.NewHandler(rmr.HandlerOptions{
		Config:    recordCfg,
		DB:        pg,
		Validator: validator,
		Logger:    log,
	}))

	notifyCfg := nm.LoadConfig(cfg)
	notifyOpts := nm.HandlerOptions{
		Config:    notifyCfg,
		Store:     repo,
		Validator: validator,
		Logger:    log,
	}
	if notifyCfg.EmailEnabled || notifyCfg.SMSEnabled {
		sesClient, snsClient, err := awsclient.NewClients(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws client init failed", zap.Error(err))
		}
		if notifyCfg.EmailEnabled {
			notifyOpts.Email = awsclient.NewEmailSender(sesClient)
		}
		if notifyCfg.SMSEnabled {
			notifyOpts.SMS = awsclient.NewSMSSender(snsClient, cfg.Notifications.SMS.SenderID)
		}
	}
	notifier, err := nm.NewHandler(notifyOpts)
	if err != nil {
		zapLog.Fatal("failed to create notify-match handler", zap.Error(err))
	}
	start(nm.TaskType, notifyCfg.MaxJobsActive, notifyCfg.Timeout, notifyCfg.Enabled, notifier)

	zapLog.Info("workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	srv := &http.Server{
		Addr:              cfg.Metrics.Address,
		Handler:           newServeMux(zeebe, pg, zapLog),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("health/metrics server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("health/metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, stopping workers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("error stopping meter provider", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("worker manager stopped")
}

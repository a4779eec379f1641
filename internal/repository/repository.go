// internal/repository/repository.go

// Package repository loads candidates, jobs and recruiter contacts for the
// matching workers. Reads go through an optional Redis cache in front of
// Postgres; candidate discovery uses Elasticsearch when it is configured.
package repository

import (
	"context"
	stderrors "errors"
	"time"

	"jobmatch-workers/internal/common/database"
	"jobmatch-workers/internal/common/errors"
	"jobmatch-workers/internal/common/logger"
	"jobmatch-workers/internal/common/metrics"
)

const (
	candidateKeyPrefix = "candidate:profile:"
	jobKeyPrefix       = "job:requirement:"

	defaultSearchSize = 200
	defaultIndex      = "candidates"
)

type Options struct {
	DB       *database.PostgresClient
	Cache    *database.RedisClient
	Search   *database.ElasticsearchClient
	CacheTTL time.Duration
	// Index is the Elasticsearch index holding candidate documents.
	Index      string
	SearchSize int
	Logger     logger.Logger
}

type Repository struct {
	db         *database.PostgresClient
	cache      *database.RedisClient
	search     *database.ElasticsearchClient
	cacheTTL   time.Duration
	index      string
	searchSize int
	logger     logger.Logger
}

func New(opts Options) *Repository {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	index := opts.Index
	if index == "" {
		index = defaultIndex
	}
	size := opts.SearchSize
	if size <= 0 {
		size = defaultSearchSize
	}
	return &Repository{
		db:         opts.DB,
		cache:      opts.Cache,
		search:     opts.Search,
		cacheTTL:   opts.CacheTTL,
		index:      index,
		searchSize: size,
		logger:     log.WithFields(map[string]interface{}{"component": "repository"}),
	}
}

// SearchEnabled reports whether SearchCandidates can be used.
func (r *Repository) SearchEnabled() bool {
	return r.search != nil
}

func (r *Repository) cacheEnabled() bool {
	return r.cache != nil && r.cacheTTL > 0
}

// fromCache decodes key into dst. Any cache failure is reported as a miss.
func (r *Repository) fromCache(ctx context.Context, entity, key string, dst interface{}) bool {
	if !r.cacheEnabled() {
		return false
	}
	err := r.cache.GetJSON(ctx, key, dst)
	switch {
	case err == nil:
		metrics.ProfileCacheRequests.WithLabelValues(entity, "hit").Inc()
		return true
	case stderrors.Is(err, database.ErrCacheMiss):
		metrics.ProfileCacheRequests.WithLabelValues(entity, "miss").Inc()
	default:
		metrics.ProfileCacheRequests.WithLabelValues(entity, "error").Inc()
		r.logger.Warn("cache read failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
	}
	return false
}

func (r *Repository) toCache(ctx context.Context, key string, value interface{}) {
	if !r.cacheEnabled() {
		return
	}
	if err := r.cache.SetJSON(ctx, key, value, r.cacheTTL); err != nil {
		r.logger.Warn("cache write failed", map[string]interface{}{
			"key":   key,
			"error": err,
		})
	}
}

// Invalidate drops cached candidate and job entries.
func (r *Repository) Invalidate(ctx context.Context, candidateIDs, jobIDs []string) error {
	if r.cache == nil {
		return nil
	}
	keys := make([]string, 0, len(candidateIDs)+len(jobIDs))
	for _, id := range candidateIDs {
		keys = append(keys, candidateKeyPrefix+id)
	}
	for _, id := range jobIDs {
		keys = append(keys, jobKeyPrefix+id)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.cache.Del(ctx, keys...)
}

func queryError(ctx context.Context, queryType string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError(queryType)
	}
	return errors.NewQueryExecutionFailedError(queryType, err)
}

func searchError(ctx context.Context, queryType string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewSearchTimeoutError(queryType)
	}
	return errors.NewSearchQueryFailedError(queryType, err)
}

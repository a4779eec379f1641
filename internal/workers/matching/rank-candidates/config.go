// internal/workers/matching/rank-candidates/config.go
package rankcandidates

import (
	"time"

	"jobmatch-workers/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
	// DefaultLimit applies when the job does not set a limit. Zero keeps
	// every candidate that passes minScore.
	DefaultLimit int
	Concurrency  int
}

func LoadConfig(appCfg *config.Config) *Config {
	if appCfg == nil {
		return &Config{Enabled: true, MaxJobsActive: 5, Timeout: 30 * time.Second, DefaultLimit: 20}
	}
	wc := config.GetWorkerConfig(appCfg, TaskType)
	timeout := config.GetDuration(wc.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Config{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       timeout,
		DefaultLimit:  appCfg.Scoring.RankDefaultLimit,
		Concurrency:   appCfg.Scoring.RankConcurrency,
	}
}

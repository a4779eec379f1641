// internal/workers/application/record-match-result/config.go
package recordmatchresult

import (
	"time"

	"jobmatch-workers/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
}

func LoadConfig(appCfg *config.Config) *Config {
	if appCfg == nil {
		return &Config{Enabled: true, MaxJobsActive: 5, Timeout: 10 * time.Second}
	}
	wc := config.GetWorkerConfig(appCfg, TaskType)
	timeout := config.GetDuration(wc.Timeout)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Config{
		Enabled:       wc.Enabled,
		MaxJobsActive: wc.MaxJobsActive,
		Timeout:       timeout,
	}
}

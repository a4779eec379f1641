// internal/workers/communication/notify-match/config.go
package notifymatch

import (
	"time"

	"jobmatch-workers/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration

	EmailEnabled   bool
	FromEmail      string
	EmailThreshold int
	SMSEnabled     bool
	SMSThreshold   int
	// FailOnSendError turns a delivery failure into a retryable job
	// error instead of a "failed" status.
	FailOnSendError bool
}

func LoadConfig(appCfg *config.Config) *Config {
	if appCfg == nil {
		return &Config{
			Enabled:        true,
			MaxJobsActive:  5,
			Timeout:        30 * time.Second,
			EmailThreshold: 80,
			SMSThreshold:   90,
		}
	}
	wc := config.GetWorkerConfig(appCfg, TaskType)
	timeout := config.GetDuration(wc.Timeout)
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	n := appCfg.Notifications
	return &Config{
		Enabled:        wc.Enabled,
		MaxJobsActive:  wc.MaxJobsActive,
		Timeout:        timeout,
		EmailEnabled:   n.Email.Enabled,
		FromEmail:      n.Email.FromEmail,
		EmailThreshold: n.Email.Threshold,
		SMSEnabled:     n.SMS.Enabled,
		SMSThreshold:   n.SMS.Threshold,

		FailOnSendError: n.FailOnSendError,
	}
}

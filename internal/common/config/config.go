// internal/common/config/config.go
package config

import (
	"fmt"

	"jobmatch-workers/internal/scoring"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Scoring       ScoringConfig           `mapstructure:"scoring"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Metrics       MetricsConfig           `mapstructure:"metrics"`
	Registry      RegistryConfig          `mapstructure:"registry"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the lib/pq key/value connection string.
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses       []string `mapstructure:"addresses"`
	Username        string   `mapstructure:"username"`
	Password        string   `mapstructure:"password"`
	URL             string   `mapstructure:"url"`
	CandidatesIndex string   `mapstructure:"candidates_index"`
}

// GetURL returns URL, or the first address when URL is unset.
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

// Enabled reports whether any Elasticsearch endpoint is configured.
func (e ElasticsearchConfig) Enabled() bool {
	return e.GetURL() != ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the settings every worker shares.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

// ScoringConfig tunes the match scorer and the ranking worker.
type ScoringConfig struct {
	Weights WeightsConfig `mapstructure:"weights"`

	UnknownLocationScore        int     `mapstructure:"unknown_location_score" validate:"min=0,max=100"`
	ContainedLocationScore      int     `mapstructure:"contained_location_score" validate:"min=0,max=100"`
	PartialLocationBase         int     `mapstructure:"partial_location_base" validate:"min=1,max=100"`
	PartialLocationSpan         int     `mapstructure:"partial_location_span" validate:"min=0,max=100"`
	OverqualifiedGraceYears     int     `mapstructure:"overqualified_grace_years" validate:"min=0"`
	OverqualifiedPenaltyPerYear int     `mapstructure:"overqualified_penalty_per_year" validate:"min=0,max=100"`
	OverqualifiedFloor          int     `mapstructure:"overqualified_floor" validate:"min=0,max=100"`
	SalaryOverageTolerance      float64 `mapstructure:"salary_overage_tolerance" validate:"gt=0"`

	CacheTTL         int `mapstructure:"cache_ttl" validate:"min=0"` // seconds, 0 disables caching
	RankConcurrency  int `mapstructure:"rank_concurrency" validate:"min=0"`
	RankDefaultLimit int `mapstructure:"rank_default_limit" validate:"min=0"`
	RankSearchSize   int `mapstructure:"rank_search_size" validate:"min=1,max=10000"`
}

type WeightsConfig struct {
	Skills     float64 `mapstructure:"skills" validate:"gte=0,lte=1"`
	Experience float64 `mapstructure:"experience" validate:"gte=0,lte=1"`
	Location   float64 `mapstructure:"location" validate:"gte=0,lte=1"`
	Salary     float64 `mapstructure:"salary" validate:"gte=0,lte=1"`
}

// Params converts the section into scorer params.
func (s ScoringConfig) Params() scoring.Params {
	return scoring.Params{
		Weights: scoring.Weights{
			Skills:     s.Weights.Skills,
			Experience: s.Weights.Experience,
			Location:   s.Weights.Location,
			Salary:     s.Weights.Salary,
		},
		UnknownLocationScore:        s.UnknownLocationScore,
		ContainedLocationScore:      s.ContainedLocationScore,
		PartialLocationBase:         s.PartialLocationBase,
		PartialLocationSpan:         s.PartialLocationSpan,
		OverqualifiedGraceYears:     s.OverqualifiedGraceYears,
		OverqualifiedPenaltyPerYear: s.OverqualifiedPenaltyPerYear,
		OverqualifiedFloor:          s.OverqualifiedFloor,
		SalaryOverageTolerance:      s.SalaryOverageTolerance,
	}
}

// NotificationConfig drives the notify-match worker.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email" validate:"omitempty,email"`
		Threshold int    `mapstructure:"threshold" validate:"min=0,max=100"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled   bool   `mapstructure:"enabled"`
		SenderID  string `mapstructure:"sender_id"`
		Threshold int    `mapstructure:"threshold" validate:"min=0,max=100"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`

	FailOnSendError bool `mapstructure:"fail_on_send_error"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

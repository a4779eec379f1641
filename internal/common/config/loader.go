// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on
// top and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}
	v.SetConfigName("config." + env)
	_ = v.MergeInConfig()

	return decode(v)
}

// LoadFromFile loads configuration from a single YAML file.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults registers defaults in viper rather than patching zero values
// afterwards, so an explicit zero weight in a file is kept.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "jobmatch-workers")
	v.SetDefault("app.environment", "development")

	v.SetDefault("camunda.max_jobs_active", 10)
	v.SetDefault("camunda.timeout", 30000)
	v.SetDefault("camunda.request_timeout", 30000)
	v.SetDefault("camunda.use_plaintext", true)

	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.max_connections", 25)
	v.SetDefault("database.postgres.max_idle", 5)
	v.SetDefault("database.postgres.sslmode", "disable")
	v.SetDefault("database.elasticsearch.candidates_index", "candidates")

	v.SetDefault("scoring.weights.skills", 0.40)
	v.SetDefault("scoring.weights.experience", 0.30)
	v.SetDefault("scoring.weights.location", 0.15)
	v.SetDefault("scoring.weights.salary", 0.15)
	v.SetDefault("scoring.unknown_location_score", 50)
	v.SetDefault("scoring.contained_location_score", 80)
	v.SetDefault("scoring.partial_location_base", 50)
	v.SetDefault("scoring.partial_location_span", 30)
	v.SetDefault("scoring.overqualified_grace_years", 3)
	v.SetDefault("scoring.overqualified_penalty_per_year", 2)
	v.SetDefault("scoring.overqualified_floor", 70)
	v.SetDefault("scoring.salary_overage_tolerance", 0.5)
	v.SetDefault("scoring.cache_ttl", 300)
	v.SetDefault("scoring.rank_default_limit", 20)
	v.SetDefault("scoring.rank_search_size", 200)

	v.SetDefault("notifications.email.threshold", 80)
	v.SetDefault("notifications.sms.threshold", 90)
	v.SetDefault("notifications.aws.region", "us-east-1")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("metrics.address", ":8080")
	v.SetDefault("registry.path", "configs/activity-registry.json")
}

func decode(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// loadEnvFile loads the first .env found from the working directory up to
// the module root. A missing file is fine.
func loadEnvFile() string {
	candidates := []string{".env", "../.env", "../../.env"}
	if root := findProjectRoot(); root != "" {
		candidates = append(candidates, filepath.Join(root, ".env"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok || !strings.Contains(strVal, "$") {
			continue
		}
		if expanded := os.ExpandEnv(strVal); expanded != strVal && expanded != "" {
			v.Set(key, expanded)
		}
	}
}

func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		cfg.Database.Postgres.User = os.Getenv("DB_USER")
	}
	if cfg.Database.Postgres.Password == "" {
		cfg.Database.Postgres.Password = os.Getenv("DB_PASSWORD")
	}
	if region := os.Getenv("AWS_REGION"); region != "" && cfg.Notifications.AWS.Region == "" {
		cfg.Notifications.AWS.Region = region
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}

	for key, w := range cfg.Workers {
		if w.MaxJobsActive == 0 {
			w.MaxJobsActive = 5
		}
		if w.Timeout == 0 {
			w.Timeout = 30000
		}
		if w.MaxRetries == 0 {
			w.MaxRetries = 3
		}
		cfg.Workers[key] = w
	}
}

var validate = validator.New()

func validateConfig(cfg *Config) error {
	if cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Database.Postgres.User == "" {
		return fmt.Errorf("database.postgres.user is required")
	}

	if err := ValidateScoring(cfg.Scoring); err != nil {
		return err
	}
	if err := validate.Struct(cfg.Notifications); err != nil {
		return fmt.Errorf("notifications: %w", err)
	}
	return nil
}

// ValidateScoring checks field ranges, then the cross-field scorer rules.
func ValidateScoring(s ScoringConfig) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := s.Params().Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig returns the named worker's settings, or defaults.
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if w, ok := cfg.Workers[workerName]; ok {
		return w
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled treats unlisted workers as enabled.
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if w, ok := cfg.Workers[workerName]; ok {
		return w.Enabled
	}
	return true
}

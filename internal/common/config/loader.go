// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on top,
// then applies environment overrides (APP_NAME, DATABASE_REDIS_ADDRESS, ...).
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper) (*Config, error) {
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

func loadEnvFile() {
	possiblePaths := []string{".env", "../.env", "../../.env"}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
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

// expandEnvVars resolves ${VAR} placeholders inside string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets from their conventional variable names.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		cfg.Database.Postgres.User = os.Getenv("DB_USER")
	}
	if cfg.Database.Postgres.Password == "" {
		cfg.Database.Postgres.Password = os.Getenv("DB_PASSWORD")
	}
	if cfg.Database.Redis.Password == "" {
		cfg.Database.Redis.Password = os.Getenv("REDIS_PASSWORD")
	}
	if cfg.Integrations.AWS.Region == "" {
		cfg.Integrations.AWS.Region = os.Getenv("AWS_REGION")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "rto-workers"
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 2
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.IndexName == "" {
		cfg.Database.Elasticsearch.IndexName = "training-providers"
	}

	if cfg.Catalog.Source == "" {
		cfg.Catalog.Source = CatalogSourceSeed
	}
	if cfg.Catalog.Table == "" {
		cfg.Catalog.Table = "training_providers"
	}
	if cfg.Catalog.CacheKey == "" {
		cfg.Catalog.CacheKey = "catalog:snapshot:v1"
	}

	if cfg.API.Address == "" {
		cfg.API.Address = ":8081"
	}
	if cfg.API.RunnersUp == 0 {
		cfg.API.RunnersUp = 2
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
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

func validateConfig(cfg *Config) error {
	switch cfg.Catalog.Source {
	case CatalogSourceSeed:
	case CatalogSourceFile:
		if cfg.Catalog.FilePath == "" {
			return fmt.Errorf("catalog.file_path is required when catalog.source is %q", CatalogSourceFile)
		}
	case CatalogSourcePostgres:
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required when catalog.source is %q", CatalogSourcePostgres)
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	default:
		return fmt.Errorf("catalog.source must be one of seed, file, postgres; got %q", cfg.Catalog.Source)
	}

	if cfg.Catalog.CacheTTL < 0 {
		return fmt.Errorf("catalog.cache_ttl must not be negative")
	}
	if cfg.Catalog.CacheTTL > 0 && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required when catalog.cache_ttl is set")
	}
	if cfg.API.RunnersUp < 0 {
		return fmt.Errorf("api.runners_up must not be negative")
	}

	return nil
}

// RequireCamunda checks the settings only the worker manager needs.
func (c *Config) RequireCamunda() error {
	if c.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if w, exists := cfg.Workers[workerName]; exists {
		return w
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled reports whether a worker is enabled; unlisted workers are.
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	return GetWorkerConfig(cfg, workerName).Enabled
}

// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig               `mapstructure:"app"`
	Camunda      CamundaConfig           `mapstructure:"camunda"`
	Database     DatabaseConfig          `mapstructure:"database"`
	Catalog      CatalogConfig           `mapstructure:"catalog"`
	Workers      map[string]WorkerConfig `mapstructure:"workers"`
	Integrations IntegrationConfig       `mapstructure:"integrations"`
	API          APIConfig               `mapstructure:"api"`
	Logging      LoggingConfig           `mapstructure:"logging"`
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

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"` // single address, kept for older env files
	IndexName string   `mapstructure:"index_name"`
}

// GetAddresses merges URL into Addresses.
func (e ElasticsearchConfig) GetAddresses() []string {
	if len(e.Addresses) > 0 {
		return e.Addresses
	}
	if e.URL != "" {
		return []string{e.URL}
	}
	return nil
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Catalog sources.
const (
	CatalogSourceSeed     = "seed"
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

// CatalogConfig selects where the provider catalog is seeded from.
type CatalogConfig struct {
	Source   string `mapstructure:"source"`
	FilePath string `mapstructure:"file_path"`
	Table    string `mapstructure:"table"`
	// CacheTTL enables the Redis snapshot cache when positive. Seconds.
	CacheTTL int    `mapstructure:"cache_ttl"`
	CacheKey string `mapstructure:"cache_key"`
}

// CacheDuration converts CacheTTL to a time.Duration.
func (c CatalogConfig) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`
}

// IntegrationConfig holds settings for outbound notification services.
type IntegrationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled  bool   `mapstructure:"enabled"`
			SenderID string `mapstructure:"sender_id"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// APIConfig holds settings for the quiz HTTP API.
type APIConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RunnersUp      int      `mapstructure:"runners_up"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

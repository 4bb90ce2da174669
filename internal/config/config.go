// Package config provides configuration management for the revenue innovation engine.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Pipeline      PipelineConfig      `mapstructure:"pipeline" validate:"required"`
	Engine        EngineConfig        `mapstructure:"engine" validate:"required"`
	KnowledgeBase KnowledgeBaseConfig `mapstructure:"knowledge_base" validate:"required"`
	Dashboard     DashboardConfig     `mapstructure:"dashboard" validate:"required"`
	Schedule      ScheduleConfig      `mapstructure:"schedule" validate:"required"`
	Metrics       MetricsConfig       `mapstructure:"metrics" validate:"required"`
	Health        HealthConfig        `mapstructure:"health"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration.
// The database is optional; when disabled the pipeline and engine keep
// everything in memory.
type DatabaseConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Host               string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required_if=Enabled true"`
	User               string `mapstructure:"user" validate:"required_if=Enabled true"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// PipelineConfig configures the extract/transform/load runner
type PipelineConfig struct {
	Source SourceConfig `mapstructure:"source" validate:"required"`
	Loader string       `mapstructure:"loader" validate:"required,oneof=log postgres"`
	// Options is passed through to the runner untouched.
	Options map[string]interface{} `mapstructure:"options"`
}

// SourceConfig selects and tunes the extraction source
type SourceConfig struct {
	Type           string  `mapstructure:"type" validate:"required,oneof=sample http"`
	URL            string  `mapstructure:"url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gt=0"`
}

// EngineConfig configures the strategy engine
type EngineConfig struct {
	DataPipeline       string  `mapstructure:"data_pipeline" validate:"required"`
	ModelPath          string  `mapstructure:"model_path" validate:"required"`
	ExecutionThreshold float64 `mapstructure:"execution_threshold" validate:"gt=0,lte=1"`
	MaxLogEntries      int     `mapstructure:"max_log_entries" validate:"gt=0"`
	PersistLogs        bool    `mapstructure:"persist_logs"`
}

// KnowledgeBaseConfig configures the knowledge base collaborator
type KnowledgeBaseConfig struct {
	Name       string `mapstructure:"name" validate:"required"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gt=0"`
}

// DashboardConfig configures the dashboard collaborator
type DashboardConfig struct {
	Name         string `mapstructure:"name" validate:"required"`
	WebhookURL   string `mapstructure:"webhook_url" validate:"omitempty,url"`
	WebhookToken string `mapstructure:"webhook_token"`
	StreamPath   string `mapstructure:"stream_path" validate:"required,startswith=/"`
}

// ScheduleConfig represents periodic job scheduling
type ScheduleConfig struct {
	PipelineCron string `mapstructure:"pipeline_cron" validate:"required,cronspec"`
	StrategyCron string `mapstructure:"strategy_cron" validate:"required,cronspec"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required,startswith=/"`
}

// HealthConfig represents the health check server configuration
type HealthConfig struct {
	Port string `mapstructure:"port"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Timeout returns the source request timeout
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// TTL returns the knowledge base entry lifetime
func (k KnowledgeBaseConfig) TTL() time.Duration {
	return time.Duration(k.TTLSeconds) * time.Second
}

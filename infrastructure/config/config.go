package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	domainconfig "scholargraph/domain/config"

	"gopkg.in/yaml.v3"
)

// FileEnvVar names the environment variable holding the optional YAML config path
const FileEnvVar = "SCHOLARGRAPH_CONFIG"

// Config holds all application configuration
type Config struct {
	Environment string        `yaml:"environment"`
	Server      ServerConfig  `yaml:"server"`
	Logging     LoggingConfig `yaml:"logging"`
	Metrics     MetricsConfig `yaml:"metrics"`
	Tracing     TracingConfig `yaml:"tracing"`
	Domain      DomainConfig  `yaml:"domain"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	EnableCORS      bool          `yaml:"enable_cors"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level string `yaml:"level"`
	// Debug adds stack traces and raw error messages to error responses
	Debug bool `yaml:"debug"`
}

// MetricsConfig configures the Prometheus collector
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// TracingConfig configures OpenTelemetry
type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	ServiceName  string  `yaml:"service_name"`
	Exporter     string  `yaml:"exporter"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	SampleRatio  float64 `yaml:"sample_ratio"`
}

// DomainConfig overrides business limits. Zero values keep the
// environment's defaults.
type DomainConfig struct {
	MaxAffiliations               int `yaml:"max_affiliations"`
	MaxPublications               int `yaml:"max_publications"`
	MaxAffiliationsPerPublication int `yaml:"max_affiliations_per_publication"`
	NearestAffiliationsLimit      int `yaml:"nearest_affiliations_limit"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Address:         ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			EnableCORS:      true,
			AllowedOrigins:  []string{"*"},
		},
		Logging: LoggingConfig{Level: "info"},
		Metrics: MetricsConfig{Enabled: true, Namespace: "scholargraph"},
		Tracing: TracingConfig{
			ServiceName: "scholargraph",
			Exporter:    "stdout",
			SampleRatio: 1.0,
		},
	}
}

// LoadConfig builds the configuration from defaults, the YAML file named by
// SCHOLARGRAPH_CONFIG (if any) and environment variables, in that order of
// precedence from lowest to highest
func LoadConfig() (*Config, error) {
	cfg := Default()

	if path := os.Getenv(FileEnvVar); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)

	c.Server.Address = getEnv("SERVER_ADDRESS", c.Server.Address)
	c.Server.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.EnableCORS = getEnvBool("ENABLE_CORS", c.Server.EnableCORS)
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}

	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.Debug = getEnvBool("ERROR_DEBUG", c.Logging.Debug)

	c.Metrics.Enabled = getEnvBool("ENABLE_METRICS", c.Metrics.Enabled)
	c.Metrics.Namespace = getEnv("METRICS_NAMESPACE", c.Metrics.Namespace)

	c.Tracing.Enabled = getEnvBool("ENABLE_TRACING", c.Tracing.Enabled)
	c.Tracing.ServiceName = getEnv("OTEL_SERVICE_NAME", c.Tracing.ServiceName)
	c.Tracing.Exporter = getEnv("TRACING_EXPORTER", c.Tracing.Exporter)
	c.Tracing.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.OTLPEndpoint)
	c.Tracing.SampleRatio = getEnvFloat("TRACING_SAMPLE_RATIO", c.Tracing.SampleRatio)

	c.Domain.MaxAffiliations = getEnvInt("MAX_AFFILIATIONS", c.Domain.MaxAffiliations)
	c.Domain.MaxPublications = getEnvInt("MAX_PUBLICATIONS", c.Domain.MaxPublications)
	c.Domain.MaxAffiliationsPerPublication = getEnvInt("MAX_AFFILIATIONS_PER_PUBLICATION", c.Domain.MaxAffiliationsPerPublication)
	c.Domain.NearestAffiliationsLimit = getEnvInt("NEAREST_AFFILIATIONS_LIMIT", c.Domain.NearestAffiliationsLimit)
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	switch c.Environment {
	case "development", "staging", "production", "test":
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if c.Tracing.Enabled {
		switch c.Tracing.Exporter {
		case "stdout":
		case "otlp":
			if c.Tracing.OTLPEndpoint == "" {
				return fmt.Errorf("OTEL_EXPORTER_OTLP_ENDPOINT is required for the otlp exporter")
			}
		default:
			return fmt.Errorf("unknown tracing exporter %q", c.Tracing.Exporter)
		}
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample ratio must be within [0, 1], got %v", c.Tracing.SampleRatio)
	}
	return c.DomainRules().Validate()
}

// DomainRules returns the environment's business limits with overrides applied
func (c *Config) DomainRules() *domainconfig.DomainConfig {
	rules := domainconfig.LoadDomainConfig(c.Environment)
	if c.Domain.MaxAffiliations > 0 {
		rules.MaxAffiliations = c.Domain.MaxAffiliations
	}
	if c.Domain.MaxPublications > 0 {
		rules.MaxPublications = c.Domain.MaxPublications
	}
	if c.Domain.MaxAffiliationsPerPublication > 0 {
		rules.MaxAffiliationsPerPublication = c.Domain.MaxAffiliationsPerPublication
	}
	if c.Domain.NearestAffiliationsLimit > 0 {
		rules.NearestAffiliationsLimit = c.Domain.NearestAffiliationsLimit
	}
	return rules
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

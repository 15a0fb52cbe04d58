package configs

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envPrefix is prepended to every environment variable, e.g. GRAPHQLMCP_LISTEN_ADDR.
const envPrefix = "graphqlmcp"

// DefaultAPI is the API used by tools when the caller does not name one.
const DefaultAPI = "admin"

// FileConfig defines the structure loaded from the YAML configuration file.
type FileConfig struct {
	CatalogURL string `yaml:"catalog_url"`
	CacheDir   string `yaml:"cache_dir"`
	UsageURL   string `yaml:"usage_url"`
	DefaultAPI string `yaml:"default_api"`
}

// Config holds the final application configuration, merged from file and environment variables.
// Fields are loaded from environment variables with the prefix "GRAPHQLMCP_", overriding file settings.
type Config struct {
	// Config File Path (Loaded first from env)
	ConfigFilePath string `envconfig:"CONFIG_FILE"`

	// File-backed fields. They carry no envconfig default so that a value read
	// from the file survives the second envconfig pass.
	CatalogURL string `envconfig:"CATALOG_URL"`
	CacheDir   string `envconfig:"CACHE_DIR"`
	UsageURL   string `envconfig:"USAGE_URL"`
	DefaultAPI string `envconfig:"DEFAULT_API"`

	// Environment-only fields
	ListenAddr               string        `envconfig:"LISTEN_ADDR" default:":8080"`
	AdminAddr                string        `envconfig:"ADMIN_ADDR" default:":8081"`
	HTTPClientTimeout        time.Duration `envconfig:"HTTP_CLIENT_TIMEOUT" default:"30s"`
	ShutdownTimeout          time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
	UsageTimeout             time.Duration `envconfig:"USAGE_TIMEOUT" default:"5s"`
	ParsedSchemaCacheSize    int           `envconfig:"PARSED_SCHEMA_CACHE_SIZE" default:"8"`
	OtelExporterOtlpEndpoint string        `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelExporterOtlpInsecure bool          `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	LogLevel                 string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFile                  string        `envconfig:"LOG_FILE" default:"/tmp/graphqlmcp.log"`
}

// ParsedLogLevel returns the slog.Level based on the configured LogLevel string.
func (c *Config) ParsedLogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		fallthrough
	default:
		return slog.LevelInfo
	}
}

// Load loads configuration first from environment variables (to get file path),
// then from the specified YAML file, and finally merges/overrides with environment variables again.
func Load() (*Config, error) {
	// 1. Load initial config from Env (primarily to get ConfigFilePath)
	var initialCfg Config
	if err := envconfig.Process(envPrefix, &initialCfg); err != nil {
		return nil, fmt.Errorf("failed to process initial environment variables: %w", err)
	}

	// 2. Load config from YAML file if path is specified
	fileCfg := FileConfig{}
	if initialCfg.ConfigFilePath != "" {
		yamlFile, err := os.ReadFile(initialCfg.ConfigFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", initialCfg.ConfigFilePath, err)
		}
		if err := yaml.Unmarshal(yamlFile, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file '%s': %w", initialCfg.ConfigFilePath, err)
		}
		slog.Info("Loaded configuration from file.", "path", initialCfg.ConfigFilePath)
	} else {
		slog.Info("No config file path specified (GRAPHQLMCP_CONFIG_FILE), using defaults/env vars only.")
	}

	// 3. Start from the file values, then process Env vars again for overrides.
	finalCfg := initialCfg
	finalCfg.CatalogURL = fileCfg.CatalogURL
	finalCfg.CacheDir = fileCfg.CacheDir
	finalCfg.UsageURL = fileCfg.UsageURL
	finalCfg.DefaultAPI = fileCfg.DefaultAPI

	if err := envconfig.Process(envPrefix, &finalCfg); err != nil {
		return nil, fmt.Errorf("failed to process overriding environment variables: %w", err)
	}

	if finalCfg.DefaultAPI == "" {
		finalCfg.DefaultAPI = DefaultAPI
	}
	if finalCfg.CatalogURL == "" {
		slog.Warn("No catalog URL configured (GRAPHQLMCP_CATALOG_URL); no schemas will be available.")
	}
	return &finalCfg, nil
}

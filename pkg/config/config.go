package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	apperrors "github.com/killallgit/podcast-catalog/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// CATALOG_SERVER_PORT for server.port
const EnvPrefix = "CATALOG"

// DefaultPath is read when no config file is given
const DefaultPath = "./config/settings.yaml"

// Dataset sources
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
)

// Load reads defaults, the optional .env file, the config file and the
// environment into v and returns the validated result
func Load(v *viper.Viper, path string) (*Config, error) {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	path = filepath.Clean(path)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotExist(err) {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) || os.IsNotExist(err)
}

// Validate checks the configuration and fills in corrected values where a
// setting can be repaired
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return apperrors.ConfigError("server.port", fmt.Sprintf("port %d is out of range", c.Server.Port))
	}

	switch c.Dataset.Source {
	case SourceEmbedded:
	case SourceFile:
		if c.Dataset.Path == "" {
			return apperrors.ConfigError("dataset.path", fmt.Sprintf("required when dataset.source is %q", SourceFile))
		}
	case SourceSQLite:
		if c.Database.Path == "" {
			return apperrors.ConfigError("database.path", fmt.Sprintf("required when dataset.source is %q", SourceSQLite))
		}
	default:
		return apperrors.ConfigError("dataset.source", fmt.Sprintf("unknown source %q", c.Dataset.Source))
	}

	if c.RateLimiting.Enabled {
		if c.RateLimiting.RPS <= 0 {
			return apperrors.ConfigError("rate_limiting.rps", fmt.Sprintf("%v requests per second is not positive", c.RateLimiting.RPS))
		}
		if c.RateLimiting.Burst <= 0 {
			c.RateLimiting.Burst = 1
		}
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		c.Cache.TTL = 5 * time.Minute
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.title", "Podcast Catalog")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_header_bytes", 1048576)

	// Dataset defaults
	v.SetDefault("dataset.source", SourceEmbedded)
	v.SetDefault("dataset.path", "")

	// Database defaults
	v.SetDefault("database.path", "./data/catalog.db")
	v.SetDefault("database.verbose", false)

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", time.Minute)
	v.SetDefault("cache.max_size_mb", 10)

	// Rate limiting defaults
	v.SetDefault("rate_limiting.enabled", true)
	v.SetDefault("rate_limiting.rps", 10.0)
	v.SetDefault("rate_limiting.burst", 20)

	// Security defaults
	v.SetDefault("security.cors_origins", []string{"*"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.json", false)
}

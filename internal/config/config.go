// Package config defines all configuration structures for ipgate.  No I/O or
// parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level       string   `mapstructure:"level"`  // "debug" | "info" | "warn" | "error"
	Format      string   `mapstructure:"format"` // "json" | "console"
	OutputPaths []string `mapstructure:"output_paths"`
}

// CacheConfig selects and tunes the result-cache backend.  The memory backend
// is the default and matches single-process deployments; the redis backend
// shares entries between replicas.
type CacheConfig struct {
	Backend string        `mapstructure:"backend"` // "memory" | "redis"
	TTL     time.Duration `mapstructure:"ttl"`
}

// RedisConfig holds Redis connection parameters, used only when
// cache.backend is "redis".
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// ProviderConfig holds the settings of one upstream data source.
type ProviderConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`

	// InsecureSkipVerify relaxes TLS verification for this upstream.  Several
	// USPTO endpoints serve certificate chains that fail strict verification;
	// relaxing trust is a deliberate policy scoped to those hosts.
	InsecureSkipVerify bool `mapstructure:"insecure_skip_verify"`
}

// ProvidersConfig holds one block per upstream adapter, in fallback priority
// order for their respective domains.
type ProvidersConfig struct {
	PatentExamination ProviderConfig `mapstructure:"patent_examination"`
	GrantedPatents    ProviderConfig `mapstructure:"granted_patents"`
	TrademarkStatus   ProviderConfig `mapstructure:"trademark_status"`
}

// CORSConfig holds cross-origin settings for the HTTP surface.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// OverridesConfig points at an optional JSON seed file of curated client
// records loaded into the override store at startup.  The store itself stays
// process-local; the seed file is read once and never written back.
type OverridesConfig struct {
	SeedFile string `mapstructure:"seed_file"`
}

// Config is the root configuration structure for the whole service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Providers ProvidersConfig `mapstructure:"providers"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Overrides OverridesConfig `mapstructure:"overrides"`
}

// Validate performs semantic validation of the fully-populated Config.  It
// returns the first error encountered; callers should treat any error as
// fatal and refuse to start.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}

	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: cache.backend %q is invalid; expected memory|redis", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("config: cache.ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.Backend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("config: redis.addr is required when cache.backend is redis")
	}

	for name, p := range map[string]ProviderConfig{
		"providers.patent_examination": c.Providers.PatentExamination,
		"providers.granted_patents":    c.Providers.GrantedPatents,
		"providers.trademark_status":   c.Providers.TrademarkStatus,
	} {
		if !p.Enabled {
			continue
		}
		if p.BaseURL == "" {
			return fmt.Errorf("config: %s.base_url is required when enabled", name)
		}
		if p.Timeout <= 0 {
			return fmt.Errorf("config: %s.timeout must be positive, got %s", name, p.Timeout)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}

// Package config loads the rabo configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/rabo/config.toml
// (~/.config/rabo/config.toml when XDG_CONFIG_HOME is unset):
//
//	owner = "timo"
//
//	[storage]
//	backend = "mongo"            # memory | mongo
//	mongo_uri = "mongodb://localhost:27017"
//	database = "rabo"
//
//	[cache]
//	backend = "redis"            # file | redis | none
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//
//	[report]
//	top = 5
//
// Every key is optional. RABO_MONGO_URI and RABO_REDIS_ADDR override the
// file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/timohermans/rabo-overview/pkg/errors"
)

// Backends.
const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"

	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Environment variables that override the file.
const (
	EnvMongoURI  = "RABO_MONGO_URI"
	EnvRedisAddr = "RABO_REDIS_ADDR"
)

// Defaults.
const (
	DefaultOwner    = "default"
	DefaultDatabase = "rabo"
	DefaultTop      = 5
)

// Config is the rabo configuration.
type Config struct {
	// Owner scopes stored documents and cache keys.
	Owner   string        `toml:"owner"`
	Storage StorageConfig `toml:"storage"`
	Cache   CacheConfig   `toml:"cache"`
	Report  ReportConfig  `toml:"report"`
}

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Backend  string `toml:"backend"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

// ReportConfig tunes the summary output.
type ReportConfig struct {
	// Top is the number of largest expenses and incomes listed.
	Top int `toml:"top"`
}

// Duration is a time.Duration written as a string such as "24h".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file exists: an in-memory
// store and a file cache.
func Default() *Config {
	return &Config{
		Owner: DefaultOwner,
		Storage: StorageConfig{
			Backend:  StorageMemory,
			Database: DefaultDatabase,
		},
		Cache: CacheConfig{
			Backend: CacheFile,
		},
		Report: ReportConfig{
			Top: DefaultTop,
		},
	}
}

// DefaultPath returns the configuration file path following the XDG
// convention.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "rabo", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rabo", "config.toml"), nil
}

// Load reads the configuration at path over the defaults, applies
// environment overrides and validates the result. An empty path loads
// DefaultPath, where a missing file is not an error; a missing explicit
// path is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "locate config")
		}
		path = p
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case errors.Is(err, fs.ErrNotExist):
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "config not found: %s", path)
	case err != nil:
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, apperrors.New(apperrors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	}

	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML from data over the defaults and validates the result.
// Environment overrides are not applied.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvMongoURI); ok && v != "" {
		c.Storage.MongoURI = v
		c.Storage.Backend = StorageMongo
	}
	if v, ok := lookup(EnvRedisAddr); ok && v != "" {
		c.Cache.RedisAddr = v
		c.Cache.Backend = CacheRedis
	}
}

// Validate checks backend names and their required settings.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, format, args...)
	}

	if strings.TrimSpace(c.Owner) == "" {
		return invalid("owner cannot be empty")
	}

	switch c.Storage.Backend {
	case StorageMemory:
	case StorageMongo:
		if c.Storage.MongoURI == "" {
			return invalid("storage.mongo_uri is required for the mongo backend")
		}
	default:
		return invalid("unknown storage backend %q (must be one of: memory, mongo)", c.Storage.Backend)
	}

	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return invalid("cache.redis_addr is required for the redis backend")
		}
	default:
		return invalid("unknown cache backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return invalid("cache.ttl cannot be negative")
	}

	if c.Report.Top < 1 {
		return invalid("report.top must be at least 1")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/khristian7/Irradiation-Portal/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Cache  CacheConfig  `yaml:"cache"`
	Limits LimitsConfig `yaml:"limits"`

	// Relative paths are resolved against the config file directory when that file exists.
	LocationsFile string         `yaml:"locations_file"`
	Defaults      DefaultsConfig `yaml:"defaults"`
}

type ServerConfig struct {
	Port        string   `yaml:"port"`
	Env         string   `yaml:"env"`
	StaticDir   string   `yaml:"static_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

type LimitsConfig struct {
	MaxRangeDays int `yaml:"max_range_days"`

	// 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

type DefaultsConfig struct {
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
	Granularity string  `yaml:"granularity"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8080",
			Env:         "development",
			StaticDir:   "./web/dist",
			CORSOrigins: []string{"*"},
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Limits: LimitsConfig{
			MaxRangeDays: 3700,
		},
		LocationsFile: "./data/locations.json",
		Defaults: DefaultsConfig{
			Latitude:    0.31,
			Longitude:   32.58,
			Granularity: string(model.GranularityDaily),
		},
	}
}

// Load reads path (or the defaults when path is empty), applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	var c *Config
	if path == "" {
		c = Default()
	} else {
		loaded, err := LoadUnchecked(path)
		if err != nil {
			return nil, err
		}
		c = Merge(Default(), loaded)
	}
	applyEnv(c)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads the file as written, without defaults or validation.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.LocationsFile != "" && !filepath.IsAbs(c.LocationsFile) {
		cand := filepath.Join(filepath.Dir(path), c.LocationsFile)
		if _, err := os.Stat(cand); err == nil {
			c.LocationsFile = cand
		}
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if p, err := strconv.Atoi(c.Server.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("server.port %q is not a valid port", c.Server.Port)
	}
	if c.Limits.MaxRangeDays <= 0 {
		return errors.New("limits.max_range_days must be > 0")
	}
	if c.Limits.Workers < 0 {
		return errors.New("limits.workers must be >= 0")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return errors.New("cache.ttl must be > 0 when the cache is enabled")
	}
	if _, err := model.NewGeoPoint(c.Defaults.Latitude, c.Defaults.Longitude); err != nil {
		return fmt.Errorf("defaults invalid: %w", err)
	}
	if _, err := model.ParseGranularity(c.Defaults.Granularity); err != nil {
		return fmt.Errorf("defaults invalid: %w", err)
	}
	return nil
}

// IsProduction reports whether the server runs with env "production".
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Merge overlays non-zero fields from override onto base.
func Merge(base, override *Config) *Config {
	out := *base
	if override == nil {
		return &out
	}
	if override.Server.Port != "" {
		out.Server.Port = override.Server.Port
	}
	if override.Server.Env != "" {
		out.Server.Env = override.Server.Env
	}
	if override.Server.StaticDir != "" {
		out.Server.StaticDir = override.Server.StaticDir
	}
	if len(override.Server.CORSOrigins) > 0 {
		out.Server.CORSOrigins = override.Server.CORSOrigins
	}
	if override.Log.Debug {
		out.Log.Debug = true
	}
	// A file that sets a cache section owns it entirely, so "enabled: false" sticks.
	if override.Cache != (CacheConfig{}) {
		out.Cache = override.Cache
		if out.Cache.Enabled && out.Cache.TTL == 0 {
			out.Cache.TTL = base.Cache.TTL
		}
	}
	if override.Limits.MaxRangeDays != 0 {
		out.Limits.MaxRangeDays = override.Limits.MaxRangeDays
	}
	if override.Limits.Workers != 0 {
		out.Limits.Workers = override.Limits.Workers
	}
	if override.LocationsFile != "" {
		out.LocationsFile = override.LocationsFile
	}
	if override.Defaults.Latitude != 0 || override.Defaults.Longitude != 0 {
		out.Defaults.Latitude = override.Defaults.Latitude
		out.Defaults.Longitude = override.Defaults.Longitude
	}
	if override.Defaults.Granularity != "" {
		out.Defaults.Granularity = override.Defaults.Granularity
	}
	return &out
}

func applyEnv(c *Config) {
	if v := os.Getenv("API_PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("LOG_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Log.Debug = b
		}
	}
	if v := os.Getenv("LOCATIONS_FILE"); v != "" {
		c.LocationsFile = v
	}
}

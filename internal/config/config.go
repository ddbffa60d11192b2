// Package config loads the profile of a remapper session.
package config

import (
	"runtime"
	"strings"

	"github.com/spf13/viper"

	rerrors "remapper/internal/errors"
)

// EnvPrefix prefixes every environment override, e.g. REMAPPER_SCAN_WORKERS.
const EnvPrefix = "REMAPPER"

// Config is the session profile.
type Config struct {
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
	Scan    ScanConfig    `json:"scan" mapstructure:"scan"`
	Cache   CacheConfig   `json:"cache" mapstructure:"cache"`
	Formats FormatsConfig `json:"formats" mapstructure:"formats"`
	// MappingOptions are passed to every reader and writer. Values for
	// options a format does not declare are ignored.
	MappingOptions map[string]string `json:"mappingOptions" mapstructure:"mappingOptions"`
}

// LoggingConfig selects the slog handler and level.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// ScanConfig controls class file scanning.
type ScanConfig struct {
	Workers int `json:"workers" mapstructure:"workers"`
}

// CacheConfig sizes the session caches.
type CacheConfig struct {
	// JarEntries is the number of scanned jars kept in memory.
	JarEntries int `json:"jarEntries" mapstructure:"jarEntries"`
}

// FormatsConfig holds format defaults.
type FormatsConfig struct {
	Default string `json:"default" mapstructure:"default"`
}

// DefaultConfig returns the profile used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Format: "text",
			Level:  "warn",
		},
		Scan: ScanConfig{
			Workers: runtime.NumCPU(),
		},
		Cache: CacheConfig{
			JarEntries: 8,
		},
		Formats: FormatsConfig{
			Default: "yaml",
		},
		MappingOptions: map[string]string{},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("scan.workers", d.Scan.Workers)
	v.SetDefault("cache.jarEntries", d.Cache.JarEntries)
	v.SetDefault("formats.default", d.Formats.Default)
}

// Load reads the profile at path and applies REMAPPER_ environment
// overrides. An empty path loads only the defaults and the environment.
// The file type follows the extension (json, yaml, toml).
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)

		if err := v.ReadInConfig(); err != nil {
			return nil, rerrors.Config("failed to read config file "+path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, rerrors.Config("failed to decode config", err)
	}

	if cfg.MappingOptions == nil {
		cfg.MappingOptions = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values Load cannot default.
func (c *Config) Validate() error {
	if c.Cache.JarEntries < 1 {
		return rerrors.Configf("cache.jarEntries must be positive, got %d", c.Cache.JarEntries)
	}

	if c.Scan.Workers < 0 {
		return rerrors.Configf("scan.workers must not be negative, got %d", c.Scan.Workers)
	}

	if strings.TrimSpace(c.Formats.Default) == "" {
		return rerrors.Config("formats.default must name a format", nil)
	}

	return nil
}

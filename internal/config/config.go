// Package config loads settings from defaults, an optional YAML file and
// EPDS_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/abhisek/epds/internal/logging"
	"github.com/abhisek/epds/internal/scoring"
)

// EnvPrefix prefixes every environment override, e.g. EPDS_SCORER_URL.
const EnvPrefix = "EPDS"

// Config is the complete application configuration.
type Config struct {
	Scorer scoring.Config `mapstructure:"scorer"`
	Store  StoreConfig    `mapstructure:"store"`
	Log    logging.Config `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// StoreConfig locates the history database.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration. An explicit file must exist; otherwise
// config.yaml in the user config directory is used when present.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := scoring.DefaultConfig()

	v.SetDefault("scorer.url", d.URL)
	v.SetDefault("scorer.api_version", d.APIVersion)
	v.SetDefault("scorer.timeout", d.Timeout)
	v.SetDefault("scorer.rate_limit", d.RateLimit)
	v.SetDefault("scorer.subject_id", d.SubjectID)
	v.SetDefault("scorer.offline", d.Offline)

	v.SetDefault("scorer.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("scorer.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("scorer.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("scorer.retry.multiplier", d.Retry.Multiplier)

	v.SetDefault("scorer.breaker.failure_threshold", d.Breaker.FailureThreshold)
	v.SetDefault("scorer.breaker.max_requests", d.Breaker.MaxRequests)
	v.SetDefault("scorer.breaker.interval", d.Breaker.Interval)
	v.SetDefault("scorer.breaker.timeout", d.Breaker.Timeout)

	v.SetDefault("store.path", "")

	v.SetDefault("log.path", "")
	v.SetDefault("log.level", "info")
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Scorer.URL != "" {
		u, err := url.Parse(c.Scorer.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("scorer.url must be an http(s) URL, got %q", c.Scorer.URL)
		}
	}
	if c.Scorer.Timeout <= 0 {
		return fmt.Errorf("scorer.timeout must be positive")
	}
	if c.Scorer.RateLimit < 0 {
		return fmt.Errorf("scorer.rate_limit must not be negative")
	}
	if c.Scorer.Retry.MaxAttempts < 1 {
		return fmt.Errorf("scorer.retry.max_attempts must be at least 1")
	}
	if c.Scorer.Retry.Multiplier < 1 {
		return fmt.Errorf("scorer.retry.multiplier must be at least 1")
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/epds or ~/.config/epds.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "epds"), nil
}

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
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const appName = "trainclock"

// Environment variables that override file values.
const (
	EnvDB       = "TRAINCLOCK_DB"
	EnvLogLevel = "TRAINCLOCK_LOG_LEVEL"
	EnvLogFile  = "TRAINCLOCK_LOG_FILE"
	EnvEnv      = "TRAINCLOCK_ENV"
)

const (
	DefaultClockRefresh     = 80 * time.Millisecond
	DefaultCountdownRefresh = 200 * time.Millisecond
	DefaultAnnounce         = "* * * * *"
	DefaultUpcoming         = 5
)

// Config is the top-level application configuration.
type Config struct {
	// DBPath is the SQLite database holding the trains.
	DBPath string `yaml:"db_path"`

	// LogFile receives logs while the terminal UI owns stdout.
	LogFile string `yaml:"log_file"`

	LogLevel    string `yaml:"log_level"`
	Environment string `yaml:"environment"`

	Clock ClockConfig `yaml:"clock"`

	// CountdownRefresh is how often each departure countdown is recomputed.
	CountdownRefresh string `yaml:"countdown_refresh"`

	// Announce is the cron spec of the headless departure announcer.
	Announce string `yaml:"announce"`

	// Upcoming is the number of future departures listed per train.
	Upcoming int `yaml:"upcoming"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	cfg := &Config{
		DBPath:           DefaultDBPath(),
		LogFile:          DefaultLogPath(),
		LogLevel:         "info",
		Environment:      "development",
		Clock:            DefaultClockConfig(),
		CountdownRefresh: DefaultCountdownRefresh.String(),
		Announce:         DefaultAnnounce,
		Upcoming:         DefaultUpcoming,
	}
	return cfg
}

// Normalize fills in missing/zero values with defaults so that partially
// filled files still behave.
func (c *Config) Normalize() {
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath()
	}
	if c.LogFile == "" {
		c.LogFile = DefaultLogPath()
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.Environment = strings.ToLower(strings.TrimSpace(c.Environment))
	if c.Environment == "" {
		c.Environment = "development"
	}
	if strings.TrimSpace(c.CountdownRefresh) == "" {
		c.CountdownRefresh = DefaultCountdownRefresh.String()
	}
	if strings.TrimSpace(c.Announce) == "" {
		c.Announce = DefaultAnnounce
	}
	if c.Upcoming <= 0 {
		c.Upcoming = DefaultUpcoming
	}
	c.Clock.Normalize()
}

// Validate reports malformed durations and cron specs.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseDurationField("clock.refresh", c.Clock.Refresh); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseDurationField("countdown_refresh", c.CountdownRefresh); err != nil {
		errs = append(errs, err)
	}
	if _, err := cron.ParseStandard(c.Announce); err != nil {
		errs = append(errs, fmt.Errorf("announce: invalid cron spec %q: %w", c.Announce, err))
	}
	return errors.Join(errs...)
}

// ClockRefresh returns the clock redraw interval.
func (c *Config) ClockRefresh() time.Duration {
	d, err := ParseDurationOrDefault("clock.refresh", c.Clock.Refresh, DefaultClockRefresh)
	if err != nil {
		return DefaultClockRefresh
	}
	return d
}

// CountdownInterval returns the per-train countdown refresh interval.
func (c *Config) CountdownInterval() time.Duration {
	d, err := ParseDurationOrDefault("countdown_refresh", c.CountdownRefresh, DefaultCountdownRefresh)
	if err != nil {
		return DefaultCountdownRefresh
	}
	return d
}

// ApplyEnv loads a .env file if present and applies TRAINCLOCK_* overrides.
// Variables already set in the environment win over .env.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvEnv); v != "" {
		c.Environment = strings.ToLower(v)
	}
}

// IsProduction reports whether logs should be machine readable.
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "staging"
}

// Dir returns ~/.config/trainclock, falling back to the working directory.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, appName)
}

// DefaultPath returns ~/.config/trainclock/config.yaml
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultDBPath returns ~/.config/trainclock/trainclock.db
func DefaultDBPath() string {
	return filepath.Join(Dir(), appName+".db")
}

// DefaultLogPath returns ~/.config/trainclock/trainclock.log
func DefaultLogPath() string {
	return filepath.Join(Dir(), appName+".log")
}

// Load loads configuration from the given YAML path.
//
// If the file does not exist a default config is written with 0600
// permissions and returned. Otherwise the file is parsed and normalized.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes cfg to path atomically (temp file + rename) with 0600
// permissions, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".trainclock-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

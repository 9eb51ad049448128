package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "TITLESYNC_CONFIG"
	storeURLEnv   = "TITLESYNC_STORE_URL"
	storeTokenEnv = "TITLESYNC_STORE_TOKEN"
	journalDSNEnv = "TITLESYNC_JOURNAL_DSN"
	logLevelEnv   = "TITLESYNC_LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Journal JournalConfig `yaml:"journal"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig describes how to reach the remote record store.
type StoreConfig struct {
	BaseURL        string  `yaml:"baseUrl"`
	APIToken       string  `yaml:"apiToken"`
	TimeoutSeconds int     `yaml:"timeoutSeconds"`
	RatePerSecond  float64 `yaml:"ratePerSecond"`
	Burst          int     `yaml:"burst"`
}

// Timeout resolves the configured request timeout.
func (s StoreConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// JournalConfig wires the optional Postgres run journal; an empty DSN
// disables journaling entirely.
type JournalConfig struct {
	DSN string `yaml:"dsn"`
}

// LoggingConfig selects handler level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(storeURLEnv); v != "" {
		c.Store.BaseURL = v
	}

	if v := os.Getenv(storeTokenEnv); v != "" {
		c.Store.APIToken = v
	}

	if v := os.Getenv(journalDSNEnv); v != "" {
		c.Journal.DSN = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Store.BaseURL != "" {
		base.Store.BaseURL = override.Store.BaseURL
	}
	if override.Store.APIToken != "" {
		base.Store.APIToken = override.Store.APIToken
	}
	if override.Store.TimeoutSeconds > 0 {
		base.Store.TimeoutSeconds = override.Store.TimeoutSeconds
	}
	if override.Store.RatePerSecond > 0 {
		base.Store.RatePerSecond = override.Store.RatePerSecond
	}
	if override.Store.Burst > 0 {
		base.Store.Burst = override.Store.Burst
	}

	if override.Journal.DSN != "" {
		base.Journal.DSN = override.Journal.DSN
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Store: StoreConfig{
			BaseURL:        "https://records.example.org/api",
			APIToken:       "",
			TimeoutSeconds: 15,
			RatePerSecond:  5,
			Burst:          5,
		},
		Journal: JournalConfig{DSN: ""},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Prefs backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	API   APIConfig   `yaml:"api"`
	Prefs PrefsConfig `yaml:"prefs"`
	Log   LogConfig   `yaml:"log"`
	UI    UIConfig    `yaml:"ui"`
	Check CheckConfig `yaml:"check"`
}

// APIConfig describes the remote bookmark and identity service.
type APIConfig struct {
	BaseURL  string        `yaml:"base_url"`  // ex: "http://localhost:8080/api"
	Timeout  time.Duration `yaml:"timeout"`   // 0 disables the client timeout
	PageSize int           `yaml:"page_size"` // size used for full-replace fetches
}

// PrefsConfig selects where local preferences are persisted.
type PrefsConfig struct {
	Backend       string `yaml:"backend"` // sqlite | json | redis | memory
	Path          string `yaml:"path"`    // file path for sqlite/json
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug" | "info" | "warn" | "error"
	Pretty bool   `yaml:"pretty"` // true => console encoder, false => JSON
	File   string `yaml:"file"`   // empty => stderr
}

// UIConfig holds presentation settings.
type UIConfig struct {
	NoticeTTL    time.Duration `yaml:"notice_ttl"` // how long a notice stays visible
	TrendingTags int           `yaml:"trending_tags"`
}

// CheckConfig tunes the link health check.
type CheckConfig struct {
	Concurrency    int           `yaml:"concurrency"`
	Timeout        time.Duration `yaml:"timeout"`
	ExcludeDomains []string      `yaml:"exclude_domains"` // ex: ["localhost", "intranet.example.com"]
}

// DefaultConfig returns the default configuration rooted at dir
// (normally ~/.config/studio).
func DefaultConfig(dir string) Config {
	return Config{
		API: APIConfig{
			BaseURL:  "http://localhost:8080/api",
			Timeout:  30 * time.Second,
			PageSize: 50,
		},
		Prefs: PrefsConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(dir, "prefs.db"),
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "studio.log"),
		},
		UI: UIConfig{
			NoticeTTL:    2400 * time.Millisecond,
			TrendingTags: 8,
		},
		Check: CheckConfig{
			Concurrency: 10,
			Timeout:     10 * time.Second,
		},
	}
}

// Load reads config from the YAML file at path, creating it with defaults
// if it doesn't exist, then applies STUDIO_* environment overrides.
func Load(path string) (*Config, error) {
	defaults := DefaultConfig(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		config := defaults
		// Non-fatal: defaults are still usable if the file can't be written
		_ = Save(path, &config)
		applyEnv(&config)
		return &config, nil
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config, defaults)
	applyEnv(&config)
	return &config, nil
}

// Save writes config to the YAML file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the default config path: ~/.config/studio/config.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "studio", "config.yaml"), nil
}

// applyDefaults fills fields missing from the file.
func applyDefaults(c *Config, d Config) {
	if c.API.BaseURL == "" {
		c.API.BaseURL = d.API.BaseURL
	}
	if c.API.PageSize <= 0 {
		c.API.PageSize = d.API.PageSize
	}
	if c.Prefs.Backend == "" {
		c.Prefs.Backend = d.Prefs.Backend
	}
	if c.Prefs.Path == "" {
		c.Prefs.Path = d.Prefs.Path
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.UI.NoticeTTL <= 0 {
		c.UI.NoticeTTL = d.UI.NoticeTTL
	}
	if c.UI.TrendingTags <= 0 {
		c.UI.TrendingTags = d.UI.TrendingTags
	}
	if c.Check.Concurrency <= 0 {
		c.Check.Concurrency = d.Check.Concurrency
	}
	if c.Check.Timeout <= 0 {
		c.Check.Timeout = d.Check.Timeout
	}
}

func applyEnv(c *Config) {
	c.API.BaseURL = strings.TrimRight(getenv("STUDIO_API_BASE", c.API.BaseURL), "/")
	c.API.Timeout = mustDuration("STUDIO_API_TIMEOUT", c.API.Timeout)
	c.API.PageSize = getenvInt("STUDIO_PAGE_SIZE", c.API.PageSize)

	c.Prefs.Backend = getenv("STUDIO_PREFS_BACKEND", c.Prefs.Backend)
	c.Prefs.Path = getenv("STUDIO_PREFS_PATH", c.Prefs.Path)
	c.Prefs.RedisAddr = getenv("STUDIO_REDIS_ADDR", c.Prefs.RedisAddr)
	c.Prefs.RedisPassword = getenv("STUDIO_REDIS_PASSWORD", c.Prefs.RedisPassword)
	c.Prefs.RedisDB = getenvInt("STUDIO_REDIS_DB", c.Prefs.RedisDB)

	c.Log.Level = getenv("STUDIO_LOG_LEVEL", c.Log.Level)
	c.Log.Pretty = mustBool("STUDIO_PRETTY_LOG", c.Log.Pretty)
	c.Log.File = getenv("STUDIO_LOG_FILE", c.Log.File)
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Package config reads PREPLOCK_* settings from the environment, after an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/llm"
	"github.com/alexanderramin/preplock/internal/lock"
)

const (
	DefaultHTTPAddr = ":8080"
	DefaultLogMode  = "dev"
)

type Config struct {
	DBPath     string
	HTTPAddr   string
	LogMode    string
	User       string
	WindowDays int
	Redis      lock.RedisConfig
	LockTTL    time.Duration
	LLM        llm.LLMConfig
}

// RedisEnabled reports whether a Redis address was configured.
func (c Config) RedisEnabled() bool {
	return c.Redis.Addr != ""
}

// LoadDotEnv loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		DBPath:     os.Getenv("PREPLOCK_DB"),
		HTTPAddr:   envOr("PREPLOCK_HTTP_ADDR", DefaultHTTPAddr),
		LogMode:    envOr("PREPLOCK_LOG_MODE", DefaultLogMode),
		User:       os.Getenv("PREPLOCK_USER"),
		WindowDays: contract.DefaultWindowDays,
		Redis: lock.RedisConfig{
			Addr:     os.Getenv("PREPLOCK_REDIS_ADDR"),
			Password: os.Getenv("PREPLOCK_REDIS_PASSWORD"),
		},
		LockTTL: lock.DefaultTTL,
		LLM:     llm.LoadConfig(),
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".preplock", "preplock.db")
	}
	if cfg.User == "" {
		cfg.User = os.Getenv("USER")
	}

	if v := os.Getenv("PREPLOCK_WINDOW_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > contract.MaxWindowDays {
			return Config{}, fmt.Errorf("PREPLOCK_WINDOW_DAYS: want 0..%d, got %q", contract.MaxWindowDays, v)
		}
		cfg.WindowDays = n
	}
	if v := os.Getenv("PREPLOCK_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("PREPLOCK_REDIS_DB: invalid value %q", v)
		}
		cfg.Redis.DB = n
	}
	if v := os.Getenv("PREPLOCK_LOCK_TTL_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("PREPLOCK_LOCK_TTL_MS: invalid value %q", v)
		}
		cfg.LockTTL = time.Duration(n) * time.Millisecond
	}
	return cfg, nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

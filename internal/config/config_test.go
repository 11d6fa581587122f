package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/lock"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PREPLOCK_DB", "PREPLOCK_HTTP_ADDR", "PREPLOCK_LOG_MODE", "PREPLOCK_USER",
		"PREPLOCK_WINDOW_DAYS", "PREPLOCK_REDIS_ADDR", "PREPLOCK_REDIS_PASSWORD",
		"PREPLOCK_REDIS_DB", "PREPLOCK_LOCK_TTL_MS", "PREPLOCK_LLM_ENABLED",
	} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USER", "alice")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, DefaultLogMode, cfg.LogMode)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, contract.DefaultWindowDays, cfg.WindowDays)
	assert.Equal(t, lock.DefaultTTL, cfg.LockTTL)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, "preplock.db", filepath.Base(cfg.DBPath))
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PREPLOCK_DB", "/tmp/p.db")
	t.Setenv("PREPLOCK_HTTP_ADDR", ":9999")
	t.Setenv("PREPLOCK_LOG_MODE", "prod")
	t.Setenv("PREPLOCK_USER", "bob")
	t.Setenv("PREPLOCK_WINDOW_DAYS", "3")
	t.Setenv("PREPLOCK_REDIS_ADDR", "localhost:6379")
	t.Setenv("PREPLOCK_REDIS_PASSWORD", "hunter2")
	t.Setenv("PREPLOCK_REDIS_DB", "2")
	t.Setenv("PREPLOCK_LOCK_TTL_MS", "1500")
	t.Setenv("PREPLOCK_LLM_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/p.db", cfg.DBPath)
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "prod", cfg.LogMode)
	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, 3, cfg.WindowDays)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, lock.RedisConfig{Addr: "localhost:6379", Password: "hunter2", DB: 2}, cfg.Redis)
	assert.Equal(t, 1500*time.Millisecond, cfg.LockTTL)
	assert.True(t, cfg.LLM.Enabled)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	for name, value := range map[string]string{
		"PREPLOCK_WINDOW_DAYS": "40",
		"PREPLOCK_REDIS_DB":    "x",
		"PREPLOCK_LOCK_TTL_MS": "0",
	} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("PREPLOCK_DB", "/tmp/p.db")
			t.Setenv(name, value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PREPLOCK_USER=carol\nPREPLOCK_HTTP_ADDR=:7070\n"), 0o600))
	t.Setenv("PREPLOCK_HTTP_ADDR", ":6060")
	os.Unsetenv("PREPLOCK_USER")

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv("PREPLOCK_USER") })

	assert.Equal(t, "carol", os.Getenv("PREPLOCK_USER"))
	assert.Equal(t, ":6060", os.Getenv("PREPLOCK_HTTP_ADDR"), "existing variables win")
}

func TestLoadDotEnv_MissingFileIsFine(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}

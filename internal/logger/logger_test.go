package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Modes(t *testing.T) {
	for _, mode := range []string{"prod", "production", "dev", ""} {
		l, err := New(mode)
		require.NoError(t, err, "mode=%q", mode)
		require.NotNil(t, l.SugaredLogger)
	}
}

func TestLogger_FieldsAndRedaction(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromCore(core).With("component", "test")

	l.Info("connected", "addr", "localhost:6379", "redis_password", "hunter2")
	l.Warn("slow", "duration_ms", 1200)

	entries := logs.All()
	require.Len(t, entries, 2)
	fields := entries[0].ContextMap()
	assert.Equal(t, "test", fields["component"])
	assert.Equal(t, "localhost:6379", fields["addr"])
	assert.Equal(t, "[REDACTED]", fields["redis_password"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestNewNop(t *testing.T) {
	l := NewNop()
	l.Error("ignored", "k", "v")
	l.Sync()
}

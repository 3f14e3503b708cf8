package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "MESSAGE_BOARD_DB", "MESSAGE_BOARD_BACKEND", "MESSAGE_BOARD_LOG_LEVEL",
		"MESSAGE_BOARD_QUEUE_SIZE", "MESSAGE_BOARD_SORT")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "sqlite", cfg.Backend)
	require.Equal(t, "WARN", cfg.LogLevel)
	require.Equal(t, 64, cfg.QueueSize)
	require.True(t, strings.HasSuffix(cfg.ResolveDBPath(), filepath.Join(".message-board", "messages.db")))
}

func TestLoadFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MESSAGE_BOARD_DB", dir)
	t.Setenv("MESSAGE_BOARD_BACKEND", "Badger")
	t.Setenv("MESSAGE_BOARD_LOG_LEVEL", "debug")
	t.Setenv("MESSAGE_BOARD_QUEUE_SIZE", "8")
	t.Setenv("MESSAGE_BOARD_SORT", "NAME_ASC")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "badger", cfg.Backend)
	require.Equal(t, "DEBUG", cfg.LogLevel)
	require.Equal(t, 8, cfg.QueueSize)
	require.Equal(t, "NAME_ASC", cfg.Sort)
	require.Equal(t, dir, cfg.ResolveDBPath())
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := Config{Backend: "redis", LogLevel: "INFO", QueueSize: 1}
	require.Error(t, cfg.Validate())

	cfg = Config{Backend: "memory", LogLevel: "LOUD", QueueSize: 1}
	require.Error(t, cfg.Validate())

	cfg = Config{Backend: "memory", LogLevel: "INFO", QueueSize: 0}
	require.Error(t, cfg.Validate())
}

func TestResolveBadgerDefault(t *testing.T) {
	cfg := Config{Backend: "badger"}
	require.True(t, strings.HasSuffix(cfg.ResolveDBPath(), filepath.Join(".message-board", "badger")))
}

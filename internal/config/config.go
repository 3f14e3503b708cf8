// Package config loads message-board settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/rcliao/message-board/internal/kv"
	"github.com/rcliao/message-board/internal/store"
)

var validate = validator.New()

// Config holds runtime settings. CLI flags override these after Load.
type Config struct {
	DBPath    string `env:"MESSAGE_BOARD_DB"`
	Backend   string `env:"MESSAGE_BOARD_BACKEND,default=sqlite" validate:"oneof=memory badger sqlite"`
	LogLevel  string `env:"MESSAGE_BOARD_LOG_LEVEL,default=WARN" validate:"oneof=DEBUG INFO WARN ERROR"`
	QueueSize int    `env:"MESSAGE_BOARD_QUEUE_SIZE,default=64" validate:"gte=1"`
	Sort      string `env:"MESSAGE_BOARD_SORT,default=NONE"`
}

// Load reads an optional .env file, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = store.DefaultQueueSize
	}
	return cfg, nil
}

// Validate normalises and checks cfg.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ResolveDBPath returns DBPath, or the per-backend default under ~/.message-board.
func (c Config) ResolveDBPath() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	home, _ := os.UserHomeDir()
	if c.Backend == kv.BackendBadger {
		return filepath.Join(home, ".message-board", "badger")
	}
	return filepath.Join(home, ".message-board", "messages.db")
}

// Package cli implements the message-board CLI commands.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"

	"github.com/rcliao/message-board/internal/config"
	"github.com/rcliao/message-board/internal/kv"
	"github.com/rcliao/message-board/internal/store"
)

var (
	dbPath       string
	backendFlag  string
	formatFlag   string
	logLevelFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "message-board",
	Short: "Pinned, sortable text messages",
	Long:  "A tiny CLI for timestamped text messages. Add, pin, sort and delete; persisted in a local key-value store.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Store path (default: $MESSAGE_BOARD_DB or ~/.message-board/messages.db)")
	RootCmd.PersistentFlags().StringVarP(&backendFlag, "backend", "b", "", "Store backend: sqlite, badger or memory (default: $MESSAGE_BOARD_BACKEND or sqlite)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (default: $MESSAGE_BOARD_LOG_LEVEL or WARN)")
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if backendFlag != "" {
		cfg.Backend = backendFlag
	}
	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		exitErr("config", err)
	}
	return cfg
}

func newLogger(cfg config.Config) *slog.Logger {
	return logs.GetLoggerFromString(cfg.LogLevel)
}

func openStore() (*store.MessageStore, config.Config, *slog.Logger) {
	cfg := loadConfig()
	log := newLogger(cfg)

	backend, err := kv.Open(cfg.Backend, cfg.ResolveDBPath())
	if err != nil {
		exitErr("open store", err)
	}
	return store.New(backend, log, store.WithQueueSize(cfg.QueueSize)), cfg, log
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}

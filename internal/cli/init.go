// Package cli holds the startup steps shared by the server and worker
// binaries: env loading, logging, config, and the database handle.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"cajachica/internal/config"
	applog "cajachica/internal/log"
	"cajachica/internal/storage"
)

// Bootstrap runs the common startup sequence and exits the process on any
// failure. The caller owns closing the returned repository.
func Bootstrap() (*config.Config, *storage.Repository) {
	// .env is for local development; containers set the environment directly.
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	slog.SetDefault(logger.Logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewRepository(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("Failed to open database", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	return cfg, repo
}

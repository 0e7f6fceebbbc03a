// Package app assembles the storage backend and services for the server and the admin CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/closing_tracker/internal/adapters/database/memory"
	"github.com/SscSPs/closing_tracker/internal/adapters/database/pgsql"
	"github.com/SscSPs/closing_tracker/internal/adapters/storage/localfs"
	portsrepo "github.com/SscSPs/closing_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/closing_tracker/internal/core/ports/services"
	"github.com/SscSPs/closing_tracker/internal/core/services"
	"github.com/SscSPs/closing_tracker/internal/platform/config"
	"github.com/SscSPs/closing_tracker/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewLogger builds the JSON logger used by both binaries.
func NewLogger(level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps LOG_LEVEL onto slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Runtime is everything a binary needs after startup.
type Runtime struct {
	Services *portssvc.ServiceContainer
	Files    *localfs.Storage

	pool *pgxpool.Pool
}

// Options tweak how Build prepares the backend.
type Options struct {
	// Migrate applies pending migrations before the pool is handed out.
	Migrate bool
}

// Build opens the configured record store and document storage and wires the services.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*Runtime, error) {
	files, err := localfs.New(cfg.DocumentStorageDir, cfg.DocumentBaseURL)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Files: files}
	var repos portsrepo.RepositoryProvider

	switch cfg.StorageBackend {
	case "memory":
		logger.Warn("Using in-memory transaction store, data is lost on restart.")
		repos = memory.NewRepositoryProvider(files)
	default:
		if opts.Migrate {
			logger.Info("Running database migrations...")
			changed, err := database.Migrate(cfg.DatabaseURL, database.MigrateUp)
			if err != nil {
				return nil, err
			}
			if changed {
				logger.Info("Database migrations applied successfully.")
			} else {
				logger.Info("No new migrations to apply.")
			}
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		logger.Info("Database connection pool established.")
		rt.pool = pool
		repos = pgsql.NewRepositoryProvider(pool, files)
	}

	rt.Services = services.NewServiceContainer(cfg, repos)
	return rt, nil
}

// Close releases the database pool, if any.
func (rt *Runtime) Close() {
	database.ClosePgxPool(rt.pool)
}

// Package app wires configuration into concrete backends. It is shared
// by the server, migrate and admin binaries so driver selection lives
// in one place.
package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/topnotes/catalog-api/internal/config"
	"github.com/topnotes/catalog-api/internal/repository"
	"github.com/topnotes/catalog-api/internal/repository/postgres"
	"github.com/topnotes/catalog-api/internal/repository/sqlite"
	"github.com/topnotes/catalog-api/internal/storage"
	"github.com/topnotes/catalog-api/internal/storage/filesystem"
	"github.com/topnotes/catalog-api/internal/storage/s3"
)

// NewLogger builds the process logger from the logging configuration.
func NewLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := os.Stdout
	if cfg.Output == "stderr" {
		out = os.Stderr
	}

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: cfg.TimeFormat})
	} else {
		logger = zerolog.New(out)
	}

	return logger.Level(level).With().Timestamp().Logger()
}

// Store bundles the repositories of whichever database driver is
// configured, together with its lifecycle operations.
type Store struct {
	Admins   repository.AdminRepository
	Tokens   repository.TokenRepository
	Settings repository.SettingRepository
	Perfumes repository.PerfumeRepository

	migrate func(context.Context) error
	version func(context.Context) (int, error)
	close   func() error
}

// Migrate applies any pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	return s.migrate(ctx)
}

// Version returns the applied schema version, zero when none.
func (s *Store) Version(ctx context.Context) (int, error) {
	return s.version(ctx)
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.close()
}

// OpenStore connects to the configured database driver.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (*Store, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := postgres.NewDB(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		return &Store{
			Admins:   postgres.NewAdminRepository(db),
			Tokens:   postgres.NewTokenRepository(db),
			Settings: postgres.NewSettingRepository(db),
			Perfumes: postgres.NewPerfumeRepository(db),
			migrate:  db.Migrate,
			version:  db.Version,
			close:    db.Close,
		}, nil

	case "sqlite":
		db, err := sqlite.NewDB(ctx, sqlite.Config{
			Path:            cfg.Path,
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
			JournalMode:     cfg.JournalMode,
			BusyTimeout:     cfg.BusyTimeout,
			CacheSize:       cfg.CacheSize,
			SynchronousMode: cfg.SynchronousMode,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return &Store{
			Admins:   sqlite.NewAdminRepository(db),
			Tokens:   sqlite.NewTokenRepository(db),
			Settings: sqlite.NewSettingRepository(db),
			Perfumes: sqlite.NewPerfumeRepository(db),
			migrate:  db.Migrate,
			version:  db.Version,
			close:    db.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// OpenImageStore builds the configured image storage backend.
func OpenImageStore(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (storage.ImageStore, error) {
	switch cfg.Backend {
	case "s3":
		return s3.NewStore(ctx, cfg.S3, logger)
	case "filesystem":
		return filesystem.NewStore(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

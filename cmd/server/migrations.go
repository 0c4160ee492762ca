package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/trackerworkflow/tracker-api/internal/config"
	"github.com/trackerworkflow/tracker-api/migrations"
)

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	log *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...))
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...))
}

func configureGoose(log *slog.Logger) error {
	goose.SetLogger(&slogGooseLogger{log: log.With("component", "migrations")})
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	return nil
}

// migrateUp applies all pending migrations from the embedded filesystem.
func migrateUp(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	if err := configureGoose(log); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// runMigrationCommand executes a single migration command and returns.
// It opens its own short-lived database connection.
func runMigrationCommand(ctx context.Context, cfg *config.Config, log *slog.Logger, command string) error {
	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database connection", "error", err)
		}
	}()

	if err := configureGoose(log); err != nil {
		return err
	}

	switch command {
	case "up":
		return goose.UpContext(ctx, db, ".")
	case "down":
		return goose.DownContext(ctx, db, ".")
	case "status":
		return goose.StatusContext(ctx, db, ".")
	case "version":
		version, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return err
		}
		log.Info("migration version", "version", version)
		return nil
	default:
		return fmt.Errorf("unknown migration command %q (want up, down, status, or version)", command)
	}
}

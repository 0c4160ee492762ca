// Package main implements the entry point for the tracker API server,
// which handles projects, tasks, mention fan-out notifications, and
// AI-assisted task summarization.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/trackerworkflow/tracker-api/internal/config"
	"github.com/trackerworkflow/tracker-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status, version) and exit")
	flag.Parse()

	if err := run(*migrateCmd); err != nil {
		log.Fatalf("tracker-api: %v", err)
	}
}

// run loads configuration, applies pending migrations, and starts the
// HTTP server. When migrateCmd is non-empty it runs that migration
// command instead of serving.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"google_auth_configured", cfg.Google.ClientID != "",
		"ai_configured", cfg.AI.GeminiAPIKey != "")

	ctx := context.Background()

	if migrateCmd != "" {
		return runMigrationCommand(ctx, cfg, appLogger, migrateCmd)
	}

	db, err := openDatabase(ctx, cfg.Database, appLogger)
	if err != nil {
		return err
	}

	if err := migrateUp(ctx, db, appLogger); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

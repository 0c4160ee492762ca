package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/trackerworkflow/tracker-api/internal/config"
	"github.com/trackerworkflow/tracker-api/internal/domain"
	"github.com/trackerworkflow/tracker-api/internal/platform/cache"
	"github.com/trackerworkflow/tracker-api/internal/platform/gemini"
	"github.com/trackerworkflow/tracker-api/internal/platform/googleauth"
	"github.com/trackerworkflow/tracker-api/internal/platform/postgres"
	"github.com/trackerworkflow/tracker-api/internal/service"
	"github.com/trackerworkflow/tracker-api/internal/service/auth"
	"github.com/trackerworkflow/tracker-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// application holds the shared application dependencies so wiring and
// cleanup live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore         store.UserStore
	projectStore      store.ProjectStore
	taskStore         store.TaskStore
	notificationStore store.NotificationStore

	userCache  *cache.Cache[*domain.User]
	tokenCache *cache.Cache[googleauth.UserInfo]

	jwtService auth.JWTService
	googleAuth *googleauth.Service
	summarizer *gemini.Summarizer

	userService         service.UserService
	projectService      service.ProjectService
	taskService         service.TaskService
	notificationService service.NotificationService
}

// newApplication wires up all application components. The database
// connection must already be open and migrated.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	bcryptCost := cfg.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	passwordService := auth.NewBcryptService(bcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.projectStore = postgres.NewPostgresProjectStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.notificationStore = postgres.NewPostgresNotificationStore(db, logger)

	// One cache per lookup concern; both are exposed on the admin
	// endpoints for inspection and manual clearing.
	app.userCache = cache.New[*domain.User](cache.DefaultCeiling)
	app.tokenCache = cache.New[googleauth.UserInfo](cache.DefaultCeiling)

	app.googleAuth = googleauth.NewService(cfg.Google, app.tokenCache, logger)

	app.summarizer, err = gemini.NewSummarizer(ctx, cfg.AI, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize summarizer: %w", err)
	}

	app.userService = service.NewUserService(
		app.userStore,
		db,
		passwordService,
		passwordService,
		app.userCache,
		logger,
	)
	app.projectService = service.NewProjectService(app.projectStore, db, logger)
	app.taskService = service.NewTaskService(app.taskStore, app.notificationStore, db, logger)
	app.notificationService = service.NewNotificationService(app.notificationStore, logger)

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources during shutdown.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
	app.logger.Info("application shutdown completed")
}

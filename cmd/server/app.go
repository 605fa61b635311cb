package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/widget-api/internal/api"
	"github.com/phrazzld/widget-api/internal/config"
	"github.com/phrazzld/widget-api/internal/problem"
	"github.com/phrazzld/widget-api/internal/service"
	"github.com/phrazzld/widget-api/internal/service/auth"
	"github.com/phrazzld/widget-api/internal/store"
	"github.com/phrazzld/widget-api/internal/validation"
)

// application holds the shared dependencies of the running process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore   store.UserStore
	widgetStore store.WidgetStore

	jwtService    auth.JWTService
	tokenIssuer   *auth.TokenIssuer
	userService   service.UserService
	widgetService service.WidgetService
}

// newApplication wires stores and services for the configured driver.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.userStore, app.widgetStore, err = newStores(db, cfg.Database.Driver, logger)
	if err != nil {
		return nil, err
	}

	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher, err := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.tokenIssuer = auth.NewTokenIssuer(app.userStore, auth.NewBcryptVerifier(), app.jwtService, logger)

	app.userService, err = service.NewUserService(app.userStore, hasher, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.widgetService, err = service.NewWidgetService(app.widgetStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create widget service: %w", err)
	}

	return app, nil
}

// handler returns the HTTP handler of the application.
func (app *application) handler() http.Handler {
	return api.NewRouter(api.RouterDeps{
		Widgets:        app.widgetService,
		Tokens:         app.tokenIssuer,
		JWTService:     app.jwtService,
		Users:          app.userStore,
		Builder:        problem.NewBuilder(app.config.Server.DocsBaseURL),
		Validator:      validation.NewValidator(),
		Logger:         app.logger,
		RequestTimeout: time.Duration(app.config.Server.RequestTimeoutSeconds) * time.Second,
		TokenRateLimit: app.config.Auth.TokenRateLimit,
		TokenRateBurst: app.config.Auth.TokenRateBurst,
	})
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.handler()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

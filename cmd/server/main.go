// Package main implements the entry point for the widget API server.
//
// Without flags it serves HTTP until SIGINT or SIGTERM. The -migrate flag
// runs schema migrations instead, and -create-user provisions an API user.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run migrations: up, down or status")
	createUser := flag.String("create-user", "", "create an API user with this email and exit")
	password := flag.String("password", "", "password for -create-user")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd, *createUser, *password); err != nil {
		log.Fatalf("widget-api: %v", err)
	}
}

// run loads configuration and performs the requested command.
func run(ctx context.Context, migrateCmd, createUserEmail, password string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", "error", err)
		}
	}()

	switch {
	case migrateCmd != "":
		return handleMigrations(ctx, db, cfg.Database.Driver, migrateCmd, os.Stdout, logger)
	case createUserEmail != "":
		app, err := newApplication(cfg, logger, db)
		if err != nil {
			return err
		}
		user, err := app.userService.CreateUser(ctx, createUserEmail, password)
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		fmt.Fprintf(os.Stdout, "created user %s\n", user.ID)
		return nil
	}

	if cfg.Database.AutoMigrate {
		if err := handleMigrations(ctx, db, cfg.Database.Driver, "up", os.Stdout, logger); err != nil {
			return err
		}
	}

	app, err := newApplication(cfg, logger, db)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

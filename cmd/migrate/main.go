package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/umanari145/blog-backend/internal/config"
	"github.com/umanari145/blog-backend/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	var (
		migrationsPath = flag.String("migrations", cfg.Database.MigrationsPath, "Migrations directory path")
		action         = flag.String("action", "up", "Migration action: up, down, status, validate, check-files")
		verbose        = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := config.NewLogger(cfg)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absMigrationsPath, err := filepath.Abs(*migrationsPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute migrations path")
	}
	cfg.Database.MigrationsPath = absMigrationsPath

	logger.WithFields(logrus.Fields{
		"database":        cfg.Database.Name,
		"migrations_path": absMigrationsPath,
		"action":          *action,
	}).Info("Starting migration tool")

	// check-files needs no connection
	if *action == "check-files" {
		if err := database.ValidateMigrationFiles(absMigrationsPath); err != nil {
			logger.WithError(err).Fatal("Migration files are invalid")
		}
		fmt.Println("Migration files are valid")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	defer cancel()

	cm := database.NewConnectionManager(database.NewConnectionConfig(cfg, logger))
	if err := cm.Connect(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}

	err = runAction(ctx, cm, *action)
	if closeErr := cm.Close(context.Background()); closeErr != nil {
		logger.WithError(closeErr).Warn("Failed to close database connection")
	}
	if err != nil {
		logger.WithError(err).Fatalf("Migration %s failed", *action)
	}

	logger.Info("Migration tool completed successfully")
}

func runAction(ctx context.Context, cm *database.ConnectionManager, action string) error {
	switch action {
	case "up":
		return cm.GetMigrationManager().RunMigrations()
	case "down":
		return cm.GetMigrationManager().RollbackMigration()
	case "status":
		return showMigrationStatus(cm)
	case "validate":
		return validateSchema(ctx, cm)
	default:
		return fmt.Errorf("unknown action %q, use: up, down, status, validate, check-files", action)
	}
}

func showMigrationStatus(cm *database.ConnectionManager) error {
	status, err := cm.GetMigrationManager().GetMigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	fmt.Printf("Migration Status:\n")
	fmt.Printf("  Version: %d\n", status.Version)
	fmt.Printf("  Applied: %t\n", status.Applied)
	fmt.Printf("  Dirty: %t\n", status.Dirty)
	fmt.Printf("  Timestamp: %s\n", status.Timestamp.Format("2006-01-02 15:04:05"))

	return nil
}

func validateSchema(ctx context.Context, cm *database.ConnectionManager) error {
	if err := cm.GetMigrationManager().ValidateSchema(ctx); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	fmt.Println("Schema validation passed successfully")
	return nil
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"github.com/umanari145/blog-backend/internal/config"
	"github.com/umanari145/blog-backend/internal/importer"
	"github.com/umanari145/blog-backend/pkg/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	var (
		dsn        = flag.String("dsn", cfg.Import.WordPressDSN, "WordPress MySQL DSN, e.g. user:pass@tcp(host:3306)/wordpress")
		action     = flag.String("action", "import", "Action: import, check")
		batchSize  = flag.Int("batch-size", cfg.Import.BatchSize, "Posts written per insert")
		dryRun     = flag.Bool("dry-run", false, "Read and convert without writing")
		skipLabels = flag.Bool("skip-labels", false, "Do not import categories and tags")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := config.NewLogger(cfg)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	if *dsn == "" {
		logger.Fatal("WordPress DSN is required (-dsn or WP_DB_DSN)")
	}

	logger.WithFields(logrus.Fields{
		"action":     *action,
		"batch_size": *batchSize,
		"dry_run":    *dryRun,
		"database":   cfg.Database.Name,
	}).Info("Starting WordPress import tool")

	db, err := sql.Open("mysql", *dsn)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open WordPress database")
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to connect to WordPress database")
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	container, err := server.NewContainer(connectCtx, cfg, logger)
	cancel()
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to document store")
	}
	defer container.Close()

	im := importer.New(db, container.Repositories(), logger, importer.Options{
		BatchSize:  *batchSize,
		DryRun:     *dryRun,
		SkipLabels: *skipLabels,
	})

	if err := im.CheckSource(ctx); err != nil {
		logger.WithError(err).Fatal("WordPress source check failed")
	}

	switch *action {
	case "check":
		fmt.Println("WordPress source is readable")
	case "import":
		result, err := im.Run(ctx)
		if err != nil {
			logger.WithError(err).Error("Import failed")
		}
		if result != nil {
			printResult(result)
		}
	default:
		logger.WithField("action", *action).Error("Unknown action. Use: import, check")
	}
}

func printResult(result *importer.Result) {
	fmt.Printf("Import Results:\n")
	fmt.Printf("  Posts read: %d\n", result.PostsRead)
	fmt.Printf("  Posts imported: %d\n", result.PostsImported)
	fmt.Printf("  Labels imported: %d\n", result.LabelsImported)
	fmt.Printf("  Batches: %d\n", result.Batches)

	if len(result.Warnings) > 0 {
		fmt.Printf("  Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Printf("    - %s\n", warning)
		}
	}
}

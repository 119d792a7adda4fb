package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MigrationManager applies the JSON command migrations under migrationsPath
type MigrationManager struct {
	client         *mongo.Client
	databaseName   string
	migrationsPath string
	logger         *logrus.Logger
}

// NewMigrationManager creates a new migration manager
func NewMigrationManager(client *mongo.Client, databaseName, migrationsPath string, logger *logrus.Logger) *MigrationManager {
	if logger == nil {
		logger = logrus.New()
	}
	return &MigrationManager{
		client:         client,
		databaseName:   databaseName,
		migrationsPath: migrationsPath,
		logger:         logger,
	}
}

// MigrationInfo contains information about a migration
type MigrationInfo struct {
	Version   uint
	Dirty     bool
	Applied   bool
	Timestamp time.Time
}

// ExpectedIndexes lists, per collection, the index names the migrations create
var ExpectedIndexes = map[string][]string{
	"posts":  {"post_no_unique", "post_date_desc"},
	"labels": {"no_type"},
	"users":  {"email_unique"},
}

// RunMigrations executes all pending migrations
func (m *MigrationManager) RunMigrations() error {
	m.logger.Info("Starting database migrations...")

	mig, err := m.initMigrate()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer mig.Close()

	currentVersion, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	if dirty {
		m.logger.Warn("Database is in dirty state, attempting to force version")
		if err := mig.Force(int(currentVersion)); err != nil {
			return fmt.Errorf("failed to force migration version: %w", err)
		}
	}

	m.logger.WithField("current_version", currentVersion).Info("Current migration version")

	if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	newVersion, _, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get new migration version: %w", err)
	}

	m.logger.WithField("new_version", newVersion).Info("Migrations completed successfully")
	return nil
}

// RollbackMigration rolls back the last migration
func (m *MigrationManager) RollbackMigration() error {
	m.logger.Info("Rolling back last migration...")

	mig, err := m.initMigrate()
	if err != nil {
		return fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer mig.Close()

	currentVersion, _, err := mig.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return fmt.Errorf("no migrations to rollback")
		}
		return fmt.Errorf("failed to get current migration version: %w", err)
	}

	m.logger.WithField("current_version", currentVersion).Info("Rolling back from version")

	if err := mig.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	newVersion, _, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get new migration version: %w", err)
	}

	m.logger.WithField("new_version", newVersion).Info("Rollback completed successfully")
	return nil
}

// GetMigrationStatus returns the current migration status
func (m *MigrationManager) GetMigrationStatus() (*MigrationInfo, error) {
	mig, err := m.initMigrate()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrate: %w", err)
	}
	defer mig.Close()

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("failed to get migration version: %w", err)
	}

	return &MigrationInfo{
		Version:   version,
		Dirty:     dirty,
		Applied:   err == nil,
		Timestamp: time.Now(),
	}, nil
}

// ValidateSchema checks every expected index exists
func (m *MigrationManager) ValidateSchema(ctx context.Context) error {
	m.logger.Info("Validating database indexes...")

	db := m.client.Database(m.databaseName)
	for collection, expected := range ExpectedIndexes {
		cursor, err := db.Collection(collection).Indexes().List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list indexes on %s: %w", collection, err)
		}

		var indexes []bson.M
		if err := cursor.All(ctx, &indexes); err != nil {
			return fmt.Errorf("failed to read indexes on %s: %w", collection, err)
		}

		present := make(map[string]bool, len(indexes))
		for _, idx := range indexes {
			if name, ok := idx["name"].(string); ok {
				present[name] = true
			}
		}
		for _, name := range expected {
			if !present[name] {
				return fmt.Errorf("expected index %s.%s not found", collection, name)
			}
		}
	}

	m.logger.Info("Index validation completed successfully")
	return nil
}

func (m *MigrationManager) initMigrate() (*migrate.Migrate, error) {
	absPath, err := filepath.Abs(m.migrationsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute migrations path: %w", err)
	}

	source, err := (&file.File{}).Open(fmt.Sprintf("file://%s", absPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	driver, err := mongodb.WithInstance(m.client, &mongodb.Config{DatabaseName: m.databaseName})
	if err != nil {
		return nil, fmt.Errorf("failed to create database driver: %w", err)
	}

	mig, err := migrate.NewWithInstance("file", source, m.databaseName, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return mig, nil
}

var migrationFileRegex = regexp.MustCompile(`^(\d+)_(\w+)\.(up|down)\.json$`)

// ValidateMigrationFiles checks each version has an up and a down file and that
// every file holds a JSON array of command documents.
func ValidateMigrationFiles(migrationsPath string) error {
	entries, err := os.ReadDir(migrationsPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	directions := map[string]map[string]bool{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := migrationFileRegex.FindStringSubmatch(entry.Name())
		if match == nil {
			return fmt.Errorf("unexpected file in migrations directory: %s", entry.Name())
		}

		content, err := os.ReadFile(filepath.Join(migrationsPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		var commands []map[string]interface{}
		if err := json.Unmarshal(content, &commands); err != nil {
			return fmt.Errorf("%s is not a JSON command array: %w", entry.Name(), err)
		}
		if len(commands) == 0 {
			return fmt.Errorf("%s has no commands", entry.Name())
		}

		if directions[match[1]] == nil {
			directions[match[1]] = map[string]bool{}
		}
		directions[match[1]][match[3]] = true
	}

	if len(directions) == 0 {
		return fmt.Errorf("no migrations found in %s", migrationsPath)
	}
	for version, dirs := range directions {
		if !dirs["up"] || !dirs["down"] {
			return fmt.Errorf("migration %s needs both up and down files", version)
		}
	}
	return nil
}

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/umanari145/blog-backend/internal/config"
)

// ConnectionConfig holds document store connection configuration
type ConnectionConfig struct {
	URI            string
	DatabaseName   string
	MigrationsPath string
	ConnectTimeout time.Duration
	Logger         *logrus.Logger
}

// NewConnectionConfig builds a connection configuration from the application config
func NewConnectionConfig(cfg *config.Config, logger *logrus.Logger) *ConnectionConfig {
	if logger == nil {
		logger = logrus.New()
	}
	return &ConnectionConfig{
		URI:            cfg.Database.ConnectionURI(),
		DatabaseName:   cfg.Database.Name,
		MigrationsPath: cfg.Database.MigrationsPath,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		Logger:         logger,
	}
}

// ClientOptions returns the driver options for this configuration
func (c *ConnectionConfig) ClientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(c.URI).SetAppName("blog-backend")
	if c.ConnectTimeout > 0 {
		opts.SetConnectTimeout(c.ConnectTimeout).SetServerSelectionTimeout(c.ConnectTimeout)
	}
	return opts
}

// ConnectionManager owns the process-wide MongoDB client
type ConnectionManager struct {
	config *ConnectionConfig
	client *mongo.Client
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager(config *ConnectionConfig) *ConnectionManager {
	return &ConnectionManager{
		config: config,
	}
}

// Connect creates the client and verifies the primary is reachable
func (cm *ConnectionManager) Connect(ctx context.Context) error {
	if cm.client != nil {
		return fmt.Errorf("database connection already established")
	}

	client, err := mongo.Connect(ctx, cm.config.ClientOptions())
	if err != nil {
		return fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("failed to ping document store: %w", err)
	}

	cm.client = client
	cm.config.Logger.WithField("database", cm.config.DatabaseName).Info("Database connection established")
	return nil
}

// Client returns the connected client, or nil before Connect
func (cm *ConnectionManager) Client() *mongo.Client {
	return cm.client
}

// Database returns the configured database handle
func (cm *ConnectionManager) Database() *mongo.Database {
	if cm.client == nil {
		return nil
	}
	return cm.client.Database(cm.config.DatabaseName)
}

// Close disconnects the client
func (cm *ConnectionManager) Close(ctx context.Context) error {
	if cm.client == nil {
		return nil
	}

	err := cm.client.Disconnect(ctx)
	cm.client = nil

	// closing a migrate instance already disconnects the shared client
	if err != nil && !errors.Is(err, mongo.ErrClientDisconnected) {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	cm.config.Logger.Info("Database connection closed")
	return nil
}

// Ping tests the database connection
func (cm *ConnectionManager) Ping(ctx context.Context) error {
	if cm.client == nil {
		return fmt.Errorf("database connection not established")
	}

	if err := cm.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// GetMigrationManager returns a migration manager for this connection
func (cm *ConnectionManager) GetMigrationManager() *MigrationManager {
	if cm.client == nil {
		return nil
	}

	return NewMigrationManager(cm.client, cm.config.DatabaseName, cm.config.MigrationsPath, cm.config.Logger)
}

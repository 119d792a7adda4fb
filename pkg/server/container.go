package server

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/umanari145/blog-backend/internal/config"
	"github.com/umanari145/blog-backend/internal/database"
	"github.com/umanari145/blog-backend/internal/repositories"
	"github.com/umanari145/blog-backend/internal/repositories/memory"
	"github.com/umanari145/blog-backend/internal/repositories/mongodb"
	"github.com/umanari145/blog-backend/internal/services"
)

// closeTimeout bounds how long Close waits for the store to disconnect
const closeTimeout = 10 * time.Second

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logrus.Logger
	BlogService services.BlogService
	MenuService services.MenuService
	AuthService services.AuthService

	repos    repositories.RepositoryManager
	services *services.ServiceContainer
}

// NewContainer connects to the configured store and builds the services
func NewContainer(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = config.NewLogger(cfg)
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	container, err := NewContainerWithRepositories(cfg, logger, repos)
	if err != nil {
		_ = repos.Close(ctx)
		return nil, err
	}
	return container, nil
}

// NewContainerWithRepositories builds the services on top of an existing store
func NewContainerWithRepositories(cfg *config.Config, logger *logrus.Logger, repos repositories.RepositoryManager) (*Container, error) {
	if logger == nil {
		logger = logrus.New()
	}

	serviceContainer, err := services.NewServiceContainer(repos)
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	return &Container{
		Config:      cfg,
		Logger:      logger,
		BlogService: serviceContainer.BlogService,
		MenuService: serviceContainer.MenuService,
		AuthService: serviceContainer.AuthService,
		repos:       repos,
		services:    serviceContainer,
	}, nil
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repositories.RepositoryManager, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("Using in-memory store with sample data")
		return memory.NewSampleStore(), nil
	case config.DriverMongo, "":
		cm := database.NewConnectionManager(database.NewConnectionConfig(cfg, logger))
		if err := cm.Connect(ctx); err != nil {
			return nil, repositories.ConnectionError(err)
		}
		return mongodb.NewManager(cm.Client(), cfg.Database.Name, logger), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
}

// Repositories exposes the underlying store, e.g. for the importer
func (c *Container) Repositories() repositories.RepositoryManager {
	return c.repos
}

// Health checks the store is reachable
func (c *Container) Health(ctx context.Context) error {
	return c.repos.Health(ctx)
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.repos == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	if err := c.repos.Close(ctx); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

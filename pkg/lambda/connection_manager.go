package lambda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/umanari145/blog-backend/internal/config"
	"github.com/umanari145/blog-backend/pkg/server"
)

// staleAfter is how long a warm container may sit idle before IsHealthy reports it stale
const staleAfter = 5 * time.Minute

// ContainerFactory builds a container; NewContainer in production
type ContainerFactory func(ctx context.Context, cfg *config.Config) (*server.Container, error)

// ConnectionManager keeps one service container, and so one store client,
// alive across warm invocations of a Lambda function
type ConnectionManager struct {
	container *server.Container
	lastUsed  time.Time
	mu        sync.Mutex
	config    *config.Config
	factory   ContainerFactory
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the process-wide connection manager
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager(nil)
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager that builds containers with factory
func NewConnectionManager(factory ContainerFactory) *ConnectionManager {
	if factory == nil {
		factory = func(ctx context.Context, cfg *config.Config) (*server.Container, error) {
			return server.NewContainer(ctx, cfg, nil)
		}
	}
	return &ConnectionManager{factory: factory}
}

// Initialize sets the configuration used for the first container
func (cm *ConnectionManager) Initialize(cfg *config.Config) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config = cfg
}

// GetContainer returns the container, creating it on first use. A failed
// creation is retried on the next call.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		cm.lastUsed = time.Now()
		return cm.container, nil
	}

	if cm.config == nil {
		cfg, err := config.GetOptimizedConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cm.config = cfg
	}

	container, err := cm.factory(ctx, cm.config)
	if err != nil {
		return nil, err
	}

	sc := config.GetServerlessConfig()
	container.Logger.WithFields(logrus.Fields{
		"function": sc.FunctionName,
		"region":   sc.Region,
		"stage":    sc.Stage,
		"driver":   cm.config.Database.Driver,
	}).Info("Container initialized")

	cm.container = container
	cm.lastUsed = time.Now()
	return container, nil
}

// IsHealthy reports whether a container exists and was used recently
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return cm.container != nil && time.Since(cm.lastUsed) < staleAfter
}

// Cleanup closes the container
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(); err != nil {
			return err
		}
		cm.container = nil
	}
	return nil
}

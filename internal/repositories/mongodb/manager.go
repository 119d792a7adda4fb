package mongodb

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/umanari145/blog-backend/internal/repositories"
)

// Manager bundles the MongoDB repositories sharing one client
type Manager struct {
	client *mongo.Client
	posts  *PostRepository
	labels *LabelRepository
	menus  *MenuRepository
	users  *UserRepository
}

// NewManager creates the repositories for database dbName on client
func NewManager(client *mongo.Client, dbName string, logger *logrus.Logger) *Manager {
	db := client.Database(dbName)
	return &Manager{
		client: client,
		posts:  NewPostRepository(db, logger),
		labels: NewLabelRepository(db, logger),
		menus:  NewMenuRepository(db, logger),
		users:  NewUserRepository(db, logger),
	}
}

func (m *Manager) Posts() repositories.PostRepository   { return m.posts }
func (m *Manager) Labels() repositories.LabelRepository { return m.labels }
func (m *Manager) Menus() repositories.MenuRepository   { return m.menus }
func (m *Manager) Users() repositories.UserRepository   { return m.users }

// Health pings the primary
func (m *Manager) Health(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return repositories.ConnectionError(err)
	}
	return nil
}

// Close disconnects the client
func (m *Manager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

var _ repositories.RepositoryManager = (*Manager)(nil)

package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
)

// PostRepository defines operations on the posts collection
type PostRepository interface {
	// GetByPostNo retrieves a post by its business key
	GetByPostNo(ctx context.Context, postNo string) (*models.Post, error)

	// Find returns one page of posts for a planned query, newest first
	Find(ctx context.Context, d *query.Descriptor) ([]models.Post, error)

	// Count returns the number of posts the planned query matches, ignoring paging
	Count(ctx context.Context, d *query.Descriptor) (int64, error)

	// Create inserts a post and returns the generated identifier as hex
	Create(ctx context.Context, post *models.Post) (string, error)

	// UpdateFields sets only the supplied fields on the post with the given id
	UpdateFields(ctx context.Context, id primitive.ObjectID, update *models.PostUpdate) error

	// InsertMany bulk-inserts posts (used by the importer)
	InsertMany(ctx context.Context, posts []*models.Post) error
}

// LabelRepository defines operations on the labels collection
type LabelRepository interface {
	List(ctx context.Context) ([]models.Label, error)
	InsertMany(ctx context.Context, labels []*models.Label) error
}

// MenuRepository computes navigation facets over posts
type MenuRepository interface {
	// CountByTaxonomy counts posts per label of one taxonomy, sorted by name
	CountByTaxonomy(ctx context.Context, t query.Taxonomy) ([]models.MenuItem, error)

	// CountByMonth counts posts per YYYY-MM, ascending
	CountByMonth(ctx context.Context) ([]models.MenuItem, error)
}

// UserRepository defines read access to the users collection
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RepositoryManager gives access to every repository backed by one store
type RepositoryManager interface {
	Posts() PostRepository
	Labels() LabelRepository
	Menus() MenuRepository
	Users() UserRepository

	// Health checks the store is reachable
	Health(ctx context.Context) error

	// Close releases the underlying connection
	Close(ctx context.Context) error
}

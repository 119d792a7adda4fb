package services

import (
	"context"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
	"github.com/umanari145/blog-backend/internal/repositories"
)

// BlogService defines the blog post operations
type BlogService interface {
	// GetPost retrieves one post by its post_no
	GetPost(ctx context.Context, postNo string) (*models.Post, error)

	// ListPosts plans the query, fetches one page and wraps it with totals.
	// An empty page is reported as not found.
	ListPosts(ctx context.Context, params query.Params) (*repositories.Page[models.Post], error)

	// CreatePost validates and inserts a post, returning its new id
	CreatePost(ctx context.Context, post *models.Post) (string, error)

	// UpdatePost sets the supplied fields on the post with the given post_no
	UpdatePost(ctx context.Context, postNo string, update *models.PostUpdate) error
}

// MenuService computes the navigation facets
type MenuService interface {
	GetMenus(ctx context.Context) (*models.Menus, error)
}

// AuthService checks login credentials
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
	"github.com/umanari145/blog-backend/internal/repositories"
)

// blogService implements the BlogService interface
type blogService struct {
	postRepo  repositories.PostRepository
	validator *validator.Validate
}

// NewBlogService creates a new blog service instance
func NewBlogService(postRepo repositories.PostRepository) BlogService {
	return &blogService{
		postRepo:  postRepo,
		validator: validator.New(),
	}
}

// GetPost retrieves a post by post_no
func (s *blogService) GetPost(ctx context.Context, postNo string) (*models.Post, error) {
	if strings.TrimSpace(postNo) == "" {
		return nil, repositories.ValidationError("posts", postNo, fmt.Errorf("post_no cannot be empty"))
	}

	post, err := s.postRepo.GetByPostNo(ctx, postNo)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return post, nil
}

// ListPosts returns one page of posts for the parameters
func (s *blogService) ListPosts(ctx context.Context, params query.Params) (*repositories.Page[models.Post], error) {
	d := query.Plan(params)

	items, err := s.postRepo.Find(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if len(items) == 0 {
		return nil, repositories.NotFoundError("posts", fmt.Sprintf("page %d", d.CurrentPage))
	}

	count, err := s.postRepo.Count(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	return repositories.NewPage(items, count, d.CurrentPage), nil
}

// CreatePost validates and stores a new post
func (s *blogService) CreatePost(ctx context.Context, post *models.Post) (string, error) {
	if post == nil {
		return "", repositories.ValidationError("posts", "", fmt.Errorf("post cannot be nil"))
	}

	if err := s.validator.Struct(post); err != nil {
		return "", repositories.ValidationError("posts", post.PostNo, err)
	}
	if err := post.Validate(); err != nil {
		return "", repositories.ValidationError("posts", post.PostNo, err)
	}

	if post.Categories == nil {
		post.Categories = []int{}
	}
	if post.Tags == nil {
		post.Tags = []int{}
	}

	id, err := s.postRepo.Create(ctx, post)
	if err != nil {
		return "", fmt.Errorf("failed to create post: %w", err)
	}
	return id, nil
}

// UpdatePost applies a partial update to an existing post. Missing posts are
// reported as not found rather than created.
func (s *blogService) UpdatePost(ctx context.Context, postNo string, update *models.PostUpdate) error {
	if update == nil {
		return repositories.ValidationError("posts", postNo, fmt.Errorf("update cannot be nil"))
	}
	if err := s.validator.Struct(update); err != nil {
		return repositories.ValidationError("posts", postNo, err)
	}

	existing, err := s.GetPost(ctx, postNo)
	if err != nil {
		return err
	}

	if err := s.postRepo.UpdateFields(ctx, existing.ID, update); err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

package memory

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
	"github.com/umanari145/blog-backend/internal/repositories"
)

type postRepository struct {
	s *Store
}

func (r *postRepository) GetByPostNo(ctx context.Context, postNo string) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.posts {
		if p.PostNo == postNo {
			post := clonePost(p)
			return &post, nil
		}
	}
	return nil, repositories.NotFoundError("posts", postNo)
}

func (r *postRepository) Find(ctx context.Context, d *query.Descriptor) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched, err := r.s.match(d.Criteria)
	if err != nil {
		return nil, err
	}
	sortByDateDesc(matched)

	page := []models.Post{}
	for i := d.Offset; i < int64(len(matched)) && i < d.Offset+query.PageSize; i++ {
		page = append(page, clonePost(matched[i]))
	}
	return page, nil
}

func (r *postRepository) Count(ctx context.Context, d *query.Descriptor) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched, err := r.s.match(d.Criteria)
	if err != nil {
		return 0, err
	}
	return int64(len(matched)), nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.insertLocked(post); err != nil {
		return "", err
	}
	return post.ID.Hex(), nil
}

// insertLocked enforces the unique post_no index
func (r *postRepository) insertLocked(post *models.Post) error {
	for _, p := range r.s.posts {
		if p.PostNo == post.PostNo {
			return repositories.DuplicateError("posts", "post_no", post.PostNo)
		}
	}
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	r.s.posts = append(r.s.posts, clonePost(*post))
	return nil
}

func (r *postRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update *models.PostUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if update.IsEmpty() {
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for i := range r.s.posts {
		if r.s.posts[i].ID == id {
			update.Apply(&r.s.posts[i])
			return nil
		}
	}
	return repositories.NotFoundError("posts", id.Hex())
}

func (r *postRepository) InsertMany(ctx context.Context, posts []*models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range posts {
		if err := r.insertLocked(p); err != nil {
			return err
		}
	}
	return nil
}

package memory

import (
	"context"
	"sort"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/repositories"
)

type labelRepository struct {
	s *Store
}

func (r *labelRepository) List(ctx context.Context) ([]models.Label, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	labels := append([]models.Label{}, r.s.labels...)
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].No < labels[j].No })
	return labels, nil
}

func (r *labelRepository) InsertMany(ctx context.Context, labels []*models.Label) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, l := range labels {
		r.s.labels = append(r.s.labels, *l)
	}
	return nil
}

type userRepository struct {
	s *Store
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repositories.NotFoundError("users", "user")
}

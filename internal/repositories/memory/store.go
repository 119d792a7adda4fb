// Package memory is an in-process document store that evaluates planned
// queries the same way the MongoDB pipelines do. It backs the "memory"
// driver and the service and handler tests.
package memory

import (
	"context"
	"regexp"
	"sort"
	"sync"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
	"github.com/umanari145/blog-backend/internal/repositories"
)

// Store holds posts, labels and users behind one lock
type Store struct {
	mu     sync.RWMutex
	posts  []models.Post
	labels []models.Label
	users  []models.User
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Seed replaces the store contents
func (s *Store) Seed(posts []models.Post, labels []models.Label, users []models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		s.posts = append(s.posts, clonePost(p))
	}
	s.labels = append([]models.Label(nil), labels...)
	s.users = append([]models.User(nil), users...)
}

func (s *Store) Posts() repositories.PostRepository   { return &postRepository{s} }
func (s *Store) Labels() repositories.LabelRepository { return &labelRepository{s} }
func (s *Store) Menus() repositories.MenuRepository   { return &menuRepository{s} }
func (s *Store) Users() repositories.UserRepository   { return &userRepository{s} }

func (s *Store) Health(ctx context.Context) error { return ctx.Err() }
func (s *Store) Close(context.Context) error      { return nil }

var _ repositories.RepositoryManager = (*Store)(nil)

func clonePost(p models.Post) models.Post {
	p.Categories = cloneInts(p.Categories)
	p.Tags = cloneInts(p.Tags)
	return p
}

// cloneInts copies s; nil becomes an empty slice so it serialises as []
func cloneInts(s []int) []int {
	return append([]int{}, s...)
}

// taxonomyValues returns the label numbers a post carries for the field
func taxonomyValues(p *models.Post, field string) []int {
	switch field {
	case query.CategoryTaxonomy.Field:
		return p.Categories
	case query.TagTaxonomy.Field:
		return p.Tags
	}
	return nil
}

func fieldValue(p *models.Post, field string) string {
	switch field {
	case "post_date":
		return p.PostDate
	case "contents":
		return p.Contents
	case "title":
		return p.Title
	case "post_no":
		return p.PostNo
	}
	return ""
}

// joinLabels mirrors $lookup on labels.no
func (s *Store) joinLabels(nos []int) []models.Label {
	return lo.Filter(s.labels, func(l models.Label, _ int) bool {
		return lo.Contains(nos, l.No)
	})
}

// match evaluates the resolved criteria against the posts. Caller holds the lock.
func (s *Store) match(c query.Criteria) ([]models.Post, error) {
	switch {
	case c.Taxonomy != nil:
		t := *c.Taxonomy
		return lo.Filter(s.posts, func(p models.Post, _ int) bool {
			return lo.ContainsBy(s.joinLabels(taxonomyValues(&p, t.Field)), func(l models.Label) bool {
				return l.Name == c.Keyword && l.Type == t.Type
			})
		}), nil
	case c.Field != "":
		re, err := regexp.Compile("(?s)" + c.Pattern)
		if err != nil {
			return nil, repositories.ValidationError("posts", "", err)
		}
		return lo.Filter(s.posts, func(p models.Post, _ int) bool {
			return re.MatchString(fieldValue(&p, c.Field))
		}), nil
	default:
		return append([]models.Post(nil), s.posts...), nil
	}
}

func sortByDateDesc(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PostDate > posts[j].PostDate
	})
}

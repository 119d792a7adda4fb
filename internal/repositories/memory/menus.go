package memory

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
)

type menuRepository struct {
	s *Store
}

func (r *menuRepository) CountByTaxonomy(ctx context.Context, t query.Taxonomy) ([]models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type bucket struct {
		name  string
		count int64
	}
	buckets := map[int]*bucket{}
	for i := range r.s.posts {
		// one row per array element, as $unwind does
		for _, no := range taxonomyValues(&r.s.posts[i], t.Field) {
			for _, l := range r.s.joinLabels([]int{no}) {
				if l.Type != t.Type {
					continue
				}
				b, ok := buckets[l.No]
				if !ok {
					b = &bucket{name: l.Name}
					buckets[l.No] = b
				}
				b.count++
			}
		}
	}

	items := lo.MapToSlice(buckets, func(_ int, b *bucket) models.MenuItem {
		return models.MenuItem{Name: b.name, Count: b.count}
	})
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *menuRepository) CountByMonth(ctx context.Context) ([]models.MenuItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	groups := lo.GroupBy(r.s.posts, func(p models.Post) string {
		if len(p.PostDate) < 7 {
			return p.PostDate
		}
		return p.PostDate[:7]
	})
	items := lo.MapToSlice(groups, func(month string, posts []models.Post) models.MenuItem {
		return models.MenuItem{Name: month, Count: int64(len(posts))}
	})
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

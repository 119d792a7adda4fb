package mongodb

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
)

// MenuRepository aggregates navigation facets over the posts collection
type MenuRepository struct {
	baseRepository
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db *mongo.Database, logger *logrus.Logger) *MenuRepository {
	return &MenuRepository{baseRepository: newBaseRepository(db, PostsCollection, logger)}
}

// CountByTaxonomy counts posts per label of the taxonomy
func (r *MenuRepository) CountByTaxonomy(ctx context.Context, t query.Taxonomy) ([]models.MenuItem, error) {
	return r.aggregate(ctx, "menu_"+t.Field, query.TaxonomyMenuPipeline(t))
}

// CountByMonth counts posts per YYYY-MM
func (r *MenuRepository) CountByMonth(ctx context.Context) ([]models.MenuItem, error) {
	return r.aggregate(ctx, "menu_dates", query.MonthMenuPipeline())
}

func (r *MenuRepository) aggregate(ctx context.Context, op string, pipeline mongo.Pipeline) ([]models.MenuItem, error) {
	start := time.Now()
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logCall(op, pipeline, start, err)
		return nil, r.wrapError(op, "", err)
	}
	defer cursor.Close(ctx)

	items := []models.MenuItem{}
	err = cursor.All(ctx, &items)
	r.logCall(op, pipeline, start, err)
	if err != nil {
		return nil, r.wrapError(op, "", err)
	}
	return items, nil
}

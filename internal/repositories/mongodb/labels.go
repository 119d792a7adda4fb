package mongodb

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/umanari145/blog-backend/internal/models"
)

// LabelsCollection is the collection holding categories and tags
const LabelsCollection = "labels"

// LabelRepository implements repositories.LabelRepository for MongoDB
type LabelRepository struct {
	baseRepository
}

// NewLabelRepository creates a new label repository
func NewLabelRepository(db *mongo.Database, logger *logrus.Logger) *LabelRepository {
	return &LabelRepository{baseRepository: newBaseRepository(db, LabelsCollection, logger)}
}

// List returns every label ordered by number
func (r *LabelRepository) List(ctx context.Context) ([]models.Label, error) {
	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "no", Value: 1}}))
	if err != nil {
		r.logCall("find", nil, start, err)
		return nil, r.wrapError("list", "", err)
	}
	defer cursor.Close(ctx)

	labels := []models.Label{}
	err = cursor.All(ctx, &labels)
	r.logCall("find", nil, start, err)
	if err != nil {
		return nil, r.wrapError("list", "", err)
	}
	return labels, nil
}

// InsertMany bulk-inserts labels
func (r *LabelRepository) InsertMany(ctx context.Context, labels []*models.Label) error {
	if len(labels) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(labels))
	for _, l := range labels {
		docs = append(docs, l)
	}

	start := time.Now()
	_, err := r.collection.InsertMany(ctx, docs)
	r.logCall("insert_many", len(docs), start, err)
	return r.wrapError("insert_many", "", err)
}

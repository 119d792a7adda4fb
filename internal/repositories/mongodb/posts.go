package mongodb

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/umanari145/blog-backend/internal/models"
	"github.com/umanari145/blog-backend/internal/query"
	"github.com/umanari145/blog-backend/internal/repositories"
)

// PostsCollection is the collection holding blog posts
const PostsCollection = "posts"

// PostRepository implements repositories.PostRepository for MongoDB
type PostRepository struct {
	baseRepository
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *mongo.Database, logger *logrus.Logger) *PostRepository {
	return &PostRepository{baseRepository: newBaseRepository(db, PostsCollection, logger)}
}

// GetByPostNo retrieves a post by its post_no
func (r *PostRepository) GetByPostNo(ctx context.Context, postNo string) (*models.Post, error) {
	start := time.Now()
	filter := bson.D{{Key: "post_no", Value: postNo}}

	var post models.Post
	err := r.collection.FindOne(ctx, filter).Decode(&post)
	r.logCall("find_one", filter, start, err)
	if err != nil {
		return nil, r.wrapError("get", postNo, err)
	}
	return &post, nil
}

// Find runs the planned query and returns one page of posts
func (r *PostRepository) Find(ctx context.Context, d *query.Descriptor) ([]models.Post, error) {
	start := time.Now()

	var (
		cursor *mongo.Cursor
		err    error
		op     string
		args   interface{}
	)
	if d.UsesPipeline() {
		op, args = "aggregate", d.PagePipeline()
		cursor, err = r.collection.Aggregate(ctx, args)
	} else {
		op, args = "find", d.Filter
		cursor, err = r.collection.Find(ctx, d.Filter, d.FindOptions())
	}
	if err != nil {
		r.logCall(op, args, start, err)
		return nil, r.wrapError(op, "", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	err = cursor.All(ctx, &posts)
	r.logCall(op, args, start, err)
	if err != nil {
		return nil, r.wrapError(op, "", err)
	}
	return posts, nil
}

// Count returns the number of posts the planned query matches, without paging
func (r *PostRepository) Count(ctx context.Context, d *query.Descriptor) (int64, error) {
	start := time.Now()

	if !d.UsesPipeline() {
		count, err := r.collection.CountDocuments(ctx, d.Filter)
		r.logCall("count_documents", d.Filter, start, err)
		if err != nil {
			return 0, r.wrapError("count", "", err)
		}
		return count, nil
	}

	pipeline := d.CountPipeline()
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		r.logCall("aggregate_count", pipeline, start, err)
		return 0, r.wrapError("count", "", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total int64 `bson:"total_items_count"`
	}
	err = cursor.All(ctx, &rows)
	r.logCall("aggregate_count", pipeline, start, err)
	if err != nil {
		return 0, r.wrapError("count", "", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}

// Create inserts a post and returns its generated id as hex
func (r *PostRepository) Create(ctx context.Context, post *models.Post) (string, error) {
	start := time.Now()
	result, err := r.collection.InsertOne(ctx, post)
	r.logCall("insert_one", post.PostNo, start, err)
	if err != nil {
		return "", r.wrapError("create", post.PostNo, err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", repositories.NewRepositoryError("create", r.name(), post.PostNo,
			pkgerrors.Errorf("unexpected inserted id type %T", result.InsertedID))
	}
	post.ID = id
	return id.Hex(), nil
}

// UpdateFields sets the supplied fields on the post with the given _id
func (r *PostRepository) UpdateFields(ctx context.Context, id primitive.ObjectID, update *models.PostUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	start := time.Now()
	filter := bson.D{{Key: "_id", Value: id}}
	result, err := r.collection.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: update}})
	r.logCall("update_one", filter, start, err)
	if err != nil {
		return r.wrapError("update", id.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return repositories.NotFoundError(r.name(), id.Hex())
	}
	return nil
}

// InsertMany bulk-inserts posts
func (r *PostRepository) InsertMany(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(posts))
	for _, p := range posts {
		docs = append(docs, p)
	}

	start := time.Now()
	_, err := r.collection.InsertMany(ctx, docs)
	r.logCall("insert_many", len(docs), start, err)
	return r.wrapError("insert_many", "", err)
}

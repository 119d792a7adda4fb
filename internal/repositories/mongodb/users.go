package mongodb

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/umanari145/blog-backend/internal/models"
)

// UsersCollection is the collection holding login credentials
const UsersCollection = "users"

// UserRepository implements repositories.UserRepository for MongoDB
type UserRepository struct {
	baseRepository
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *mongo.Database, logger *logrus.Logger) *UserRepository {
	return &UserRepository{baseRepository: newBaseRepository(db, UsersCollection, logger)}
}

// GetByEmail retrieves a user by email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	start := time.Now()

	var user models.User
	err := r.collection.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	// the address is not logged
	r.logCall("find_one", nil, start, err)
	if err != nil {
		return nil, r.wrapError("get", "user", err)
	}
	return &user, nil
}

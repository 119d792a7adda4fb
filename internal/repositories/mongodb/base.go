// Package mongodb implements the repositories on top of the official MongoDB driver.
package mongodb

import (
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/umanari145/blog-backend/internal/observability"
	"github.com/umanari145/blog-backend/internal/repositories"
)

// baseRepository provides common functionality for all collection repositories
type baseRepository struct {
	collection *mongo.Collection
	logger     *logrus.Logger
}

func newBaseRepository(db *mongo.Database, name string, logger *logrus.Logger) baseRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return baseRepository{
		collection: db.Collection(name),
		logger:     logger,
	}
}

func (r *baseRepository) name() string {
	return r.collection.Name()
}

// isStoreFailure reports whether err means the store call itself failed.
// A lookup that matched nothing is a normal outcome.
func isStoreFailure(err error) bool {
	return err != nil && !errors.Is(err, mongo.ErrNoDocuments)
}

// logCall logs a store call with its execution time and records its latency
func (r *baseRepository) logCall(operation string, args interface{}, start time.Time, err error) {
	duration := time.Since(start)
	if !isStoreFailure(err) {
		err = nil
	}
	observability.ObserveStore(r.name(), operation, start, err)

	fields := logrus.Fields{
		"operation":  operation,
		"collection": r.name(),
		"args":       args,
		"duration":   duration,
	}

	if err != nil {
		fields["error"] = err.Error()
		r.logger.WithFields(fields).Error("Store call failed")
	} else {
		r.logger.WithFields(fields).Debug("Store call executed")
	}
}

// wrapError maps driver errors onto the repository error taxonomy. Driver
// errors get a stack trace attached so the handlers can report it.
func (r *baseRepository) wrapError(op, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repositories.NotFoundError(r.name(), id)
	case mongo.IsDuplicateKeyError(err):
		return repositories.DuplicateError(r.name(), "key", id)
	case mongo.IsTimeout(err):
		return repositories.NewRepositoryError(op, r.name(), id,
			pkgerrors.Wrap(repositories.ErrTimeout, err.Error()))
	case mongo.IsNetworkError(err):
		return repositories.NewRepositoryError(op, r.name(), id,
			pkgerrors.Wrap(repositories.ErrConnection, err.Error()))
	default:
		return repositories.NewRepositoryError(op, r.name(), id, pkgerrors.WithStack(err))
	}
}

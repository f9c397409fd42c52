package repository

import (
	"alcyxob/exercise-tracker/internal/domain"
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound = RepositoryError("not found")
)

// RepositoryError helps distinguish repository errors from driver errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ValidationError signals a document that violates the schema invariants
// (empty username, missing description). Callers map it to HTTP 400, as
// opposed to ErrNotFound which maps to 404.
type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user aggregates.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	// AppendExercise pushes one entry onto the user's log as a single atomic
	// document mutation and returns the updated user.
	AppendExercise(ctx context.Context, id primitive.ObjectID, exercise domain.Exercise) (*domain.User, error)
}

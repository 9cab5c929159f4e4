package repository

import (
	"alcyxob/exercise-discovery/internal/domain" // Import our defined domain models
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDuplicate    = RepositoryError("duplicate key")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ExerciseFilter narrows library listings. Zero values mean "any".
type ExerciseFilter struct {
	Category   domain.Category
	Difficulty domain.Difficulty
	Search     string // matched against name (case-insensitive)
	Approved   *bool
	Limit      int64
	Skip       int64
}

// ExerciseRepository defines the interface for interacting with the exercise library.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	GetBySearchID(ctx context.Context, searchID string) (*domain.Exercise, error)
	List(ctx context.Context, filter ExerciseFilter) ([]domain.Exercise, error)
	MarkApproved(ctx context.Context, id primitive.ObjectID, reviewer string) error
	UpdateVideoURL(ctx context.Context, id primitive.ObjectID, videoURL string) error
}

// SessionRepository stores discovery session snapshots, keyed by session ID.
type SessionRepository interface {
	Save(ctx context.Context, session domain.Session) error // upsert
	GetByID(ctx context.Context, sessionID string) (*domain.Session, error)
	ListRecent(ctx context.Context, limit int64) ([]domain.Session, error)
}

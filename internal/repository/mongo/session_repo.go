package mongo

import (
	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	sessionCollectionName = "discovery_sessions"
	defaultRecentSessions = 20
)

// mongoSessionRepository implements repository.SessionRepository
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a session snapshot repository backed by MongoDB.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Save replaces the stored snapshot for the session, inserting it on first save.
func (r *mongoSessionRepository) Save(ctx context.Context, session domain.Session) error {
	if session.SessionID == "" {
		return errors.New("session ID is required")
	}
	filter := bson.M{"_id": session.SessionID}
	_, err := r.collection.ReplaceOne(ctx, filter, session, options.Replace().SetUpsert(true))
	return err
}

// GetByID retrieves a session snapshot.
func (r *mongoSessionRepository) GetByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	var session domain.Session
	err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// ListRecent returns the newest sessions first.
func (r *mongoSessionRepository) ListRecent(ctx context.Context, limit int64) ([]domain.Session, error) {
	if limit <= 0 {
		limit = defaultRecentSessions
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "startedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	sessions := []domain.Session{}
	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// EnsureSessionIndexes creates necessary indexes for the sessions collection.
func EnsureSessionIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "startedAt", Value: -1}},
		Options: options.Index(),
	})
	return err
}

// EnsureIndexes creates the indexes of every collection this service owns.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := EnsureExerciseIndexes(ctx, db.Collection(exerciseCollectionName)); err != nil {
		return err
	}
	return EnsureSessionIndexes(ctx, db.Collection(sessionCollectionName))
}

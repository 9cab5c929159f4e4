package mongo

import (
	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/repository"
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	exerciseCollectionName = "exercises"
	defaultListLimit       = 100
)

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new exercise into the library.
// Discovery records are unique per searchId, so approving the same candidate twice fails.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if strings.TrimSpace(exercise.Name) == "" {
		return primitive.NilObjectID, errors.New("exercise name is required")
	}

	exercise.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetBySearchID finds the library record created from a discovery candidate.
func (r *mongoExerciseRepository) GetBySearchID(ctx context.Context, searchID string) (*domain.Exercise, error) {
	return r.findOne(ctx, bson.M{"searchId": searchID})
}

func (r *mongoExerciseRepository) findOne(ctx context.Context, filter bson.M) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// List returns library exercises matching the filter, best quality first.
func (r *mongoExerciseRepository) List(ctx context.Context, f repository.ExerciseFilter) ([]domain.Exercise, error) {
	filter := exerciseListFilter(f)

	limit := f.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "qualityScore", Value: -1}, {Key: "name", Value: 1}}).
		SetLimit(limit).
		SetSkip(f.Skip)

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.Exercise{}
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

func exerciseListFilter(f repository.ExerciseFilter) bson.M {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Difficulty != "" {
		filter["difficulty"] = f.Difficulty
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
	}
	if f.Approved != nil {
		filter["approved"] = *f.Approved
	}
	return filter
}

// MarkApproved records who approved the exercise and when.
func (r *mongoExerciseRepository) MarkApproved(ctx context.Context, id primitive.ObjectID, reviewer string) error {
	now := time.Now().UTC()
	return r.set(ctx, id, bson.M{
		"approved":   true,
		"approvedBy": reviewer,
		"approvedAt": now,
		"updatedAt":  now,
	})
}

// UpdateVideoURL attaches a demonstration video to the exercise.
func (r *mongoExerciseRepository) UpdateVideoURL(ctx context.Context, id primitive.ObjectID, videoURL string) error {
	return r.set(ctx, id, bson.M{
		"videoUrl":  videoURL,
		"updatedAt": time.Now().UTC(),
	})
}

func (r *mongoExerciseRepository) set(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	if id == primitive.NilObjectID {
		return errors.New("exercise ID is required for update")
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// One library record per discovery candidate; hand-made records have no searchId.
			Keys: bson.D{{Key: "searchId", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"searchId": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "qualityScore", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}

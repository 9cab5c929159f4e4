package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/logger"
	"alcyxob/exercise-discovery/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound  = errors.New("exercise not found")
	ErrInvalidExerciseID = errors.New("invalid exercise ID")
	ErrValidationFailed  = errors.New("exercise validation failed")
	ErrNoVideoFound      = errors.New("no video found for exercise")
)

// VideoFinder is satisfied by *video.Service.
type VideoFinder interface {
	Search(ctx context.Context, query string, maxResults int) []domain.Video
}

// --- Service Interface ---
type ExerciseService interface {
	ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error)
	AttachVideo(ctx context.Context, exerciseID, query string) (*domain.Exercise, []domain.Video, error)

	// Used by the discovery orchestrator when a reviewer approves a candidate.
	CreateFromCandidate(ctx context.Context, sessionID string, c domain.Candidate) (*domain.Exercise, error)
	MarkApproved(ctx context.Context, exerciseID, reviewer string) (*domain.Exercise, error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	videos       VideoFinder
	log          *logger.Logger
}

// NewExerciseService creates a new instance of exerciseService. videos may be nil,
// which disables AttachVideo.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, videos VideoFinder, log *logger.Logger) ExerciseService {
	if log == nil {
		log = logger.NewNop()
	}
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		videos:       videos,
		log:          log,
	}
}

func parseExerciseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidExerciseID
	}
	return oid, nil
}

// ListExercises retrieves library records matching filter.
func (s *exerciseService) ListExercises(ctx context.Context, filter repository.ExerciseFilter) ([]domain.Exercise, error) {
	if filter.Category != "" && !filter.Category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidationFailed, filter.Category)
	}
	if filter.Difficulty != "" && !filter.Difficulty.IsValid() {
		return nil, fmt.Errorf("%w: unknown difficulty %q", ErrValidationFailed, filter.Difficulty)
	}
	return s.exerciseRepo.List(ctx, filter)
}

// GetExerciseByID retrieves a single exercise.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID string) (*domain.Exercise, error) {
	oid, err := parseExerciseID(exerciseID)
	if err != nil {
		return nil, err
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err // Propagate other repository errors
	}
	return exercise, nil
}

// AttachVideo searches for a demonstration video and stores the best match on the exercise.
// An empty query searches by the exercise name.
func (s *exerciseService) AttachVideo(ctx context.Context, exerciseID, query string) (*domain.Exercise, []domain.Video, error) {
	if s.videos == nil {
		return nil, nil, ErrNoVideoFound
	}
	exercise, err := s.GetExerciseByID(ctx, exerciseID)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(query) == "" {
		query = exercise.Name
	}

	found := s.videos.Search(ctx, query, 0)
	if len(found) == 0 {
		return nil, nil, ErrNoVideoFound
	}
	if err := s.exerciseRepo.UpdateVideoURL(ctx, exercise.ID, found[0].URL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrExerciseNotFound
		}
		return nil, nil, err
	}
	exercise.VideoURL = found[0].URL
	s.log.Info("video attached to exercise", "exercise_id", exerciseID, "video_id", found[0].VideoID, "fallback", found[0].Fallback)
	return exercise, found, nil
}

// CreateFromCandidate stores a reviewed candidate in the library. A candidate
// that was already stored (same searchId) returns the existing record.
func (s *exerciseService) CreateFromCandidate(ctx context.Context, sessionID string, c domain.Candidate) (*domain.Exercise, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	exercise := domain.ExerciseFromCandidate(sessionID, c)
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) && c.SearchID != "" {
			return s.exerciseRepo.GetBySearchID(ctx, c.SearchID)
		}
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// MarkApproved records the reviewer's approval and returns the updated record.
func (s *exerciseService) MarkApproved(ctx context.Context, exerciseID, reviewer string) (*domain.Exercise, error) {
	oid, err := parseExerciseID(exerciseID)
	if err != nil {
		return nil, err
	}
	if err := s.exerciseRepo.MarkApproved(ctx, oid, reviewer); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return s.GetExerciseByID(ctx, exerciseID)
}

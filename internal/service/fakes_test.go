package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/repository"
)

type memExerciseRepo struct {
	mu        sync.Mutex
	byID      map[primitive.ObjectID]*domain.Exercise
	createErr error
}

func newMemExerciseRepo() *memExerciseRepo {
	return &memExerciseRepo{byID: map[primitive.ObjectID]*domain.Exercise{}}
}

func (m *memExerciseRepo) Create(_ context.Context, e *domain.Exercise) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return primitive.NilObjectID, m.createErr
	}
	if e.SearchID != "" {
		for _, existing := range m.byID {
			if existing.SearchID == e.SearchID {
				return primitive.NilObjectID, repository.ErrDuplicate
			}
		}
	}
	e.ID = primitive.NewObjectID()
	cp := *e
	m.byID[e.ID] = &cp
	return e.ID, nil
}

func (m *memExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *memExerciseRepo) GetBySearchID(_ context.Context, searchID string) (*domain.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.byID {
		if e.SearchID == searchID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memExerciseRepo) List(_ context.Context, f repository.ExerciseFilter) ([]domain.Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Exercise{}
	for _, e := range m.byID {
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (m *memExerciseRepo) MarkApproved(_ context.Context, id primitive.ObjectID, reviewer string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	e.Approved = true
	e.ApprovedBy = reviewer
	e.ApprovedAt = &now
	return nil
}

func (m *memExerciseRepo) UpdateVideoURL(_ context.Context, id primitive.ObjectID, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.VideoURL = url
	return nil
}

type memSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{sessions: map[string]domain.Session{}}
}

func (m *memSessionRepo) Save(_ context.Context, s domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SessionID] = s.Clone()
	return nil
}

func (m *memSessionRepo) GetByID(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := s.Clone()
	return &cp, nil
}

func (m *memSessionRepo) ListRecent(_ context.Context, limit int64) ([]domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Session{}
	for _, s := range m.sessions {
		out = append(out, s.Clone())
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

type memReportStore struct {
	objects map[string][]byte
	types   map[string]string
	expires time.Duration
}

func newMemReportStore() *memReportStore {
	return &memReportStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memReportStore) PutObject(_ context.Context, key, contentType string, body []byte) error {
	m.objects[key] = body
	m.types[key] = contentType
	return nil
}

func (m *memReportStore) GeneratePresignedDownloadURL(_ context.Context, key string, expires time.Duration) (string, error) {
	m.expires = expires
	return "https://storage.example/" + key + "?signed", nil
}

type fakeVideos struct {
	videos []domain.Video
	query  string
}

func (f *fakeVideos) Search(_ context.Context, query string, _ int) []domain.Video {
	f.query = query
	return f.videos
}

func validCandidate(searchID string) domain.Candidate {
	return domain.Candidate{
		Name:               "Goblet Squat",
		Description:        "Front-loaded squat holding a dumbbell at the chest.",
		Category:           domain.CategoryStrength,
		PrimaryMuscleGroup: "Quadriceps",
		Equipment:          "Dumbbell",
		Difficulty:         domain.DifficultyBeginner,
		Instructions:       []string{"Hold the dumbbell", "Squat down", "Stand up"},
		QualityScore:       82,
		SearchID:           searchID,
		DiscoveryMethod:    domain.MethodAIDiscovery,
		OriginalSearchTerm: "squat",
	}
}

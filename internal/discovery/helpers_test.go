package discovery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"alcyxob/exercise-discovery/internal/ai"
	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/taxonomy"
)

func testTaxonomy(t *testing.T) *taxonomy.Taxonomy {
	t.Helper()
	tax, err := taxonomy.New([]taxonomy.Family{
		{
			ID:                 "squat",
			Name:               "Squat",
			BaseExercise:       "Barbell Back Squat",
			Description:        "Bilateral knee-dominant lower body lift.",
			PrimaryMuscleGroup: "Legs",
			Category:           domain.CategoryStrength,
			Equipment:          "Barbell",
			Variations:         []string{"Front Squat"},
			SearchTerms:        []string{"squat", "squat variations"},
			SportRelevance:     map[string]int{"football": 9, "tennis": 3},
		},
		{
			ID:                 "bench",
			Name:               "Bench Press",
			BaseExercise:       "Barbell Bench Press",
			Description:        "Horizontal press.",
			PrimaryMuscleGroup: "Chest",
			Category:           domain.CategoryStrength,
			Equipment:          "Barbell",
			SearchTerms:        []string{"bench press"},
			SportRelevance:     map[string]int{"football": 8},
		},
	}, map[string][]string{
		"tennis": {"court sprint work"},
	})
	require.NoError(t, err)
	return tax
}

type fakeProvider struct {
	mu      sync.Mutex
	replies []string
	errs    []error
	calls   int
	lastReq ai.Request
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Complete(_ context.Context, req ai.Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.calls
	p.calls++
	p.lastReq = req
	if i < len(p.errs) && p.errs[i] != nil {
		return "", p.errs[i]
	}
	if len(p.replies) == 0 {
		return "", errors.New("no reply scripted")
	}
	if i >= len(p.replies) {
		i = len(p.replies) - 1
	}
	return p.replies[i], nil
}

func (p *fakeProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type statusErr int

func (e statusErr) Error() string       { return "http error" }
func (e statusErr) HTTPStatusCode() int { return int(e) }

type fakeStore struct {
	mu     sync.Mutex
	saves  []domain.Session
	failAt int // 1-based save index that fails; 0 never fails
}

func (s *fakeStore) Save(_ context.Context, sess domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, sess)
	if s.failAt > 0 && len(s.saves) == s.failAt {
		return errors.New("mongo unavailable")
	}
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

type fakeLibrary struct {
	mu       sync.Mutex
	created  []*domain.Exercise
	approved map[string]string
	failWith error
}

func (l *fakeLibrary) CreateFromCandidate(_ context.Context, sessionID string, c domain.Candidate) (*domain.Exercise, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failWith != nil {
		return nil, l.failWith
	}
	ex := domain.ExerciseFromCandidate(sessionID, c)
	ex.ID = primitive.NewObjectID()
	l.created = append(l.created, ex)
	return ex, nil
}

func (l *fakeLibrary) MarkApproved(_ context.Context, id, reviewer string) (*domain.Exercise, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.approved == nil {
		l.approved = map[string]string{}
	}
	l.approved[id] = reviewer
	for _, ex := range l.created {
		if ex.ID.Hex() == id {
			ex.Approved = true
			ex.ApprovedBy = reviewer
			return ex, nil
		}
	}
	return nil, errors.New("not found")
}

// blockingEnricher parks every call until release is closed.
type blockingEnricher struct {
	started chan string
	release chan struct{}
}

func newBlockingEnricher() *blockingEnricher {
	return &blockingEnricher{started: make(chan string, 16), release: make(chan struct{})}
}

func (b *blockingEnricher) DiscoverExercisesForTerm(_ context.Context, term string, _ int, _ FilterContext) TermResult {
	b.started <- term
	<-b.release
	c := domain.Candidate{
		Name:               titleCase(term) + " Foundation",
		Category:           domain.CategoryStrength,
		PrimaryMuscleGroup: "Full Body",
		DiscoveryMethod:    domain.MethodTaxonomyFallback,
		OriginalSearchTerm: term,
		SearchID:           term + "-id",
	}
	return TermResult{Term: term, Candidates: []domain.Candidate{c}, Method: domain.MethodTaxonomyFallback}
}

// gatedStore parks saves matched by gate until release is closed, then
// returns err for them. Other saves succeed at once.
type gatedStore struct {
	gate    func(domain.Session) bool
	err     error
	entered chan domain.Session
	release chan struct{}
}

func newGatedStore(gate func(domain.Session) bool, err error) *gatedStore {
	return &gatedStore{gate: gate, err: err, entered: make(chan domain.Session, 4), release: make(chan struct{})}
}

func (s *gatedStore) Save(_ context.Context, sess domain.Session) error {
	if !s.gate(sess) {
		return nil
	}
	s.entered <- sess
	<-s.release
	return s.err
}

// recordingEnricher notes when each term was requested.
type recordingEnricher struct {
	mu    sync.Mutex
	calls []time.Time
}

func (e *recordingEnricher) DiscoverExercisesForTerm(_ context.Context, term string, _ int, _ FilterContext) TermResult {
	e.mu.Lock()
	e.calls = append(e.calls, time.Now())
	e.mu.Unlock()
	return TermResult{Term: term}
}

func (e *recordingEnricher) gaps() []time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []time.Duration
	for i := 1; i < len(e.calls); i++ {
		out = append(out, e.calls[i].Sub(e.calls[i-1]))
	}
	return out
}

package discovery

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/logger"
	"alcyxob/exercise-discovery/internal/taxonomy"
)

var (
	ErrSessionRunning       = errors.New("a discovery session is already running")
	ErrSessionNotFound      = errors.New("discovery session not found")
	ErrSessionNotRunning    = errors.New("discovery session is not running")
	ErrSessionNotReviewable = errors.New("discovery session is still running")
	ErrCandidateNotFound    = errors.New("candidate not found in session")
	ErrAlreadyReviewed      = errors.New("candidate has already been reviewed")
	ErrInvalidSessionConfig = errors.New("invalid session config")
)

const (
	maxRetainedRuns = 20
	// Time budgeted for one provider call when estimating a run.
	estimatedCallTime = 2 * time.Second
)

// TermEnricher is satisfied by *Enricher.
type TermEnricher interface {
	DiscoverExercisesForTerm(ctx context.Context, term string, maxExercises int, fctx FilterContext) TermResult
}

// SessionStore persists session snapshots.
type SessionStore interface {
	Save(ctx context.Context, s domain.Session) error
}

// LibraryWriter receives approved candidates.
type LibraryWriter interface {
	CreateFromCandidate(ctx context.Context, sessionID string, c domain.Candidate) (*domain.Exercise, error)
	MarkApproved(ctx context.Context, exerciseID, reviewer string) (*domain.Exercise, error)
}

type OrchestratorConfig struct {
	InterCallDelay      time.Duration
	TestModeMaxTerms    int
	ReviewGrace         time.Duration
	QualityThreshold    int
	ImportantRelevance  int
	MaxExercisesPerTerm int
	BatchSize           int
}

func (c OrchestratorConfig) withDefaults() OrchestratorConfig {
	if c.TestModeMaxTerms <= 0 {
		c.TestModeMaxTerms = 10
	}
	if c.QualityThreshold <= 0 {
		c.QualityThreshold = DefaultQualityThreshold
	}
	if c.ImportantRelevance <= 0 {
		c.ImportantRelevance = DefaultImportantRelevance
	}
	if c.MaxExercisesPerTerm <= 0 {
		c.MaxExercisesPerTerm = 3
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	return c
}

type reviewEntry struct {
	candidate  domain.Candidate
	state      domain.ReviewState
	exerciseID string
}

type run struct {
	session         domain.Session
	terms           []string
	fctx            FilterContext
	raw             []domain.Candidate
	items           []*reviewEntry
	cancelRequested bool
	done            chan struct{}
}

// Orchestrator drives discovery sessions, one at a time, and holds their
// review state. All exported methods are safe for concurrent use.
type Orchestrator struct {
	enricher TermEnricher
	tax      *taxonomy.Taxonomy
	store    SessionStore
	library  LibraryWriter
	cfg      OrchestratorConfig
	log      *logger.Logger

	mu     sync.Mutex
	runs   map[string]*run
	active string

	newID     func() string
	now       func() time.Time
	afterFunc func(time.Duration, func())
}

// NewOrchestrator wires an orchestrator. store may be nil for in-memory runs.
func NewOrchestrator(enricher TermEnricher, tax *taxonomy.Taxonomy, store SessionStore, library LibraryWriter, cfg OrchestratorConfig, log *logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Orchestrator{
		enricher: enricher,
		tax:      tax,
		store:    store,
		library:  library,
		cfg:      cfg.withDefaults(),
		log:      log,
		runs:     make(map[string]*run),
		newID:    uuid.NewString,
		now:      time.Now,
		afterFunc: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
	}
}

// TermOptionsFor maps a session config onto term generator options.
func (o *Orchestrator) TermOptionsFor(cfg domain.SessionConfig) TermOptions {
	return TermOptions{
		SportFilter:            cfg.SportFilter,
		FitnessComponentFilter: cfg.FitnessComponentFilter,
		PurposeFilter:          cfg.PurposeFilter,
		MaxTerms:               cfg.MaxTerms,
		IncludeVariations:      cfg.IncludeVariations,
		PriorityOnly:           cfg.PriorityOnly,
		ImportantThreshold:     o.cfg.ImportantRelevance,
	}
}

// PreviewTerms returns the terms a session with cfg would process.
func (o *Orchestrator) PreviewTerms(cfg domain.SessionConfig) []string {
	terms := GenerateSearchTerms(o.tax, o.TermOptionsFor(cfg))
	if cfg.TestMode && len(terms) > o.cfg.TestModeMaxTerms {
		terms = terms[:o.cfg.TestModeMaxTerms]
	}
	return terms
}

func (o *Orchestrator) normalize(cfg domain.SessionConfig) (domain.SessionConfig, error) {
	if cfg.SessionType == "" {
		cfg.SessionType = "standard"
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = o.cfg.BatchSize
	}
	if cfg.MaxExercisesPerTerm <= 0 {
		cfg.MaxExercisesPerTerm = o.cfg.MaxExercisesPerTerm
	}
	if cfg.QualityThreshold <= 0 {
		cfg.QualityThreshold = o.cfg.QualityThreshold
	}
	if cfg.QualityThreshold > 100 {
		return cfg, fmt.Errorf("%w: qualityThreshold must be at most 100", ErrInvalidSessionConfig)
	}
	if cfg.MaxTerms < 0 {
		return cfg, fmt.Errorf("%w: maxTerms must not be negative", ErrInvalidSessionConfig)
	}
	switch cfg.Scoring {
	case "":
		cfg.Scoring = domain.ScoringEnhanced
	case domain.ScoringEnhanced, domain.ScoringLegacy:
	default:
		return cfg, fmt.Errorf("%w: unknown scoring mode %q", ErrInvalidSessionConfig, cfg.Scoring)
	}
	return cfg, nil
}

// Start begins a new session and returns its first snapshot. It fails with
// ErrSessionRunning, leaving the running session untouched, if one is active.
func (o *Orchestrator) Start(ctx context.Context, cfg domain.SessionConfig) (domain.Session, error) {
	cfg, err := o.normalize(cfg)
	if err != nil {
		return domain.Session{}, err
	}

	o.mu.Lock()
	if o.active != "" {
		o.mu.Unlock()
		return domain.Session{}, ErrSessionRunning
	}

	terms := o.PreviewTerms(cfg)
	r := &run{
		session: domain.Session{
			SessionID: o.newID(),
			Config:    cfg,
			Status:    domain.SessionRunning,
			Progress: domain.SessionProgress{
				TotalTerms:   len(terms),
				TotalBatches: (len(terms) + cfg.BatchSize - 1) / cfg.BatchSize,
			},
			Errors:    []domain.SessionError{},
			StartedAt: o.now().UTC(),
		},
		terms: terms,
		fctx: FilterContext{
			Sport:            cfg.SportFilter,
			FitnessComponent: cfg.FitnessComponentFilter,
			Purpose:          cfg.PurposeFilter,
		},
		done: make(chan struct{}),
	}
	snap := r.session.Clone()
	// Reserve the slot so the store round trip happens outside the lock.
	o.active = snap.SessionID
	o.mu.Unlock()

	if o.store != nil {
		if err := o.store.Save(ctx, snap); err != nil {
			o.mu.Lock()
			if o.active == snap.SessionID {
				o.active = ""
			}
			o.mu.Unlock()
			return domain.Session{}, fmt.Errorf("persisting new session: %w", err)
		}
	}

	o.mu.Lock()
	o.evictLocked()
	o.runs[snap.SessionID] = r
	o.mu.Unlock()
	o.log.Info("discovery session started", "session_id", snap.SessionID, "terms", len(terms), "test_mode", cfg.TestMode)

	go o.drive(r)
	return snap, nil
}

// evictLocked drops the oldest finished runs once the retention limit is reached.
func (o *Orchestrator) evictLocked() {
	if len(o.runs) < maxRetainedRuns {
		return
	}
	var finished []*run
	for _, r := range o.runs {
		if r.session.Status.IsTerminal() {
			finished = append(finished, r)
		}
	}
	sort.Slice(finished, func(i, j int) bool {
		return finished[i].session.StartedAt.Before(finished[j].session.StartedAt)
	})
	for _, r := range finished {
		if len(o.runs) < maxRetainedRuns {
			return
		}
		delete(o.runs, r.session.SessionID)
	}
}

func (o *Orchestrator) drive(r *run) {
	ctx := context.Background()
	cfg := r.session.Config

	var limiter *rate.Limiter
	if !cfg.TestMode && o.cfg.InterCallDelay > 0 {
		limiter = rate.NewLimiter(rate.Every(o.cfg.InterCallDelay), 1)
	}

	for i, term := range r.terms {
		o.mu.Lock()
		stop := r.cancelRequested
		o.mu.Unlock()
		if stop {
			break
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				o.fail(r, fmt.Errorf("rate limiter: %w", err))
				return
			}
		}

		res := o.enricher.DiscoverExercisesForTerm(ctx, term, cfg.MaxExercisesPerTerm, r.fctx)

		o.mu.Lock()
		r.raw = append(r.raw, res.Candidates...)
		if res.Err != nil && !errors.Is(res.Err, ErrNoCredential) {
			r.session.Errors = append(r.session.Errors, domain.SessionError{
				Term:      term,
				Error:     res.Err.Error(),
				Timestamp: o.now().UTC(),
			})
		}
		r.session.Progress.TermsProcessed = i + 1
		r.session.Progress.ExercisesFound = len(r.raw)
		r.session.Progress.CurrentBatch = i/cfg.BatchSize + 1
		snap := r.session.Clone()
		o.mu.Unlock()

		if err := o.save(snap); err != nil {
			o.fail(r, fmt.Errorf("persisting progress: %w", err))
			return
		}
	}
	o.finish(r)
}

func (o *Orchestrator) save(s domain.Session) error {
	if o.store == nil {
		return nil
	}
	return o.store.Save(context.Background(), s)
}

// finish scores, deduplicates and gates everything accumulated so far. The
// terminal status becomes visible only once the final snapshot is stored.
func (o *Orchestrator) finish(r *run) {
	o.mu.Lock()
	cfg := r.session.Config
	scorer := Scorer{Mode: cfg.Scoring}

	scored := make([]domain.Candidate, len(r.raw))
	for i, c := range r.raw {
		c = c.Clone()
		c.QualityScore = scorer.Score(c, r.fctx)
		scored[i] = c
	}
	deduped, removed := Deduplicate(scored)
	kept, dropped := ApplyQualityGate(deduped, cfg.QualityThreshold)

	items := make([]*reviewEntry, len(kept))
	for i, c := range kept {
		items[i] = &reviewEntry{candidate: c, state: domain.ReviewPending}
	}

	completed := o.now().UTC()
	snap := r.session.Clone()
	snap.Results = buildResults(kept, len(r.raw), removed, dropped, completed.Sub(r.session.StartedAt))
	if r.cancelRequested {
		snap.Status = domain.SessionCancelled
	} else {
		snap.Status = domain.SessionCompleted
	}
	snap.CompletedAt = &completed
	o.mu.Unlock()

	if err := o.save(snap); err != nil {
		o.fail(r, fmt.Errorf("persisting results: %w", err))
		return
	}

	o.mu.Lock()
	r.session = snap.Clone()
	r.items = items
	o.mu.Unlock()

	o.log.Info("discovery session finished",
		"session_id", snap.SessionID,
		"status", snap.Status,
		"raw", snap.Results.RawExercises,
		"kept", snap.Results.TotalExercises,
		"duplicates", snap.Results.DuplicatesRemoved,
		"below_threshold", snap.Results.BelowThreshold,
	)
	o.release(r)
}

// fail moves a running session to failed. A session that already reached a
// terminal status keeps it and only records err.
func (o *Orchestrator) fail(r *run, err error) {
	o.mu.Lock()
	now := o.now().UTC()
	if !r.session.Status.IsTerminal() {
		r.session.Status = domain.SessionFailed
		r.session.CompletedAt = &now
	}
	r.session.Errors = append(r.session.Errors, domain.SessionError{Error: err.Error(), Timestamp: now})
	id := r.session.SessionID
	o.mu.Unlock()

	o.log.Error("discovery session failed", "session_id", id, "error", err)
	o.release(r)
}

func (o *Orchestrator) release(r *run) {
	o.mu.Lock()
	if o.active == r.session.SessionID {
		o.active = ""
	}
	o.mu.Unlock()
	close(r.done)
}

func buildResults(kept []domain.Candidate, raw, removed, dropped int, elapsed time.Duration) *domain.SessionResults {
	res := &domain.SessionResults{
		TotalExercises:    len(kept),
		RawExercises:      raw,
		DuplicatesRemoved: removed,
		BelowThreshold:    dropped,
		DurationMs:        elapsed.Milliseconds(),
		ByCategory:        map[string]int{},
		ByMethod:          map[string]int{},
	}
	total := 0
	for _, c := range kept {
		total += c.QualityScore
		res.ByCategory[string(c.Category)]++
		res.ByMethod[string(c.DiscoveryMethod)]++
	}
	if len(kept) > 0 {
		res.AverageQuality = math.Round(float64(total)/float64(len(kept))*100) / 100
	}
	return res
}

// Status returns a copy of the session. Reading never changes it.
func (o *Orchestrator) Status(sessionID string) (domain.Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	r, ok := o.runs[sessionID]
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}
	return r.session.Clone(), nil
}

// Active returns the running session's ID, or "".
func (o *Orchestrator) Active() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// Cancel asks a running session to stop before its next term.
func (o *Orchestrator) Cancel(sessionID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	r, ok := o.runs[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	if r.session.Status != domain.SessionRunning {
		return ErrSessionNotRunning
	}
	r.cancelRequested = true
	o.log.Info("discovery session cancel requested", "session_id", sessionID)
	return nil
}

// Wait blocks until the session reaches a terminal status or ctx is done.
func (o *Orchestrator) Wait(ctx context.Context, sessionID string) (domain.Session, error) {
	o.mu.Lock()
	r, ok := o.runs[sessionID]
	o.mu.Unlock()
	if !ok {
		return domain.Session{}, ErrSessionNotFound
	}
	select {
	case <-r.done:
		return o.Status(sessionID)
	case <-ctx.Done():
		return domain.Session{}, ctx.Err()
	}
}

// Candidates lists the session's active result set with review state.
func (o *Orchestrator) Candidates(sessionID string) ([]domain.ReviewItem, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	r, ok := o.runs[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := make([]domain.ReviewItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, domain.ReviewItem{
			Candidate:   it.candidate.Clone(),
			ReviewState: it.state,
			ExerciseID:  it.exerciseID,
		})
	}
	return out, nil
}

// Review approves or rejects one candidate. Approval hands it to the library
// and hides it after the grace period; rejection hides it at once.
func (o *Orchestrator) Review(ctx context.Context, sessionID, searchID string, approve bool, reviewer string) (*domain.Exercise, error) {
	o.mu.Lock()
	r, ok := o.runs[sessionID]
	if !ok {
		o.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if r.session.Status == domain.SessionRunning {
		o.mu.Unlock()
		return nil, ErrSessionNotReviewable
	}
	item := r.find(searchID)
	if item == nil {
		o.mu.Unlock()
		return nil, ErrCandidateNotFound
	}
	if item.state != domain.ReviewPending {
		o.mu.Unlock()
		return nil, ErrAlreadyReviewed
	}
	if !approve {
		item.state = domain.ReviewRejected
		r.remove(searchID)
		o.mu.Unlock()
		o.log.Info("candidate rejected", "session_id", sessionID, "search_id", searchID, "reviewer", reviewer)
		return nil, nil
	}
	// Claim the item so a concurrent approval cannot persist it twice.
	item.state = domain.ReviewApproved
	candidate := item.candidate.Clone()
	o.mu.Unlock()

	ex, err := o.approve(ctx, sessionID, candidate, reviewer)
	if err != nil {
		o.mu.Lock()
		item.state = domain.ReviewPending
		o.mu.Unlock()
		return nil, err
	}

	o.mu.Lock()
	item.exerciseID = ex.ID.Hex()
	o.mu.Unlock()

	o.afterFunc(o.cfg.ReviewGrace, func() {
		o.mu.Lock()
		r.remove(searchID)
		o.mu.Unlock()
	})
	o.log.Info("candidate approved", "session_id", sessionID, "search_id", searchID, "exercise_id", ex.ID.Hex(), "reviewer", reviewer)
	return ex, nil
}

func (o *Orchestrator) approve(ctx context.Context, sessionID string, c domain.Candidate, reviewer string) (*domain.Exercise, error) {
	if o.library == nil {
		return nil, errors.New("no exercise library configured")
	}
	created, err := o.library.CreateFromCandidate(ctx, sessionID, c)
	if err != nil {
		return nil, fmt.Errorf("creating exercise from candidate: %w", err)
	}
	approved, err := o.library.MarkApproved(ctx, created.ID.Hex(), reviewer)
	if err != nil {
		return nil, fmt.Errorf("marking exercise approved: %w", err)
	}
	return approved, nil
}

func (r *run) find(searchID string) *reviewEntry {
	for _, it := range r.items {
		if it.candidate.SearchID == searchID {
			return it
		}
	}
	return nil
}

func (r *run) remove(searchID string) {
	for i, it := range r.items {
		if it.candidate.SearchID == searchID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return
		}
	}
}

// EstimateDuration is a rough wall-clock estimate for processing terms.
func EstimateDuration(terms int, testMode bool, interCallDelay time.Duration) time.Duration {
	per := estimatedCallTime
	if !testMode {
		per += interCallDelay
	}
	return time.Duration(terms) * per
}

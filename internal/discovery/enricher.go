package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"alcyxob/exercise-discovery/internal/ai"
	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/logger"
	"alcyxob/exercise-discovery/internal/retry"
	"alcyxob/exercise-discovery/internal/taxonomy"
)

var (
	ErrNoCredential    = errors.New("no ai provider configured")
	ErrSchemaViolation = errors.New("ai response does not match the exercise schema")
)

// FilterContext carries the session filters into prompts and scoring.
type FilterContext struct {
	Sport            string
	FitnessComponent string
	Purpose          string
}

// TermResult is the outcome for one search term. Candidates is never empty;
// Err explains why the fallback path was taken, if it was.
type TermResult struct {
	Term       string
	Candidates []domain.Candidate
	Method     domain.DiscoveryMethod
	Err        error
}

type EnricherConfig struct {
	Temperature float64
	MaxTokens   int
	Retry       retry.Policy
	Scoring     domain.ScoringMode
}

// Enricher turns a search term into candidate exercises.
type Enricher struct {
	provider ai.Provider
	tax      *taxonomy.Taxonomy
	cfg      EnricherConfig
	log      *logger.Logger

	newID func() string
	now   func() time.Time
}

// NewEnricher returns an enricher. A nil provider puts it in fallback-only mode.
func NewEnricher(provider ai.Provider, tax *taxonomy.Taxonomy, cfg EnricherConfig, log *logger.Logger) *Enricher {
	if log == nil {
		log = logger.NewNop()
	}
	if provider == nil {
		log.Warn("no AI provider configured, discovery will use taxonomy fallback only")
	} else {
		log.Info("AI provider configured", "provider", provider.Name())
	}
	return &Enricher{
		provider: provider,
		tax:      tax,
		cfg:      cfg,
		log:      log,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// DiscoverExercisesForTerm asks the provider for up to maxExercises candidates
// and falls back to deterministic generation on any failure.
func (e *Enricher) DiscoverExercisesForTerm(ctx context.Context, term string, maxExercises int, fctx FilterContext) TermResult {
	if maxExercises < 1 {
		maxExercises = 1
	}
	if e.provider == nil {
		return e.fallback(term, maxExercises, ErrNoCredential)
	}

	req := buildRequest(term, maxExercises, fctx, e.cfg.Temperature, e.cfg.MaxTokens)
	var parsed []domain.Candidate
	err := retry.Do(ctx, e.cfg.Retry, "ai discovery", func(ctx context.Context) error {
		text, err := e.provider.Complete(ctx, req)
		if err != nil {
			return err
		}
		cs, err := parseCandidates(text)
		if err != nil {
			return retry.Permanent(err)
		}
		parsed = cs
		return nil
	})
	if err != nil {
		e.log.Warn("AI discovery failed, using fallback", "term", term, "error", err)
		return e.fallback(term, maxExercises, fmt.Errorf("ai discovery for %q: %w", term, err))
	}

	scorer := Scorer{Mode: e.cfg.Scoring}
	now := e.now().UTC()
	out := make([]domain.Candidate, 0, len(parsed))
	for _, c := range parsed {
		c.DiscoveryMethod = domain.MethodAIDiscovery
		c.OriginalSearchTerm = term
		c.SearchID = e.newID()
		c.DiscoveredAt = now
		c.QualityScore = scorer.Score(c, fctx)
		out = append(out, c)
		if len(out) == maxExercises {
			break
		}
	}
	return TermResult{Term: term, Candidates: out, Method: domain.MethodAIDiscovery}
}

func (e *Enricher) fallback(term string, maxExercises int, reason error) TermResult {
	cs, method := fallbackCandidates(e.tax, term, maxExercises)
	now := e.now().UTC()
	for i := range cs {
		cs[i].DiscoveryMethod = method
		cs[i].OriginalSearchTerm = term
		cs[i].SearchID = e.newID()
		cs[i].DiscoveredAt = now
		cs[i].QualityScore = Scorer{}.Score(cs[i], FilterContext{})
	}
	return TermResult{Term: term, Candidates: cs, Method: method, Err: reason}
}

type aiResponse struct {
	Exercises []domain.Candidate `json:"exercises"`
}

// parseCandidates extracts and validates the provider's JSON. Any invalid
// candidate rejects the whole response.
func parseCandidates(text string) ([]domain.Candidate, error) {
	raw, err := ai.ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	arr, ok := probe["exercises"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(arr), []byte("[")) {
		return nil, fmt.Errorf("%w: missing exercises array", ErrSchemaViolation)
	}

	var resp aiResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}
	if len(resp.Exercises) == 0 {
		return nil, fmt.Errorf("%w: exercises array is empty", ErrSchemaViolation)
	}
	for i := range resp.Exercises {
		if err := resp.Exercises[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: exercise %d: %v", ErrSchemaViolation, i, err)
		}
	}
	return resp.Exercises, nil
}

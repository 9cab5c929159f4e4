package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"alcyxob/exercise-discovery/internal/discovery"
	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/logger"
	"alcyxob/exercise-discovery/internal/repository"
	"alcyxob/exercise-discovery/internal/storage"
)

var ErrReportsDisabled = errors.New("report export is not configured")

// SessionRunner is satisfied by *discovery.Orchestrator.
type SessionRunner interface {
	Start(ctx context.Context, cfg domain.SessionConfig) (domain.Session, error)
	Status(sessionID string) (domain.Session, error)
	Cancel(sessionID string) error
	Candidates(sessionID string) ([]domain.ReviewItem, error)
	Review(ctx context.Context, sessionID, searchID string, approve bool, reviewer string) (*domain.Exercise, error)
	PreviewTerms(cfg domain.SessionConfig) []string
}

// StartedSession is returned when a run begins.
type StartedSession struct {
	SessionID         string
	Config            domain.SessionConfig
	TotalTerms        int
	EstimatedDuration time.Duration
}

// Report is the exported record of a finished session.
type Report struct {
	Session     domain.Session      `json:"session"`
	Candidates  []domain.ReviewItem `json:"candidates"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// ReportLink points at an exported report.
type ReportLink struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type DiscoveryServiceConfig struct {
	InterCallDelay  time.Duration
	ReportURLExpiry time.Duration
}

type DiscoveryService interface {
	StartSession(ctx context.Context, cfg domain.SessionConfig) (*StartedSession, error)
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	ListSessions(ctx context.Context, limit int64) ([]domain.Session, error)
	CancelSession(ctx context.Context, sessionID string) error
	GetCandidates(ctx context.Context, sessionID string) ([]domain.ReviewItem, error)
	ReviewCandidate(ctx context.Context, sessionID, searchID string, approve bool, reviewer string) (*domain.Exercise, error)
	ExportReport(ctx context.Context, sessionID string) (*ReportLink, error)
	PreviewTerms(cfg domain.SessionConfig) []string
}

type discoveryService struct {
	runner      SessionRunner
	sessionRepo repository.SessionRepository
	reports     storage.ReportStore
	cfg         DiscoveryServiceConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewDiscoveryService wires the discovery service. sessionRepo and reports may be nil.
func NewDiscoveryService(runner SessionRunner, sessionRepo repository.SessionRepository, reports storage.ReportStore, cfg DiscoveryServiceConfig, log *logger.Logger) DiscoveryService {
	if cfg.ReportURLExpiry <= 0 {
		cfg.ReportURLExpiry = storage.DefaultPresignedURLExpiry
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &discoveryService{
		runner:      runner,
		sessionRepo: sessionRepo,
		reports:     reports,
		cfg:         cfg,
		log:         log,
		now:         time.Now,
	}
}

func (s *discoveryService) StartSession(ctx context.Context, cfg domain.SessionConfig) (*StartedSession, error) {
	session, err := s.runner.Start(ctx, cfg)
	if err != nil {
		return nil, err
	}
	terms := session.Progress.TotalTerms
	return &StartedSession{
		SessionID:         session.SessionID,
		Config:            session.Config,
		TotalTerms:        terms,
		EstimatedDuration: discovery.EstimateDuration(terms, session.Config.TestMode, s.cfg.InterCallDelay),
	}, nil
}

// GetSession reads the in-memory run first and falls back to stored snapshots
// for sessions this process no longer holds.
func (s *discoveryService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := s.runner.Status(sessionID)
	if err == nil {
		return &session, nil
	}
	if !errors.Is(err, discovery.ErrSessionNotFound) || s.sessionRepo == nil {
		return nil, err
	}
	stored, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, discovery.ErrSessionNotFound
		}
		return nil, err
	}
	return stored, nil
}

func (s *discoveryService) ListSessions(ctx context.Context, limit int64) ([]domain.Session, error) {
	if s.sessionRepo == nil {
		return []domain.Session{}, nil
	}
	return s.sessionRepo.ListRecent(ctx, limit)
}

func (s *discoveryService) CancelSession(_ context.Context, sessionID string) error {
	return s.runner.Cancel(sessionID)
}

func (s *discoveryService) GetCandidates(_ context.Context, sessionID string) ([]domain.ReviewItem, error) {
	return s.runner.Candidates(sessionID)
}

func (s *discoveryService) ReviewCandidate(ctx context.Context, sessionID, searchID string, approve bool, reviewer string) (*domain.Exercise, error) {
	return s.runner.Review(ctx, sessionID, searchID, approve, reviewer)
}

func (s *discoveryService) PreviewTerms(cfg domain.SessionConfig) []string {
	return s.runner.PreviewTerms(cfg)
}

// ExportReport uploads the session and its remaining candidates as JSON and
// returns a temporary download link. Running sessions cannot be exported.
func (s *discoveryService) ExportReport(ctx context.Context, sessionID string) (*ReportLink, error) {
	if s.reports == nil {
		return nil, ErrReportsDisabled
	}
	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Status.IsTerminal() {
		return nil, discovery.ErrSessionNotReviewable
	}

	candidates, err := s.runner.Candidates(sessionID)
	if err != nil {
		if !errors.Is(err, discovery.ErrSessionNotFound) {
			return nil, err
		}
		candidates = []domain.ReviewItem{}
	}

	body, err := json.MarshalIndent(Report{Session: *session, Candidates: candidates, GeneratedAt: s.now().UTC()}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}

	key := storage.ReportKey(sessionID)
	if err := s.reports.PutObject(ctx, key, "application/json", body); err != nil {
		return nil, fmt.Errorf("uploading report: %w", err)
	}
	url, err := s.reports.GeneratePresignedDownloadURL(ctx, key, s.cfg.ReportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning report: %w", err)
	}
	s.log.Info("discovery report exported", "session_id", sessionID, "key", key, "bytes", len(body))
	return &ReportLink{Key: key, URL: url, ExpiresAt: s.now().UTC().Add(s.cfg.ReportURLExpiry)}, nil
}

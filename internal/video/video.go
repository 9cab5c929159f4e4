// Package video finds demonstration videos for exercises.
package video

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"alcyxob/exercise-discovery/internal/domain"
	"alcyxob/exercise-discovery/internal/logger"
	"alcyxob/exercise-discovery/internal/retry"
)

const (
	DefaultMaxResults = 5
	DefaultCacheTTL   = 24 * time.Hour
	maxAllowedResults = 25
)

// Searcher queries an upstream video index.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int64) ([]domain.Video, error)
}

// Cache stores search results by normalized query.
// A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]domain.Video, bool, error)
	Set(ctx context.Context, key string, videos []domain.Video, ttl time.Duration) error
}

type Config struct {
	MaxResults int
	CacheTTL   time.Duration
	Retry      retry.Policy
}

// Service looks videos up upstream and falls back to a fixed mapping when
// the upstream is unavailable or returns nothing. Search never fails.
type Service struct {
	searcher Searcher
	cache    Cache
	cfg      Config
	log      *logger.Logger
	group    singleflight.Group
}

// NewService builds a Service. searcher and cache may be nil.
func NewService(searcher Searcher, cache Cache, cfg Config, log *logger.Logger) *Service {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if log == nil {
		log = logger.NewNop()
	}
	if searcher == nil {
		log.Warn("no video search API configured, using fallback video mapping only")
	}
	return &Service{searcher: searcher, cache: cache, cfg: cfg, log: log}
}

// NormalizeQuery lowercases and collapses whitespace.
func NormalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}

// Search returns up to maxResults videos for query. Zero maxResults uses the
// configured default.
func (s *Service) Search(ctx context.Context, query string, maxResults int) []domain.Video {
	q := NormalizeQuery(query)
	if q == "" {
		return nil
	}
	if maxResults <= 0 {
		maxResults = s.cfg.MaxResults
	}
	if maxResults > maxAllowedResults {
		maxResults = maxAllowedResults
	}

	if s.searcher == nil {
		return truncate(FallbackVideos(q), maxResults)
	}

	v, _, _ := s.group.Do(q, func() (interface{}, error) {
		return s.lookup(ctx, q), nil
	})
	return truncate(v.([]domain.Video), maxResults)
}

// lookup always asks upstream for the configured maximum so cached entries
// serve any smaller request.
func (s *Service) lookup(ctx context.Context, q string) []domain.Video {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, q)
		if err != nil {
			s.log.Warn("video cache read failed", "query", q, "error", err)
		} else if ok {
			return cached
		}
	}

	var found []domain.Video
	err := retry.Do(ctx, s.cfg.Retry, "video search", func(ctx context.Context) error {
		var err error
		found, err = s.searcher.Search(ctx, q, int64(s.cfg.MaxResults))
		return err
	})
	if err != nil {
		s.log.Warn("video search failed, using fallback mapping", "query", q, "error", err)
		return FallbackVideos(q)
	}
	if len(found) == 0 {
		s.log.Debug("video search returned nothing, using fallback mapping", "query", q)
		return FallbackVideos(q)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, q, found, s.cfg.CacheTTL); err != nil {
			s.log.Warn("video cache write failed", "query", q, "error", err)
		}
	}
	return found
}

func truncate(vs []domain.Video, n int) []domain.Video {
	if len(vs) <= n {
		out := make([]domain.Video, len(vs))
		copy(out, vs)
		return out
	}
	out := make([]domain.Video, n)
	copy(out, vs[:n])
	return out
}

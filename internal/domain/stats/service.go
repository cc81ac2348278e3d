package stats

import (
	"context"
	"fmt"
	"time"

	"church-app-go/pkg/logger"
)

const (
	summaryCacheKey = "stats:summary"
	defaultCacheTTL = time.Minute
)

type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   logger.Logger
	now   func() time.Time
}

// NewService builds the dashboard service. A nil cache disables caching.
func NewService(repo Repository, cache Cache, ttl time.Duration, log logger.Logger) *Service {
	if cache == nil {
		cache = noopCache{}
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{repo: repo, cache: cache, ttl: ttl, log: log, now: time.Now}
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var cached Summary
	if err := s.cache.Get(ctx, summaryCacheKey, &cached); err == nil {
		return cached, nil
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	summary, err := s.repo.Counts(ctx, today)
	if err != nil {
		return Summary{}, fmt.Errorf("count entities: %w", err)
	}
	integrity, err := s.repo.Integrity(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("count dangling references: %w", err)
	}
	summary.Integrity = integrity
	summary.GeneratedAt = now

	if err := s.cache.Set(ctx, summaryCacheKey, summary, s.ttl); err != nil {
		s.log.Warn("stats.summary: cache set failed", "err", err)
	}
	return summary, nil
}

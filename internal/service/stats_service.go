package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"practicehub/internal/cache"
	"practicehub/internal/repository"
	pkgerrors "practicehub/pkg/errors"
	"practicehub/pkg/utils/logger"

	"go.uber.org/zap"
)

const (
	statsCacheKey        = "stats:snapshot"
	defaultStatsCacheTTL = 15 * time.Second
)

// Stats is the derived catalog statistics record.
type Stats struct {
	TotalUsers            int64 `json:"totalUsers"`
	TotalProblems         int64 `json:"totalProblems"`
	SolvedProblemsCount   int64 `json:"solvedProblemsCount"`
	UnsolvedProblemsCount int64 `json:"unsolvedProblemsCount"`
}

// StatsService computes catalog statistics, with a short-TTL cache in front
// of the store. A nil cache disables caching.
type StatsService struct {
	problems repository.ProblemRepository
	users    repository.UserRepository
	cache    cache.BasicOps
	cacheTTL time.Duration
}

// NewStatsService creates a new StatsService. The cache may be nil.
func NewStatsService(problems repository.ProblemRepository, users repository.UserRepository, cacheClient cache.BasicOps, cacheTTL time.Duration) *StatsService {
	if cacheTTL <= 0 {
		cacheTTL = defaultStatsCacheTTL
	}
	return &StatsService{
		problems: problems,
		users:    users,
		cache:    cacheClient,
		cacheTTL: cacheTTL,
	}
}

// Snapshot returns current counts, at most cacheTTL stale.
func (s *StatsService) Snapshot(ctx context.Context) (Stats, error) {
	if cached, ok := s.fromCache(ctx); ok {
		return cached, nil
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return Stats{}, err
	}

	s.toCache(ctx, stats)
	return stats, nil
}

func (s *StatsService) compute(ctx context.Context) (Stats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return Stats{}, pkgerrors.Wrap(fmt.Errorf("count users failed: %w", err), pkgerrors.DatabaseError)
	}
	totalProblems, err := s.problems.Count(ctx)
	if err != nil {
		return Stats{}, pkgerrors.Wrap(fmt.Errorf("count problems failed: %w", err), pkgerrors.DatabaseError)
	}
	solved, err := s.problems.CountSolved(ctx)
	if err != nil {
		return Stats{}, pkgerrors.Wrap(fmt.Errorf("count solved problems failed: %w", err), pkgerrors.DatabaseError)
	}
	unsolved, err := s.problems.CountUnsolved(ctx)
	if err != nil {
		return Stats{}, pkgerrors.Wrap(fmt.Errorf("count unsolved problems failed: %w", err), pkgerrors.DatabaseError)
	}

	return Stats{
		TotalUsers:            totalUsers,
		TotalProblems:         totalProblems,
		SolvedProblemsCount:   solved,
		UnsolvedProblemsCount: unsolved,
	}, nil
}

func (s *StatsService) fromCache(ctx context.Context) (Stats, bool) {
	if s.cache == nil {
		return Stats{}, false
	}

	value, err := s.cache.Get(ctx, statsCacheKey)
	if err != nil {
		logger.Warn(ctx, "get stats cache failed", zap.Error(err))
		return Stats{}, false
	}
	if value == "" {
		return Stats{}, false
	}

	var stats Stats
	if err := json.Unmarshal([]byte(value), &stats); err != nil {
		logger.Warn(ctx, "decode stats cache failed", zap.Error(err))
		return Stats{}, false
	}
	return stats, true
}

func (s *StatsService) toCache(ctx context.Context, stats Stats) {
	if s.cache == nil {
		return
	}

	encoded, err := json.Marshal(stats)
	if err != nil {
		logger.Warn(ctx, "encode stats cache failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, string(encoded), s.cacheTTL); err != nil {
		logger.Warn(ctx, "set stats cache failed", zap.Error(err))
	}
}

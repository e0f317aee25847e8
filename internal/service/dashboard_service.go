package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/progress"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

const dashboardCacheKey = "dashboard:stats"

// DashboardService aggregates the headline numbers for the landing view.
type DashboardService interface {
	Stats(ctx context.Context) (dto.DashboardStats, bool, error)
}

type dashboardService struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	users    repository.UserRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewDashboardService constructs the dashboard service. The cache client
// may be nil.
func NewDashboardService(projects repository.ProjectRepository, tasks repository.TaskRepository, users repository.UserRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &dashboardService{
		projects: projects,
		tasks:    tasks,
		users:    users,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) Stats(ctx context.Context) (dto.DashboardStats, bool, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var stats dto.DashboardStats
			if unmarshalErr := json.Unmarshal([]byte(cached), &stats); unmarshalErr == nil {
				return stats, true, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	totalProjects, err := s.projects.Count(ctx)
	if err != nil {
		return dto.DashboardStats{}, false, err
	}

	inProgress, err := s.tasks.CountByStatus(ctx, progress.StatusInProgress)
	if err != nil {
		return dto.DashboardStats{}, false, err
	}

	activeMembers, err := s.users.Count(ctx)
	if err != nil {
		return dto.DashboardStats{}, false, err
	}

	totalBudget, err := s.projects.SumBudget(ctx)
	if err != nil {
		return dto.DashboardStats{}, false, err
	}

	stats := dto.DashboardStats{
		TotalProjects:   totalProjects,
		TasksInProgress: inProgress,
		ActiveMembers:   activeMembers,
		TotalBudget:     totalBudget,
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return stats, false, nil
}

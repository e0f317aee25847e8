package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

// ActivityLogService serves the audit listing and the retention sweep.
type ActivityLogService interface {
	List(ctx context.Context) ([]dto.ActivityLogResponse, error)
	// Cleanup deletes entries older than the given number of months and
	// reports how many were removed. A non-positive value falls back to
	// the configured retention default.
	Cleanup(ctx context.Context, months int) (dto.CleanupResponse, error)
}

type activityLogService struct {
	repo            repository.ActivityLogRepository
	retentionMonths int
	logger          zerolog.Logger
	now             func() time.Time
}

// NewActivityLogService constructs the activity log service.
func NewActivityLogService(repo repository.ActivityLogRepository, retentionMonths int, logger zerolog.Logger) ActivityLogService {
	if retentionMonths <= 0 {
		retentionMonths = 3
	}
	return &activityLogService{
		repo:            repo,
		retentionMonths: retentionMonths,
		logger:          logger.With().Str("component", "activity_log_service").Logger(),
		now:             time.Now,
	}
}

func (s *activityLogService) List(ctx context.Context) ([]dto.ActivityLogResponse, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewActivityLogResponse(entry))
	}
	return responses, nil
}

func (s *activityLogService) Cleanup(ctx context.Context, months int) (dto.CleanupResponse, error) {
	if months <= 0 {
		months = s.retentionMonths
	}

	cutoff := s.now().AddDate(0, -months, 0)
	deleted, err := s.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return dto.CleanupResponse{}, err
	}

	s.logger.Info().
		Int("months", months).
		Int64("deleted", deleted).
		Msg("activity log cleanup complete")

	return dto.CleanupResponse{Months: months, Deleted: deleted}, nil
}

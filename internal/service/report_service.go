package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/models"
	"github.com/adityawarmn/projectflow-api/internal/observability"
	"github.com/adityawarmn/projectflow-api/internal/progress"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

const (
	reportListCacheKey      = "reports:all"
	reportProjectCacheKeyFn = "reports:project:%d"
)

// ReportService builds progress trees and maintains the per-project
// rollup rows. Both the write path (SyncProject) and the read path use
// the flat mean over every task as the project formula; the historical
// read path averaged sprint percentages instead, which skewed results
// whenever sprint sizes differed.
type ReportService interface {
	// SyncProject recomputes and upserts the rollup for the project the
	// given task mutation touched. Failures propagate to the caller.
	SyncProject(ctx context.Context, projectID uint) error
	// List returns a live progress tree per project. The boolean reports
	// whether the payload came from cache.
	List(ctx context.Context) ([]dto.ProjectReport, bool, error)
	// Get returns the live progress tree for one project.
	Get(ctx context.Context, projectID uint) (dto.ProjectReport, bool, error)
}

type reportService struct {
	projects repository.ProjectRepository
	reports  repository.ReportRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	tracer   trace.Tracer
}

// NewReportService constructs the report service. The cache client may be
// nil, in which case every read recomputes.
func NewReportService(projects repository.ProjectRepository, reports repository.ReportRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ReportService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &reportService{
		projects: projects,
		reports:  reports,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "report_service").Logger(),
		tracer:   otel.Tracer("github.com/adityawarmn/projectflow-api/internal/service/report"),
	}
}

func (s *reportService) SyncProject(ctx context.Context, projectID uint) error {
	ctx, span := s.tracer.Start(ctx, "report.sync_project")
	defer span.End()
	span.SetAttributes(attribute.Int64("project.id", int64(projectID)))

	start := time.Now()
	defer func() {
		observability.ReportRebuildDuration().Observe(time.Since(start).Seconds())
	}()

	project, err := s.projects.GetWithTree(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The project is gone; drop its rollup row and cached trees.
			if err := s.reports.DeleteByProject(ctx, projectID); err != nil {
				span.SetStatus(codes.Error, "delete rollup")
				return err
			}
			s.invalidate(ctx, projectID)
			return nil
		}
		span.SetStatus(codes.Error, "load project tree")
		return err
	}

	report := buildProjectReport(project)

	details, err := json.Marshal(report.Details)
	if err != nil {
		span.SetStatus(codes.Error, "serialize details")
		return fmt.Errorf("failed to serialize report details: %w", err)
	}

	rollup := models.Report{
		ProjectID:          project.ID,
		ProgressPercentage: report.ProgressPercentage,
		Details:            datatypes.JSON(details),
	}
	if err := s.reports.Upsert(ctx, &rollup); err != nil {
		span.SetStatus(codes.Error, "upsert rollup")
		return err
	}

	s.invalidate(ctx, projectID)

	s.logger.Debug().
		Uint("project_id", project.ID).
		Int("progress", report.ProgressPercentage).
		Msg("project rollup rebuilt")

	return nil
}

func (s *reportService) List(ctx context.Context) ([]dto.ProjectReport, bool, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, reportListCacheKey).Result(); err == nil {
			var reports []dto.ProjectReport
			if unmarshalErr := json.Unmarshal([]byte(cached), &reports); unmarshalErr == nil {
				return reports, true, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read report list cache")
		}
	}

	projects, err := s.projects.ListWithTree(ctx)
	if err != nil {
		return nil, false, err
	}

	reports := make([]dto.ProjectReport, 0, len(projects))
	for _, project := range projects {
		reports = append(reports, buildProjectReport(project))
	}

	s.cacheSet(ctx, reportListCacheKey, reports)
	return reports, false, nil
}

func (s *reportService) Get(ctx context.Context, projectID uint) (dto.ProjectReport, bool, error) {
	cacheKey := fmt.Sprintf(reportProjectCacheKeyFn, projectID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var report dto.ProjectReport
			if unmarshalErr := json.Unmarshal([]byte(cached), &report); unmarshalErr == nil {
				return report, true, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read report cache")
		}
	}

	project, err := s.projects.GetWithTree(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectReport{}, false, ErrProjectNotFound
		}
		return dto.ProjectReport{}, false, err
	}

	report := buildProjectReport(project)
	s.cacheSet(ctx, cacheKey, report)
	return report, false, nil
}

func (s *reportService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to store report cache")
	}
}

func (s *reportService) invalidate(ctx context.Context, projectID uint) {
	if s.cache == nil {
		return
	}
	keys := []string{reportListCacheKey, fmt.Sprintf(reportProjectCacheKeyFn, projectID)}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate report cache")
	}
}

// buildProjectReport folds a fully-loaded project into its progress tree.
func buildProjectReport(project models.Project) dto.ProjectReport {
	details := make([]dto.SprintReport, 0, len(project.Sprints))
	sprintTaskValues := make([][]int, 0, len(project.Sprints))

	for _, sprint := range project.Sprints {
		tasks := make([]dto.TaskReport, 0, len(sprint.Tasks))
		values := make([]int, 0, len(sprint.Tasks))

		for _, task := range sprint.Tasks {
			value := progress.StatusValue(task.Status)
			values = append(values, value)
			tasks = append(tasks, dto.TaskReport{
				TaskID:      task.ID,
				Title:       task.Title,
				Description: task.Description,
				Status:      task.Status,
				Progress:    value,
			})
		}

		sprintTaskValues = append(sprintTaskValues, values)
		details = append(details, dto.SprintReport{
			SprintID:       sprint.ID,
			SprintName:     sprint.Name,
			SprintProgress: progress.RoundedMean(values),
			Tasks:          tasks,
		})
	}

	members := make([]dto.ProjectMemberResponse, 0, len(project.Members))
	for _, member := range project.Members {
		members = append(members, dto.NewProjectMemberResponse(member))
	}

	return dto.ProjectReport{
		ProjectID:          project.ID,
		ProjectName:        project.Name,
		ProjectDescription: project.Description,
		ProgressPercentage: progress.FlatMean(sprintTaskValues),
		Details:            details,
		Members:            members,
	}
}

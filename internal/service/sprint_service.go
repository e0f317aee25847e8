package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/models"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

// SprintService manages sprints within a project.
type SprintService interface {
	Create(ctx context.Context, projectID uint, payload dto.SprintCreateRequest) (dto.SprintResponse, error)
	Get(ctx context.Context, projectID, sprintID uint) (dto.SprintResponse, error)
	ListByProject(ctx context.Context, projectID uint) ([]dto.SprintResponse, error)
	Update(ctx context.Context, projectID, sprintID uint, payload dto.SprintUpdateRequest) (dto.SprintResponse, error)
	Delete(ctx context.Context, projectID, sprintID uint) error
}

type sprintService struct {
	sprints   repository.SprintRepository
	projects  repository.ProjectRepository
	reports   ReportService
	recorder  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSprintService constructs the sprint service.
func NewSprintService(sprints repository.SprintRepository, projects repository.ProjectRepository, reports ReportService, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) SprintService {
	return &sprintService{
		sprints:   sprints,
		projects:  projects,
		reports:   reports,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "sprint_service").Logger(),
	}
}

func (s *sprintService) Create(ctx context.Context, projectID uint, payload dto.SprintCreateRequest) (dto.SprintResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SprintResponse{}, err
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SprintResponse{}, ErrProjectNotFound
		}
		return dto.SprintResponse{}, err
	}

	sprint := models.Sprint{
		ProjectID: projectID,
		Name:      strings.TrimSpace(payload.Name),
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
	}
	if err := s.sprints.Create(ctx, &sprint); err != nil {
		return dto.SprintResponse{}, err
	}

	s.recorder.RecordCreated(ctx, sprint, snapshotOf(s.logger, sprint))

	// A new empty sprint changes the rollup detail tree.
	if err := s.reports.SyncProject(ctx, projectID); err != nil {
		return dto.SprintResponse{}, err
	}

	return dto.NewSprintResponse(sprint), nil
}

func (s *sprintService) Get(ctx context.Context, projectID, sprintID uint) (dto.SprintResponse, error) {
	sprint, err := s.loadSprint(ctx, projectID, sprintID)
	if err != nil {
		return dto.SprintResponse{}, err
	}
	return dto.NewSprintResponse(sprint), nil
}

func (s *sprintService) ListByProject(ctx context.Context, projectID uint) ([]dto.SprintResponse, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	sprints, err := s.sprints.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SprintResponse, 0, len(sprints))
	for _, sprint := range sprints {
		responses = append(responses, dto.NewSprintResponse(sprint))
	}
	return responses, nil
}

func (s *sprintService) Update(ctx context.Context, projectID, sprintID uint, payload dto.SprintUpdateRequest) (dto.SprintResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SprintResponse{}, err
	}

	before, err := s.loadSprint(ctx, projectID, sprintID)
	if err != nil {
		return dto.SprintResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.StartDate != nil {
		updates["start_date"] = payload.StartDate
	}
	if payload.EndDate != nil {
		updates["end_date"] = payload.EndDate
	}

	if len(updates) == 0 {
		return dto.NewSprintResponse(before), nil
	}

	after, err := s.sprints.Update(ctx, sprintID, updates)
	if err != nil {
		return dto.SprintResponse{}, err
	}

	s.recorder.RecordUpdated(ctx, after, snapshotOf(s.logger, before), snapshotOf(s.logger, after))

	if err := s.reports.SyncProject(ctx, projectID); err != nil {
		return dto.SprintResponse{}, err
	}

	return dto.NewSprintResponse(after), nil
}

func (s *sprintService) Delete(ctx context.Context, projectID, sprintID uint) error {
	sprint, err := s.loadSprint(ctx, projectID, sprintID)
	if err != nil {
		return err
	}

	if err := s.sprints.Delete(ctx, &sprint); err != nil {
		return err
	}

	s.recorder.RecordDeleted(ctx, sprint, snapshotOf(s.logger, sprint))

	// The sprint's tasks cascade away, so the rollup must be recomputed.
	return s.reports.SyncProject(ctx, projectID)
}

func (s *sprintService) loadSprint(ctx context.Context, projectID, sprintID uint) (models.Sprint, error) {
	sprint, err := s.sprints.GetByID(ctx, sprintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Sprint{}, ErrSprintNotFound
		}
		return models.Sprint{}, err
	}
	if sprint.ProjectID != projectID {
		return models.Sprint{}, ErrSprintNotFound
	}
	return sprint, nil
}

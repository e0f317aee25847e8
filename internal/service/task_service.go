package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/audit"
	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/models"
	"github.com/adityawarmn/projectflow-api/internal/progress"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

// TaskService manages tasks. Every mutation re-aggregates the owning
// project's rollup; aggregation failures surface to the caller so the
// rollup never silently drifts from the tasks.
type TaskService interface {
	Create(ctx context.Context, projectID uint, payload dto.TaskCreateRequest) (dto.TaskResponse, error)
	Get(ctx context.Context, projectID, taskID uint) (dto.TaskResponse, error)
	ListByProject(ctx context.Context, projectID uint) ([]dto.TaskResponse, error)
	Update(ctx context.Context, projectID, taskID uint, payload dto.TaskUpdateRequest) (dto.TaskResponse, error)
	Delete(ctx context.Context, projectID, taskID uint) error
}

type taskService struct {
	tasks     repository.TaskRepository
	sprints   repository.SprintRepository
	projects  repository.ProjectRepository
	reports   ReportService
	recorder  ActivityRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewTaskService constructs the task service.
func NewTaskService(tasks repository.TaskRepository, sprints repository.SprintRepository, projects repository.ProjectRepository, reports ReportService, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) TaskService {
	return &taskService{
		tasks:     tasks,
		sprints:   sprints,
		projects:  projects,
		reports:   reports,
		recorder:  recorder,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "task_service").Logger(),
	}
}

func (s *taskService) Create(ctx context.Context, projectID uint, payload dto.TaskCreateRequest) (dto.TaskResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TaskResponse{}, err
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TaskResponse{}, ErrProjectNotFound
		}
		return dto.TaskResponse{}, err
	}

	if payload.SprintID != nil {
		if err := s.checkSprint(ctx, projectID, *payload.SprintID); err != nil {
			return dto.TaskResponse{}, err
		}
	}

	task := models.Task{
		ProjectID:   projectID,
		SprintID:    payload.SprintID,
		AssignedTo:  payload.AssignedTo,
		Title:       strings.TrimSpace(payload.Title),
		Description: s.sanitizer.Sanitize(payload.Description),
		ModuleType:  payload.ModuleType,
		Priority:    payload.Priority,
		Status:      payload.Status,
		DueDate:     payload.DueDate,
	}
	if task.Priority == "" {
		task.Priority = "medium"
	}
	if task.Status == "" {
		task.Status = progress.StatusTodo
	}
	task.ProgressPercentage = progress.StatusValue(task.Status)

	if actor, ok := audit.ActorFromContext(ctx); ok && actor.ID != nil {
		task.CreatedBy = *actor.ID
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return dto.TaskResponse{}, err
	}

	s.recorder.RecordCreated(ctx, task, snapshotOf(s.logger, task))

	if err := s.reports.SyncProject(ctx, projectID); err != nil {
		return dto.TaskResponse{}, err
	}

	return dto.NewTaskResponse(task), nil
}

func (s *taskService) Get(ctx context.Context, projectID, taskID uint) (dto.TaskResponse, error) {
	task, err := s.loadTask(ctx, projectID, taskID)
	if err != nil {
		return dto.TaskResponse{}, err
	}
	return dto.NewTaskResponse(task), nil
}

func (s *taskService) ListByProject(ctx context.Context, projectID uint) ([]dto.TaskResponse, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, dto.NewTaskResponse(task))
	}
	return responses, nil
}

func (s *taskService) Update(ctx context.Context, projectID, taskID uint, payload dto.TaskUpdateRequest) (dto.TaskResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TaskResponse{}, err
	}

	before, err := s.loadTask(ctx, projectID, taskID)
	if err != nil {
		return dto.TaskResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.SprintID != nil {
		if err := s.checkSprint(ctx, projectID, *payload.SprintID); err != nil {
			return dto.TaskResponse{}, err
		}
		updates["sprint_id"] = *payload.SprintID
	}
	if payload.AssignedTo != nil {
		updates["assigned_to"] = *payload.AssignedTo
	}
	if payload.Title != nil {
		updates["title"] = strings.TrimSpace(*payload.Title)
	}
	if payload.Description != nil {
		updates["description"] = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.ModuleType != nil {
		updates["module_type"] = *payload.ModuleType
	}
	if payload.Priority != nil {
		updates["priority"] = *payload.Priority
	}
	if payload.Status != nil {
		updates["status"] = *payload.Status
		updates["progress_percentage"] = progress.StatusValue(*payload.Status)
	}
	if payload.DueDate != nil {
		updates["due_date"] = payload.DueDate
	}

	if len(updates) == 0 {
		return dto.NewTaskResponse(before), nil
	}

	after, err := s.tasks.Update(ctx, taskID, updates)
	if err != nil {
		return dto.TaskResponse{}, err
	}

	s.recorder.RecordUpdated(ctx, after, snapshotOf(s.logger, before), snapshotOf(s.logger, after))

	if err := s.reports.SyncProject(ctx, projectID); err != nil {
		return dto.TaskResponse{}, err
	}

	return dto.NewTaskResponse(after), nil
}

func (s *taskService) Delete(ctx context.Context, projectID, taskID uint) error {
	task, err := s.loadTask(ctx, projectID, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, &task); err != nil {
		return err
	}

	s.recorder.RecordDeleted(ctx, task, snapshotOf(s.logger, task))

	return s.reports.SyncProject(ctx, projectID)
}

func (s *taskService) loadTask(ctx context.Context, projectID, taskID uint) (models.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	if task.ProjectID != projectID {
		return models.Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (s *taskService) checkSprint(ctx context.Context, projectID, sprintID uint) error {
	sprint, err := s.sprints.GetByID(ctx, sprintID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSprintNotFound
		}
		return err
	}
	if sprint.ProjectID != projectID {
		return ErrSprintMismatch
	}
	return nil
}

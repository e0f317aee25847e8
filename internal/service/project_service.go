package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/models"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

// ProjectService manages projects and their membership rows.
type ProjectService interface {
	Create(ctx context.Context, payload dto.ProjectCreateRequest) (dto.ProjectResponse, error)
	Get(ctx context.Context, id uint) (dto.ProjectResponse, error)
	List(ctx context.Context) ([]dto.ProjectResponse, error)
	Update(ctx context.Context, id uint, payload dto.ProjectUpdateRequest) (dto.ProjectResponse, error)
	Delete(ctx context.Context, id uint) error

	AddMember(ctx context.Context, projectID uint, payload dto.MemberAddRequest) (dto.ProjectMemberResponse, error)
	ListMembers(ctx context.Context, projectID uint) ([]dto.ProjectMemberResponse, error)
	RemoveMember(ctx context.Context, projectID, memberID uint) error
}

type projectService struct {
	projects  repository.ProjectRepository
	members   repository.ProjectMemberRepository
	users     repository.UserRepository
	reports   ReportService
	recorder  ActivityRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewProjectService constructs the project service.
func NewProjectService(projects repository.ProjectRepository, members repository.ProjectMemberRepository, users repository.UserRepository, reports ReportService, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) ProjectService {
	return &projectService{
		projects:  projects,
		members:   members,
		users:     users,
		reports:   reports,
		recorder:  recorder,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "project_service").Logger(),
	}
}

func (s *projectService) Create(ctx context.Context, payload dto.ProjectCreateRequest) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	project := models.Project{
		Name:        strings.TrimSpace(payload.Name),
		Description: s.sanitizer.Sanitize(payload.Description),
		Status:      payload.Status,
		Budget:      payload.Budget,
	}
	if project.Status == "" {
		project.Status = "active"
	}

	if err := s.projects.Create(ctx, &project); err != nil {
		return dto.ProjectResponse{}, err
	}

	s.recorder.RecordCreated(ctx, project, snapshotOf(s.logger, project))
	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Get(ctx context.Context, id uint) (dto.ProjectResponse, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}
	return dto.NewProjectResponse(project), nil
}

func (s *projectService) List(ctx context.Context) ([]dto.ProjectResponse, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		responses = append(responses, dto.NewProjectResponse(project))
	}
	return responses, nil
}

func (s *projectService) Update(ctx context.Context, id uint, payload dto.ProjectUpdateRequest) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	before, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.Description != nil {
		updates["description"] = s.sanitizer.Sanitize(*payload.Description)
	}
	if payload.Status != nil {
		updates["status"] = *payload.Status
	}
	if payload.Budget != nil {
		updates["budget"] = *payload.Budget
	}

	if len(updates) == 0 {
		return dto.NewProjectResponse(before), nil
	}

	after, err := s.projects.Update(ctx, id, updates)
	if err != nil {
		return dto.ProjectResponse{}, err
	}

	s.recorder.RecordUpdated(ctx, after, snapshotOf(s.logger, before), snapshotOf(s.logger, after))
	return dto.NewProjectResponse(after), nil
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	if err := s.projects.Delete(ctx, &project); err != nil {
		return err
	}

	s.recorder.RecordDeleted(ctx, project, snapshotOf(s.logger, project))
	return s.reports.SyncProject(ctx, id)
}

func (s *projectService) AddMember(ctx context.Context, projectID uint, payload dto.MemberAddRequest) (dto.ProjectMemberResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectMemberResponse{}, err
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectMemberResponse{}, ErrProjectNotFound
		}
		return dto.ProjectMemberResponse{}, err
	}

	user, err := s.users.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectMemberResponse{}, ErrUserNotFound
		}
		return dto.ProjectMemberResponse{}, err
	}

	if _, err := s.members.GetByProjectAndUser(ctx, projectID, payload.UserID); err == nil {
		return dto.ProjectMemberResponse{}, ErrMemberExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ProjectMemberResponse{}, err
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    payload.UserID,
		Role:      payload.Role,
	}
	if member.Role == "" {
		member.Role = "member"
	}

	if err := s.members.Create(ctx, &member); err != nil {
		return dto.ProjectMemberResponse{}, err
	}

	s.recorder.RecordCreated(ctx, member, snapshotOf(s.logger, member))

	member.User = &user
	return dto.NewProjectMemberResponse(member), nil
}

func (s *projectService) ListMembers(ctx context.Context, projectID uint) ([]dto.ProjectMemberResponse, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	members, err := s.members.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProjectMemberResponse, 0, len(members))
	for _, member := range members {
		responses = append(responses, dto.NewProjectMemberResponse(member))
	}
	return responses, nil
}

func (s *projectService) RemoveMember(ctx context.Context, projectID, memberID uint) error {
	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		return err
	}
	if member.ProjectID != projectID {
		return ErrMemberNotFound
	}

	if err := s.members.Delete(ctx, &member); err != nil {
		return err
	}

	s.recorder.RecordDeleted(ctx, member, snapshotOf(s.logger, member))
	return nil
}

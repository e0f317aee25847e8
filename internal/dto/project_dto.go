package dto

import (
	"time"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

// ProjectCreateRequest captures the payload for creating a project.
type ProjectCreateRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description string  `json:"description" validate:"omitempty"`
	Status      string  `json:"status" validate:"omitempty,oneof=active on_hold completed archived"`
	Budget      float64 `json:"budget" validate:"omitempty,gte=0"`
}

// ProjectUpdateRequest captures partial project updates.
type ProjectUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string  `json:"description"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active on_hold completed archived"`
	Budget      *float64 `json:"budget" validate:"omitempty,gte=0"`
}

// ProjectResponse serializes a project for API responses.
type ProjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Budget      float64   `json:"budget"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProjectResponse maps a project model onto its response shape.
func NewProjectResponse(project models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		Budget:      project.Budget,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}

// MemberAddRequest captures the payload for adding a project member.
type MemberAddRequest struct {
	UserID uint   `json:"user_id" validate:"required,gt=0"`
	Role   string `json:"role" validate:"omitempty,oneof=manager member viewer"`
}

// ProjectMemberResponse serializes a membership row with its user.
type ProjectMemberResponse struct {
	ID        uint         `json:"id"`
	ProjectID uint         `json:"project_id"`
	UserID    uint         `json:"user_id"`
	Role      string       `json:"role"`
	User      *UserSummary `json:"user,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewProjectMemberResponse maps a membership model onto its response shape.
func NewProjectMemberResponse(member models.ProjectMember) ProjectMemberResponse {
	response := ProjectMemberResponse{
		ID:        member.ID,
		ProjectID: member.ProjectID,
		UserID:    member.UserID,
		Role:      member.Role,
		CreatedAt: member.CreatedAt,
	}
	if member.User != nil {
		summary := NewUserSummary(*member.User)
		response.User = &summary
	}
	return response
}

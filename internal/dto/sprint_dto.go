package dto

import (
	"time"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

// SprintCreateRequest captures the payload for creating a sprint.
type SprintCreateRequest struct {
	Name      string     `json:"name" validate:"required,min=1,max=255"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// SprintUpdateRequest captures partial sprint updates.
type SprintUpdateRequest struct {
	Name      *string    `json:"name" validate:"omitempty,min=1,max=255"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}

// SprintResponse serializes a sprint for API responses.
type SprintResponse struct {
	ID        uint       `json:"id"`
	ProjectID uint       `json:"project_id"`
	Name      string     `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewSprintResponse maps a sprint model onto its response shape.
func NewSprintResponse(sprint models.Sprint) SprintResponse {
	return SprintResponse{
		ID:        sprint.ID,
		ProjectID: sprint.ProjectID,
		Name:      sprint.Name,
		StartDate: sprint.StartDate,
		EndDate:   sprint.EndDate,
		CreatedAt: sprint.CreatedAt,
		UpdatedAt: sprint.UpdatedAt,
	}
}

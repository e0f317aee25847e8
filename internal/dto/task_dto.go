package dto

import (
	"time"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

// TaskCreateRequest captures the payload for creating a task.
type TaskCreateRequest struct {
	SprintID    *uint      `json:"sprint_id" validate:"omitempty,gt=0"`
	AssignedTo  *uint      `json:"assigned_to" validate:"omitempty,gt=0"`
	Title       string     `json:"title" validate:"required,min=1,max=255"`
	Description string     `json:"description"`
	ModuleType  string     `json:"module_type" validate:"omitempty,oneof=backend frontend uiux project_manager marketing fullstack"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Status      string     `json:"status" validate:"omitempty,oneof=todo in_progress review done"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskUpdateRequest captures partial task updates.
type TaskUpdateRequest struct {
	SprintID    *uint      `json:"sprint_id" validate:"omitempty,gt=0"`
	AssignedTo  *uint      `json:"assigned_to" validate:"omitempty,gt=0"`
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string    `json:"description"`
	ModuleType  *string    `json:"module_type" validate:"omitempty,oneof=backend frontend uiux project_manager marketing fullstack"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Status      *string    `json:"status" validate:"omitempty,oneof=todo in_progress review done"`
	DueDate     *time.Time `json:"due_date"`
}

// TaskResponse serializes a task for API responses.
type TaskResponse struct {
	ID                 uint       `json:"id"`
	ProjectID          uint       `json:"project_id"`
	SprintID           *uint      `json:"sprint_id"`
	AssignedTo         *uint      `json:"assigned_to"`
	CreatedBy          uint       `json:"created_by"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	ModuleType         string     `json:"module_type"`
	Priority           string     `json:"priority"`
	Status             string     `json:"status"`
	ProgressPercentage int        `json:"progress_percentage"`
	DueDate            *time.Time `json:"due_date"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewTaskResponse maps a task model onto its response shape.
func NewTaskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:                 task.ID,
		ProjectID:          task.ProjectID,
		SprintID:           task.SprintID,
		AssignedTo:         task.AssignedTo,
		CreatedBy:          task.CreatedBy,
		Title:              task.Title,
		Description:        task.Description,
		ModuleType:         task.ModuleType,
		Priority:           task.Priority,
		Status:             task.Status,
		ProgressPercentage: task.ProgressPercentage,
		DueDate:            task.DueDate,
		CreatedAt:          task.CreatedAt,
		UpdatedAt:          task.UpdatedAt,
	}
}

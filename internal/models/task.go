package models

import (
	"time"

	"github.com/adityawarmn/projectflow-api/internal/audit"
)

// Task is the unit of work tracked inside a sprint.
type Task struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	ProjectID          uint       `gorm:"index;not null" json:"project_id"`
	SprintID           *uint      `gorm:"index" json:"sprint_id"`
	AssignedTo         *uint      `json:"assigned_to"`
	CreatedBy          uint       `json:"created_by"`
	Title              string     `gorm:"size:255;not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	ModuleType         string     `gorm:"size:32" json:"module_type"`
	Priority           string     `gorm:"size:16;not null;default:medium" json:"priority"`
	Status             string     `gorm:"size:16;not null;default:todo" json:"status"`
	ProgressPercentage int        `gorm:"not null;default:0" json:"progress_percentage"`
	DueDate            *time.Time `json:"due_date"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// AuditType tags task mutations in the activity trail.
func (Task) AuditType() string { return "task" }

// AuditID returns the subject identifier for audit entries.
func (t Task) AuditID() uint { return t.ID }

// DisplayName prefers the task title over the generic fallback.
func (t Task) DisplayName() string {
	return audit.FallbackDisplayName("Task", t.ID, t.Title)
}

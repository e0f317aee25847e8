package models

import (
	"time"

	"github.com/adityawarmn/projectflow-api/internal/audit"
)

// Project groups sprints, tasks and members under one initiative.
type Project struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Status      string          `gorm:"size:32;not null;default:active" json:"status"`
	Budget      float64         `gorm:"not null;default:0" json:"budget"`
	Sprints     []Sprint        `gorm:"constraint:OnDelete:CASCADE" json:"sprints,omitempty"`
	Tasks       []Task          `gorm:"constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Members     []ProjectMember `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AuditType tags project mutations in the activity trail.
func (Project) AuditType() string { return "project" }

// AuditID returns the subject identifier for audit entries.
func (p Project) AuditID() uint { return p.ID }

// DisplayName labels the project in activity descriptions.
func (p Project) DisplayName() string {
	return audit.FallbackDisplayName("Project", p.ID, p.Name)
}

package models

import (
	"time"

	"github.com/adityawarmn/projectflow-api/internal/audit"
)

// Sprint is a time-boxed slice of a project holding tasks.
type Sprint struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProjectID uint       `gorm:"index;not null" json:"project_id"`
	Name      string     `gorm:"size:255;not null" json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Tasks     []Task     `gorm:"constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AuditType tags sprint mutations in the activity trail.
func (Sprint) AuditType() string { return "sprint" }

// AuditID returns the subject identifier for audit entries.
func (s Sprint) AuditID() uint { return s.ID }

// DisplayName labels the sprint in activity descriptions.
func (s Sprint) DisplayName() string {
	return audit.FallbackDisplayName("Sprint", s.ID, s.Name)
}

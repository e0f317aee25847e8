package models

import (
	"time"

	"github.com/adityawarmn/projectflow-api/internal/audit"
)

// ProjectMember links a user to a project with a role inside it.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	Role      string    `gorm:"size:32;not null;default:member" json:"role"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuditType tags membership mutations in the activity trail.
func (ProjectMember) AuditType() string { return "project_member" }

// AuditID returns the subject identifier for audit entries.
func (m ProjectMember) AuditID() uint { return m.ID }

// DisplayName has no natural label field, so it always falls back to the
// generic tag.
func (m ProjectMember) DisplayName() string {
	return audit.FallbackDisplayName("ProjectMember", m.ID)
}

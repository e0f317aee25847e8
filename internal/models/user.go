package models

import (
	"time"

	"github.com/adityawarmn/projectflow-api/internal/audit"
)

// Application roles. The API enforces a single role check, nothing more.
const (
	RoleAdmin          = "admin"
	RoleProjectManager = "project_manager"
	RoleMember         = "member"
)

// User represents an account that can authenticate and act on projects.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:32;not null;default:member" json:"role"`
	Avatar    string    `gorm:"size:512" json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuditType tags user mutations in the activity trail.
func (User) AuditType() string { return "user" }

// AuditID returns the subject identifier for audit entries.
func (u User) AuditID() uint { return u.ID }

// DisplayName labels the user in activity descriptions.
func (u User) DisplayName() string {
	return audit.FallbackDisplayName("User", u.ID, u.Name, u.Email)
}

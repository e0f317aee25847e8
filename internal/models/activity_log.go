package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is one immutable audit entry. It is never itself a tracked
// entity; the recorder refuses to observe its own writes.
type ActivityLog struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	SubjectType string         `gorm:"size:64;not null;index:idx_subject" json:"subject_type"`
	SubjectID   uint           `gorm:"not null;index:idx_subject" json:"subject_id"`
	UserID      *uint          `gorm:"index" json:"user_id"`
	Action      string         `gorm:"size:16;not null;index" json:"action"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Changes     datatypes.JSON `gorm:"type:json" json:"changes"`
	IP          string         `gorm:"size:64" json:"ip"`
	UserAgent   string         `gorm:"size:512" json:"user_agent"`
	User        *User          `gorm:"constraint:OnDelete:SET NULL" json:"user,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

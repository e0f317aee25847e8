package models

import (
	"time"

	"gorm.io/datatypes"
)

// Report is the denormalized progress rollup cached per project. It is
// overwritten wholesale every time a task of the project changes.
type Report struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	ProjectID          uint           `gorm:"uniqueIndex;not null" json:"project_id"`
	ProgressPercentage int            `gorm:"not null;default:0" json:"progress_percentage"`
	Details            datatypes.JSON `gorm:"type:json" json:"details"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

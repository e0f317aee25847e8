package dto

import (
	"encoding/json"
	"time"

	"github.com/adityawarmn/projectflow-api/internal/audit"
	"github.com/adityawarmn/projectflow-api/internal/models"
)

// ActivityLogResponse serializes one audit entry with its resolved actor.
type ActivityLogResponse struct {
	ID          uint           `json:"id"`
	SubjectType string         `json:"subject_type"`
	SubjectID   uint           `json:"subject_id"`
	UserID      *uint          `json:"user_id"`
	Action      string         `json:"action"`
	Description string         `json:"description"`
	Changes     *audit.Changes `json:"changes"`
	IP          string         `json:"ip,omitempty"`
	UserAgent   string         `json:"user_agent,omitempty"`
	User        *UserSummary   `json:"user,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewActivityLogResponse maps an audit entry onto its response shape.
func NewActivityLogResponse(entry models.ActivityLog) ActivityLogResponse {
	response := ActivityLogResponse{
		ID:          entry.ID,
		SubjectType: entry.SubjectType,
		SubjectID:   entry.SubjectID,
		UserID:      entry.UserID,
		Action:      entry.Action,
		Description: entry.Description,
		IP:          entry.IP,
		UserAgent:   entry.UserAgent,
		CreatedAt:   entry.CreatedAt,
	}

	if len(entry.Changes) > 0 {
		var changes audit.Changes
		if err := json.Unmarshal(entry.Changes, &changes); err == nil && !changes.Empty() {
			response.Changes = &changes
		}
	}

	if entry.User != nil {
		summary := NewUserSummary(*entry.User)
		response.User = &summary
	}

	return response
}

// CleanupResponse reports the outcome of a retention sweep.
type CleanupResponse struct {
	Months  int   `json:"months"`
	Deleted int64 `json:"deleted"`
}

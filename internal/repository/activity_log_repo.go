package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

// ActivityLogRepository persists audit trail entries.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context) ([]models.ActivityLog, error)
	// ExistsRecent reports whether an entry for the same subject, action
	// and actor was stored at or after the given instant. A nil actor
	// matches system-initiated entries only.
	ExistsRecent(ctx context.Context, subjectType string, subjectID uint, action string, actorID *uint, since time.Time) (bool, error)
	// DeleteOlderThan removes entries created before the cutoff and
	// returns how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository constructs the activity log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) List(ctx context.Context) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

func (r *activityLogRepository) ExistsRecent(ctx context.Context, subjectType string, subjectID uint, action string, actorID *uint, since time.Time) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{}).
		Where("subject_type = ? AND subject_id = ? AND action = ?", subjectType, subjectID, action).
		Where("created_at >= ?", since)

	if actorID != nil {
		query = query.Where("user_id = ?", *actorID)
	} else {
		query = query.Where("user_id IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (r *activityLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.ActivityLog{})
	return result.RowsAffected, result.Error
}

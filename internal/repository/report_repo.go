package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

// ReportRepository persists the denormalized progress rollups.
type ReportRepository interface {
	// Upsert creates the rollup row for the report's project, or
	// overwrites the existing one. Last write wins.
	Upsert(ctx context.Context, report *models.Report) error
	GetByProject(ctx context.Context, projectID uint) (models.Report, error)
	DeleteByProject(ctx context.Context, projectID uint) error
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs the report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Upsert(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"progress_percentage", "details", "updated_at"}),
		}).
		Create(report).Error
}

func (r *reportRepository) GetByProject(ctx context.Context, projectID uint) (models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).First(&report).Error
	return report, err
}

func (r *reportRepository) DeleteByProject(ctx context.Context, projectID uint) error {
	return r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Delete(&models.Report{}).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

// SprintRepository persists sprints.
type SprintRepository interface {
	Create(ctx context.Context, sprint *models.Sprint) error
	GetByID(ctx context.Context, id uint) (models.Sprint, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.Sprint, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Sprint, error)
	Delete(ctx context.Context, sprint *models.Sprint) error
}

type sprintRepository struct {
	db *gorm.DB
}

// NewSprintRepository constructs the sprint repository.
func NewSprintRepository(db *gorm.DB) SprintRepository {
	return &sprintRepository{db: db}
}

func (r *sprintRepository) Create(ctx context.Context, sprint *models.Sprint) error {
	return r.db.WithContext(ctx).Create(sprint).Error
}

func (r *sprintRepository) GetByID(ctx context.Context, id uint) (models.Sprint, error) {
	var sprint models.Sprint
	err := r.db.WithContext(ctx).First(&sprint, id).Error
	return sprint, err
}

func (r *sprintRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Sprint, error) {
	var sprints []models.Sprint
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("start_date ASC, id ASC").
		Find(&sprints).Error
	return sprints, err
}

func (r *sprintRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Sprint, error) {
	var sprint models.Sprint
	if err := r.db.WithContext(ctx).First(&sprint, id).Error; err != nil {
		return models.Sprint{}, err
	}

	if err := r.db.WithContext(ctx).Model(&sprint).Updates(updates).Error; err != nil {
		return models.Sprint{}, err
	}

	err := r.db.WithContext(ctx).First(&sprint, id).Error
	return sprint, err
}

func (r *sprintRepository) Delete(ctx context.Context, sprint *models.Sprint) error {
	return r.db.WithContext(ctx).Delete(sprint).Error
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

// TaskRepository persists tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	GetByID(ctx context.Context, id uint) (models.Task, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.Task, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Task, error)
	Delete(ctx context.Context, task *models.Task) error
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository constructs the task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id uint) (models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).First(&task, id).Error
	return task, err
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return models.Task{}, err
	}

	if err := r.db.WithContext(ctx).Model(&task).Updates(updates).Error; err != nil {
		return models.Task{}, err
	}

	err := r.db.WithContext(ctx).First(&task, id).Error
	return task, err
}

func (r *taskRepository) Delete(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Delete(task).Error
}

func (r *taskRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Task{}).
		Where("status = ?", status).Count(&total).Error
	return total, err
}

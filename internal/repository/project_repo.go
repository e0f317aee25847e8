package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

// ProjectRepository persists projects and their membership rows.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (models.Project, error)
	GetWithTree(ctx context.Context, id uint) (models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	ListWithTree(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Project, error)
	Delete(ctx context.Context, project *models.Project) error
	Count(ctx context.Context) (int64, error)
	SumBudget(ctx context.Context) (float64, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository constructs the project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	return project, err
}

// GetWithTree loads a project together with its ordered sprints, each
// sprint's tasks and the member list. This is the full re-read both the
// aggregator and the report query run on.
func (r *projectRepository) GetWithTree(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("Sprints", func(db *gorm.DB) *gorm.DB { return db.Order("sprints.id ASC") }).
		Preload("Sprints.Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("tasks.id ASC") }).
		Preload("Members.User").
		First(&project, id).Error
	return project, err
}

func (r *projectRepository) List(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListWithTree(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Preload("Sprints", func(db *gorm.DB) *gorm.DB { return db.Order("sprints.id ASC") }).
		Preload("Sprints.Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("tasks.id ASC") }).
		Preload("Members.User").
		Order("id ASC").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		return models.Project{}, err
	}

	if err := r.db.WithContext(ctx).Model(&project).Updates(updates).Error; err != nil {
		return models.Project{}, err
	}

	err := r.db.WithContext(ctx).First(&project, id).Error
	return project, err
}

func (r *projectRepository) Delete(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Delete(project).Error
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error
	return total, err
}

func (r *projectRepository) SumBudget(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Project{}).
		Select("COALESCE(SUM(budget), 0)").Scan(&total).Error
	return total, err
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

// ProjectMemberRepository persists project membership rows.
type ProjectMemberRepository interface {
	Create(ctx context.Context, member *models.ProjectMember) error
	GetByID(ctx context.Context, id uint) (models.ProjectMember, error)
	GetByProjectAndUser(ctx context.Context, projectID, userID uint) (models.ProjectMember, error)
	ListByProject(ctx context.Context, projectID uint) ([]models.ProjectMember, error)
	Delete(ctx context.Context, member *models.ProjectMember) error
}

type projectMemberRepository struct {
	db *gorm.DB
}

// NewProjectMemberRepository constructs the membership repository.
func NewProjectMemberRepository(db *gorm.DB) ProjectMemberRepository {
	return &projectMemberRepository{db: db}
}

func (r *projectMemberRepository) Create(ctx context.Context, member *models.ProjectMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *projectMemberRepository) GetByID(ctx context.Context, id uint) (models.ProjectMember, error) {
	var member models.ProjectMember
	err := r.db.WithContext(ctx).Preload("User").First(&member, id).Error
	return member, err
}

func (r *projectMemberRepository) GetByProjectAndUser(ctx context.Context, projectID, userID uint) (models.ProjectMember, error) {
	var member models.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	return member, err
}

func (r *projectMemberRepository) ListByProject(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&members).Error
	return members, err
}

func (r *projectMemberRepository) Delete(ctx context.Context, member *models.ProjectMember) error {
	return r.db.WithContext(ctx).Delete(member).Error
}

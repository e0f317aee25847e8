package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

func TestReportRepositoryUpsertCreatesThenOverwrites(t *testing.T) {
	db := setupTestDB(t, "report_upsert", &models.Report{})
	repo := NewReportRepository(db)

	first := models.Report{ProjectID: 5, ProgressPercentage: 40, Details: datatypes.JSON(`[{"sprint_id":1}]`)}
	require.NoError(t, repo.Upsert(context.Background(), &first))

	second := models.Report{ProjectID: 5, ProgressPercentage: 75, Details: datatypes.JSON(`[{"sprint_id":1},{"sprint_id":2}]`)}
	require.NoError(t, repo.Upsert(context.Background(), &second))

	stored, err := repo.GetByProject(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 75, stored.ProgressPercentage)
	require.JSONEq(t, `[{"sprint_id":1},{"sprint_id":2}]`, string(stored.Details))

	var total int64
	require.NoError(t, db.Model(&models.Report{}).Count(&total).Error)
	require.Equal(t, int64(1), total, "one rollup row per project")
}

func TestReportRepositoryGetByProjectMissing(t *testing.T) {
	db := setupTestDB(t, "report_missing", &models.Report{})
	repo := NewReportRepository(db)

	_, err := repo.GetByProject(context.Background(), 99)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectRepositoryTreePreloadsOrderedSprintsAndTasks(t *testing.T) {
	db := setupTestDB(t, "project_tree", &models.User{}, &models.Project{}, &models.ProjectMember{}, &models.Sprint{}, &models.Task{})
	repo := NewProjectRepository(db)

	project := models.Project{Name: "Website Revamp"}
	require.NoError(t, db.Create(&project).Error)

	user := models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.ProjectMember{ProjectID: project.ID, UserID: user.ID, Role: "manager"}).Error)

	s1 := models.Sprint{ProjectID: project.ID, Name: "Sprint 1"}
	s2 := models.Sprint{ProjectID: project.ID, Name: "Sprint 2"}
	require.NoError(t, db.Create(&s1).Error)
	require.NoError(t, db.Create(&s2).Error)

	require.NoError(t, db.Create(&models.Task{ProjectID: project.ID, SprintID: &s1.ID, Title: "Design", Status: "done", CreatedBy: user.ID}).Error)
	require.NoError(t, db.Create(&models.Task{ProjectID: project.ID, SprintID: &s1.ID, Title: "Build", Status: "todo", CreatedBy: user.ID}).Error)

	loaded, err := repo.GetWithTree(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Sprints, 2)
	require.Equal(t, "Sprint 1", loaded.Sprints[0].Name)
	require.Len(t, loaded.Sprints[0].Tasks, 2)
	require.Empty(t, loaded.Sprints[1].Tasks)
	require.Len(t, loaded.Members, 1)
	require.NotNil(t, loaded.Members[0].User)
	require.Equal(t, "Alice", loaded.Members[0].User.Name)
}

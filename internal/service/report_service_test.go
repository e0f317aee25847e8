package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/models"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

func reportTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	return redis.NewClient(&redis.Options{Addr: server.Addr()})
}

func seedProjectTree(t *testing.T, db *gorm.DB) models.Project {
	t.Helper()

	project := models.Project{Name: "Website Revamp", Status: "active"}
	require.NoError(t, db.Create(&project).Error)

	sprint1 := models.Sprint{ProjectID: project.ID, Name: "Sprint 1"}
	sprint2 := models.Sprint{ProjectID: project.ID, Name: "Sprint 2"}
	require.NoError(t, db.Create(&sprint1).Error)
	require.NoError(t, db.Create(&sprint2).Error)

	tasks := []models.Task{
		{ProjectID: project.ID, SprintID: &sprint1.ID, Title: "A", Status: "todo"},
		{ProjectID: project.ID, SprintID: &sprint1.ID, Title: "B", Status: "done"},
		{ProjectID: project.ID, SprintID: &sprint1.ID, Title: "C", Status: "review"},
		{ProjectID: project.ID, SprintID: &sprint2.ID, Title: "D", Status: "in_progress"},
	}
	for i := range tasks {
		require.NoError(t, db.Create(&tasks[i]).Error)
	}

	return project
}

func TestReportServiceSyncProjectUpsertsRollup(t *testing.T) {
	db := setupServiceDB(t, "report_sync",
		&models.User{}, &models.Project{}, &models.ProjectMember{}, &models.Sprint{}, &models.Task{}, &models.Report{})
	project := seedProjectTree(t, db)

	projects := repository.NewProjectRepository(db)
	reports := repository.NewReportRepository(db)
	svc := NewReportService(projects, reports, nil, time.Minute, testLogger())

	require.NoError(t, svc.SyncProject(context.Background(), project.ID))

	rollup, err := reports.GetByProject(context.Background(), project.ID)
	require.NoError(t, err)
	// Tasks carry 0, 100, 75 and 50; every task weighs the same.
	require.Equal(t, 56, rollup.ProgressPercentage)

	var details []dto.SprintReport
	require.NoError(t, json.Unmarshal(rollup.Details, &details))
	require.Len(t, details, 2)
	require.Equal(t, "Sprint 1", details[0].SprintName)
	require.Equal(t, 58, details[0].SprintProgress)
	require.Equal(t, 50, details[1].SprintProgress)
	require.Len(t, details[0].Tasks, 3)

	// A second sync overwrites the single rollup row.
	require.NoError(t, db.Model(&models.Task{}).Where("title = ?", "A").Update("status", "done").Error)
	require.NoError(t, svc.SyncProject(context.Background(), project.ID))

	var count int64
	require.NoError(t, db.Model(&models.Report{}).Where("project_id = ?", project.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	rollup, err = reports.GetByProject(context.Background(), project.ID)
	require.NoError(t, err)
	require.Equal(t, 81, rollup.ProgressPercentage)
}

func TestReportServiceSyncMissingProjectDropsRollup(t *testing.T) {
	db := setupServiceDB(t, "report_sync_missing",
		&models.User{}, &models.Project{}, &models.ProjectMember{}, &models.Sprint{}, &models.Task{}, &models.Report{})

	projects := repository.NewProjectRepository(db)
	reports := repository.NewReportRepository(db)
	svc := NewReportService(projects, reports, nil, time.Minute, testLogger())

	// A rollup left behind by a project that no longer exists.
	require.NoError(t, db.Create(&models.Report{ProjectID: 99, ProgressPercentage: 40}).Error)

	require.NoError(t, svc.SyncProject(context.Background(), 99))

	_, err := reports.GetByProject(context.Background(), 99)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReportServiceGetCachesAndInvalidates(t *testing.T) {
	db := setupServiceDB(t, "report_cache",
		&models.User{}, &models.Project{}, &models.ProjectMember{}, &models.Sprint{}, &models.Task{}, &models.Report{})
	project := seedProjectTree(t, db)

	projects := repository.NewProjectRepository(db)
	reports := repository.NewReportRepository(db)
	svc := NewReportService(projects, reports, reportTestRedis(t), time.Minute, testLogger())

	first, hit, err := svc.Get(context.Background(), project.ID)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, 56, first.ProgressPercentage)

	second, hit, err := svc.Get(context.Background(), project.ID)
	require.NoError(t, err)
	require.True(t, hit)
	require.Equal(t, first, second)

	// A sync drops the cached tree so the next read sees fresh data.
	require.NoError(t, db.Model(&models.Task{}).Where("title = ?", "A").Update("status", "done").Error)
	require.NoError(t, svc.SyncProject(context.Background(), project.ID))

	third, hit, err := svc.Get(context.Background(), project.ID)
	require.NoError(t, err)
	require.False(t, hit)
	require.Equal(t, 81, third.ProgressPercentage)
}

func TestReportServiceGetMissingProject(t *testing.T) {
	db := setupServiceDB(t, "report_missing",
		&models.User{}, &models.Project{}, &models.ProjectMember{}, &models.Sprint{}, &models.Task{}, &models.Report{})

	projects := repository.NewProjectRepository(db)
	reports := repository.NewReportRepository(db)
	svc := NewReportService(projects, reports, nil, time.Minute, testLogger())

	_, _, err := svc.Get(context.Background(), 42)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestReportServiceListBuildsAllTrees(t *testing.T) {
	db := setupServiceDB(t, "report_list",
		&models.User{}, &models.Project{}, &models.ProjectMember{}, &models.Sprint{}, &models.Task{}, &models.Report{})
	seedProjectTree(t, db)

	empty := models.Project{Name: "Greenfield", Status: "active"}
	require.NoError(t, db.Create(&empty).Error)

	projects := repository.NewProjectRepository(db)
	reports := repository.NewReportRepository(db)
	svc := NewReportService(projects, reports, nil, time.Minute, testLogger())

	trees, hit, err := svc.List(context.Background())
	require.NoError(t, err)
	require.False(t, hit)
	require.Len(t, trees, 2)
	require.Equal(t, 56, trees[0].ProgressPercentage)
	// A project without tasks reports zero progress.
	require.Equal(t, 0, trees[1].ProgressPercentage)
	require.Empty(t, trees[1].Details)
}

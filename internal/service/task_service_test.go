package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/audit"
	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/models"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

type failingReports struct {
	err error
}

func (f failingReports) SyncProject(ctx context.Context, projectID uint) error { return f.err }
func (f failingReports) List(ctx context.Context) ([]dto.ProjectReport, bool, error) {
	return nil, false, f.err
}
func (f failingReports) Get(ctx context.Context, projectID uint) (dto.ProjectReport, bool, error) {
	return dto.ProjectReport{}, false, f.err
}

type taskFixture struct {
	svc      TaskService
	db       *gorm.DB
	reports  repository.ReportRepository
	activity *memoryActivityRepo
	project  models.Project
	sprint   models.Sprint
}

func newTaskFixture(t *testing.T, name string) taskFixture {
	t.Helper()
	db := setupServiceDB(t, name,
		&models.User{}, &models.Project{}, &models.ProjectMember{}, &models.Sprint{}, &models.Task{}, &models.Report{})

	project := models.Project{Name: "Website Revamp", Status: "active"}
	require.NoError(t, db.Create(&project).Error)
	sprint := models.Sprint{ProjectID: project.ID, Name: "Sprint 1"}
	require.NoError(t, db.Create(&sprint).Error)

	activity := &memoryActivityRepo{}
	recorder := NewActivityRecorder(activity, testRegistry(), testLogger())

	projects := repository.NewProjectRepository(db)
	reports := repository.NewReportRepository(db)
	reportSvc := NewReportService(projects, reports, nil, time.Minute, testLogger())

	svc := NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewSprintRepository(db),
		projects,
		reportSvc,
		recorder,
		validator.New(),
		testLogger(),
	)

	return taskFixture{svc: svc, db: db, reports: reports, activity: activity, project: project, sprint: sprint}
}

func TestTaskServiceCreateSyncsRollup(t *testing.T) {
	fx := newTaskFixture(t, "task_create")
	ctx := actorContext(3, "Alice")

	task, err := fx.svc.Create(ctx, fx.project.ID, dto.TaskCreateRequest{
		SprintID: &fx.sprint.ID,
		Title:    "Fix login bug",
		Status:   "in_progress",
	})
	require.NoError(t, err)
	require.Equal(t, 50, task.ProgressPercentage)

	rollup, err := fx.reports.GetByProject(context.Background(), fx.project.ID)
	require.NoError(t, err)
	require.Equal(t, 50, rollup.ProgressPercentage)

	require.Len(t, fx.activity.entries, 1)
	require.Equal(t, "task", fx.activity.entries[0].SubjectType)
	require.Equal(t, audit.ActionCreated, fx.activity.entries[0].Action)
}

func TestTaskServiceStatusUpdateRecordsAndSyncs(t *testing.T) {
	fx := newTaskFixture(t, "task_update")

	created, err := fx.svc.Create(actorContext(3, "Alice"), fx.project.ID, dto.TaskCreateRequest{
		SprintID: &fx.sprint.ID,
		Title:    "Fix login bug",
	})
	require.NoError(t, err)

	// Push the row outside the creation grace period.
	require.NoError(t, fx.db.Model(&models.Task{}).Where("id = ?", created.ID).
		Update("created_at", time.Now().Add(-time.Minute)).Error)

	status := "done"
	updated, err := fx.svc.Update(actorContext(3, "Alice"), fx.project.ID, created.ID, dto.TaskUpdateRequest{
		Status: &status,
	})
	require.NoError(t, err)
	require.Equal(t, 100, updated.ProgressPercentage)

	rollup, err := fx.reports.GetByProject(context.Background(), fx.project.ID)
	require.NoError(t, err)
	require.Equal(t, 100, rollup.ProgressPercentage)

	require.Len(t, fx.activity.entries, 2)
	entry := fx.activity.entries[1]
	require.Equal(t, audit.ActionUpdated, entry.Action)
	require.Equal(t, `Alice updated Task "Fix login bug" (progress_percentage: 0 → 100, status: todo → done)`, entry.Description)
}

func TestTaskServiceDeleteSyncsRollup(t *testing.T) {
	fx := newTaskFixture(t, "task_delete")
	ctx := actorContext(3, "Alice")

	keep, err := fx.svc.Create(ctx, fx.project.ID, dto.TaskCreateRequest{SprintID: &fx.sprint.ID, Title: "Keep", Status: "done"})
	require.NoError(t, err)
	drop, err := fx.svc.Create(ctx, fx.project.ID, dto.TaskCreateRequest{SprintID: &fx.sprint.ID, Title: "Drop", Status: "todo"})
	require.NoError(t, err)

	require.NoError(t, fx.svc.Delete(ctx, fx.project.ID, drop.ID))

	rollup, err := fx.reports.GetByProject(context.Background(), fx.project.ID)
	require.NoError(t, err)
	require.Equal(t, 100, rollup.ProgressPercentage)

	_, err = fx.svc.Get(context.Background(), fx.project.ID, drop.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)

	_, err = fx.svc.Get(context.Background(), fx.project.ID, keep.ID)
	require.NoError(t, err)
}

func TestTaskServiceAggregationFailurePropagates(t *testing.T) {
	db := setupServiceDB(t, "task_agg_failure",
		&models.User{}, &models.Project{}, &models.ProjectMember{}, &models.Sprint{}, &models.Task{}, &models.Report{})

	project := models.Project{Name: "Website Revamp", Status: "active"}
	require.NoError(t, db.Create(&project).Error)

	aggErr := errors.New("rollup rebuild failed")
	svc := NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewSprintRepository(db),
		repository.NewProjectRepository(db),
		failingReports{err: aggErr},
		NewActivityRecorder(&memoryActivityRepo{}, testRegistry(), testLogger()),
		validator.New(),
		testLogger(),
	)

	_, err := svc.Create(context.Background(), project.ID, dto.TaskCreateRequest{Title: "Fix login bug"})
	require.ErrorIs(t, err, aggErr)
}

func TestTaskServiceRejectsForeignSprint(t *testing.T) {
	fx := newTaskFixture(t, "task_foreign_sprint")

	other := models.Project{Name: "Other", Status: "active"}
	require.NoError(t, fx.db.Create(&other).Error)
	foreign := models.Sprint{ProjectID: other.ID, Name: "Elsewhere"}
	require.NoError(t, fx.db.Create(&foreign).Error)

	_, err := fx.svc.Create(context.Background(), fx.project.ID, dto.TaskCreateRequest{
		SprintID: &foreign.ID,
		Title:    "Misfiled",
	})
	require.ErrorIs(t, err, ErrSprintMismatch)
}

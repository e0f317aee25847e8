package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/models"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

func newProjectFixture(t *testing.T, name string) (ProjectService, *memoryActivityRepo, *gorm.DB) {
	t.Helper()
	db := setupServiceDB(t, name,
		&models.User{}, &models.Project{}, &models.ProjectMember{}, &models.Sprint{}, &models.Task{}, &models.Report{})

	activity := &memoryActivityRepo{}
	recorder := NewActivityRecorder(activity, testRegistry(), testLogger())

	projects := repository.NewProjectRepository(db)
	reports := NewReportService(projects, repository.NewReportRepository(db), nil, time.Minute, testLogger())

	svc := NewProjectService(
		projects,
		repository.NewProjectMemberRepository(db),
		repository.NewUserRepository(db),
		reports,
		recorder,
		validator.New(),
		testLogger(),
	)
	return svc, activity, db
}

func TestProjectServiceCreateSanitizesDescription(t *testing.T) {
	svc, activity, _ := newProjectFixture(t, "project_create")

	created, err := svc.Create(actorContext(3, "Alice"), dto.ProjectCreateRequest{
		Name:        "Website Revamp",
		Description: `Launch plan <script>alert("x")</script>`,
	})
	require.NoError(t, err)
	require.Equal(t, "active", created.Status)
	require.NotContains(t, created.Description, "<script>")
	require.Contains(t, created.Description, "Launch plan")

	require.Len(t, activity.entries, 1)
	require.Equal(t, `Alice created Project "Website Revamp"`, activity.entries[0].Description)
}

func TestProjectServiceUpdateMissing(t *testing.T) {
	svc, _, _ := newProjectFixture(t, "project_update_missing")

	name := "Renamed"
	_, err := svc.Update(context.Background(), 42, dto.ProjectUpdateRequest{Name: &name})
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectServiceDeleteRemovesRollup(t *testing.T) {
	svc, _, db := newProjectFixture(t, "project_delete_rollup")

	project, err := svc.Create(context.Background(), dto.ProjectCreateRequest{Name: "Website Revamp"})
	require.NoError(t, err)

	sprint := models.Sprint{ProjectID: project.ID, Name: "Sprint 1"}
	require.NoError(t, db.Create(&sprint).Error)
	task := models.Task{ProjectID: project.ID, SprintID: &sprint.ID, Title: "A", Status: "in_progress"}
	require.NoError(t, db.Create(&task).Error)

	reports := repository.NewReportRepository(db)
	reportSvc := NewReportService(repository.NewProjectRepository(db), reports, nil, time.Minute, testLogger())
	require.NoError(t, reportSvc.SyncProject(context.Background(), project.ID))

	_, err = reports.GetByProject(context.Background(), project.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), project.ID))

	_, err = reports.GetByProject(context.Background(), project.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectServiceDeleteCascadesUnassignedTasks(t *testing.T) {
	svc, _, db := newProjectFixture(t, "project_delete_tasks")

	project, err := svc.Create(context.Background(), dto.ProjectCreateRequest{Name: "Website Revamp"})
	require.NoError(t, err)

	// A backlog task that was never pulled into a sprint.
	task := models.Task{ProjectID: project.ID, Title: "Backlog item", Status: "todo"}
	require.NoError(t, db.Create(&task).Error)

	require.NoError(t, svc.Delete(context.Background(), project.ID))

	var count int64
	require.NoError(t, db.Model(&models.Task{}).Where("project_id = ?", project.ID).Count(&count).Error)
	require.Equal(t, int64(0), count)
}

func TestProjectServiceMemberLifecycle(t *testing.T) {
	svc, activity, db := newProjectFixture(t, "project_members")

	user := models.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	project, err := svc.Create(context.Background(), dto.ProjectCreateRequest{Name: "Website Revamp"})
	require.NoError(t, err)

	member, err := svc.AddMember(context.Background(), project.ID, dto.MemberAddRequest{UserID: user.ID})
	require.NoError(t, err)
	require.Equal(t, "member", member.Role)
	require.NotNil(t, member.User)
	require.Equal(t, "Bob", member.User.Name)

	_, err = svc.AddMember(context.Background(), project.ID, dto.MemberAddRequest{UserID: user.ID})
	require.ErrorIs(t, err, ErrMemberExists)

	_, err = svc.AddMember(context.Background(), project.ID, dto.MemberAddRequest{UserID: 99})
	require.ErrorIs(t, err, ErrUserNotFound)

	members, err := svc.ListMembers(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)

	require.NoError(t, svc.RemoveMember(context.Background(), project.ID, member.ID))

	members, err = svc.ListMembers(context.Background(), project.ID)
	require.NoError(t, err)
	require.Empty(t, members)

	// create project, add member, remove member
	require.Len(t, activity.entries, 3)
	require.Equal(t, "project_member", activity.entries[1].SubjectType)
	require.Equal(t, "deleted", activity.entries[2].Action)
}

func TestProjectServiceRemoveMemberWrongProject(t *testing.T) {
	svc, _, db := newProjectFixture(t, "project_member_wrong")

	user := models.User{Name: "Bob", Email: "bob@example.com", Password: "x"}
	require.NoError(t, db.Create(&user).Error)

	first, err := svc.Create(context.Background(), dto.ProjectCreateRequest{Name: "First"})
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), dto.ProjectCreateRequest{Name: "Second"})
	require.NoError(t, err)

	member, err := svc.AddMember(context.Background(), first.ID, dto.MemberAddRequest{UserID: user.ID})
	require.NoError(t, err)

	err = svc.RemoveMember(context.Background(), second.ID, member.ID)
	require.ErrorIs(t, err, ErrMemberNotFound)
}

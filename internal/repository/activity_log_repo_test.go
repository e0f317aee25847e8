package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/models"
)

func setupTestDB(t *testing.T, name string, entities ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))
	return db
}

func TestActivityLogRepositoryListNewestFirst(t *testing.T) {
	db := setupTestDB(t, "activity_list", &models.User{}, &models.ActivityLog{})
	repo := NewActivityLogRepository(db)

	actor := models.User{Name: "Alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(&actor).Error)

	old := models.ActivityLog{SubjectType: "task", SubjectID: 1, Action: "created", Description: "first", UserID: &actor.ID}
	recent := models.ActivityLog{SubjectType: "task", SubjectID: 1, Action: "updated", Description: "second", UserID: &actor.ID}
	require.NoError(t, db.Create(&old).Error)
	require.NoError(t, db.Create(&recent).Error)
	require.NoError(t, db.Model(&old).Update("created_at", time.Now().Add(-time.Hour)).Error)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "second", entries[0].Description)
	require.NotNil(t, entries[0].User)
	require.Equal(t, "Alice", entries[0].User.Name)
}

func TestActivityLogRepositoryExistsRecent(t *testing.T) {
	db := setupTestDB(t, "activity_exists", &models.User{}, &models.ActivityLog{})
	repo := NewActivityLogRepository(db)

	actorID := uint(7)
	entry := models.ActivityLog{SubjectType: "task", SubjectID: 3, Action: "updated", Description: "x", UserID: &actorID}
	require.NoError(t, db.Create(&entry).Error)

	since := time.Now().Add(-2 * time.Second)

	exists, err := repo.ExistsRecent(context.Background(), "task", 3, "updated", &actorID, since)
	require.NoError(t, err)
	require.True(t, exists)

	otherActor := uint(9)
	exists, err = repo.ExistsRecent(context.Background(), "task", 3, "updated", &otherActor, since)
	require.NoError(t, err)
	require.False(t, exists)

	exists, err = repo.ExistsRecent(context.Background(), "task", 3, "updated", nil, since)
	require.NoError(t, err)
	require.False(t, exists, "system actor must not match a user-attributed entry")

	exists, err = repo.ExistsRecent(context.Background(), "task", 3, "deleted", &actorID, since)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestActivityLogRepositoryExistsRecentIgnoresOlderEntries(t *testing.T) {
	db := setupTestDB(t, "activity_window", &models.User{}, &models.ActivityLog{})
	repo := NewActivityLogRepository(db)

	entry := models.ActivityLog{SubjectType: "project", SubjectID: 1, Action: "updated", Description: "x"}
	require.NoError(t, db.Create(&entry).Error)
	require.NoError(t, db.Model(&entry).Update("created_at", time.Now().Add(-10*time.Second)).Error)

	exists, err := repo.ExistsRecent(context.Background(), "project", 1, "updated", nil, time.Now().Add(-2*time.Second))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestActivityLogRepositoryDeleteOlderThan(t *testing.T) {
	db := setupTestDB(t, "activity_retention", &models.User{}, &models.ActivityLog{})
	repo := NewActivityLogRepository(db)

	now := time.Now()
	stale1 := models.ActivityLog{SubjectType: "task", SubjectID: 1, Action: "created", Description: "stale"}
	stale2 := models.ActivityLog{SubjectType: "task", SubjectID: 2, Action: "created", Description: "stale"}
	fresh := models.ActivityLog{SubjectType: "task", SubjectID: 3, Action: "created", Description: "fresh"}
	require.NoError(t, db.Create(&stale1).Error)
	require.NoError(t, db.Create(&stale2).Error)
	require.NoError(t, db.Create(&fresh).Error)
	require.NoError(t, db.Model(&stale1).Update("created_at", now.AddDate(0, -4, 0)).Error)
	require.NoError(t, db.Model(&stale2).Update("created_at", now.AddDate(0, -3, -1)).Error)

	deleted, err := repo.DeleteOlderThan(context.Background(), now.AddDate(0, -3, 0))
	require.NoError(t, err)
	require.Equal(t, int64(2), deleted)

	entries, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "fresh", entries[0].Description)
}

package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDiffReturnsNilMapsWhenNothingChanged(t *testing.T) {
	before := map[string]interface{}{"title": "Fix login bug", "status": "todo", "estimate": float64(5)}
	after := map[string]interface{}{"title": "Fix login bug", "status": "todo", "estimate": "5"}

	changes := Diff(before, after)
	require.Nil(t, changes.Old)
	require.Nil(t, changes.New)
	require.True(t, changes.Empty())
}

func TestDiffIgnoresTimestampColumns(t *testing.T) {
	before := map[string]interface{}{
		"status":     "todo",
		"created_at": "2026-01-01T10:00:00Z",
		"updated_at": "2026-01-01T10:00:00Z",
		"deleted_at": nil,
	}
	after := map[string]interface{}{
		"status":     "todo",
		"created_at": "2026-01-01T10:00:00Z",
		"updated_at": "2026-02-15T08:30:00Z",
		"deleted_at": "2026-02-15T08:30:00Z",
	}

	changes := Diff(before, after)
	require.True(t, changes.Empty())
}

func TestDiffReportsChangedFieldsOnBothSides(t *testing.T) {
	before := map[string]interface{}{"status": "todo", "priority": "low", "title": "Fix login bug"}
	after := map[string]interface{}{"status": "in_progress", "priority": "low", "title": "Fix login bug"}

	changes := Diff(before, after)
	require.Equal(t, map[string]interface{}{"status": "todo"}, changes.Old)
	require.Equal(t, map[string]interface{}{"status": "in_progress"}, changes.New)
}

func TestDiffCreateCarriesNewSideOnly(t *testing.T) {
	after := map[string]interface{}{"title": "Sprint 1", "project_id": float64(3)}

	changes := Diff(map[string]interface{}{}, after)
	require.Nil(t, changes.Old)
	require.Equal(t, after, changes.New)
}

func TestDiffDeleteCarriesOldSideOnly(t *testing.T) {
	before := map[string]interface{}{"title": "Sprint 1", "project_id": float64(3)}

	changes := Diff(before, map[string]interface{}{})
	require.Equal(t, before, changes.Old)
	require.Nil(t, changes.New)
}

func TestDiffTreatsNilAndEmptyAsEqual(t *testing.T) {
	before := map[string]interface{}{"description": nil, "budget": float64(0)}
	after := map[string]interface{}{"description": "", "budget": nil}

	changes := Diff(before, after)
	require.True(t, changes.Empty())
}

func TestSnapshotUsesJSONFieldNames(t *testing.T) {
	type row struct {
		ID        uint      `json:"id"`
		Title     string    `json:"title"`
		CreatedAt time.Time `json:"created_at"`
	}

	fields, err := Snapshot(row{ID: 7, Title: "Fix login bug"})
	require.NoError(t, err)
	require.Equal(t, float64(7), fields["id"])
	require.Equal(t, "Fix login bug", fields["title"])
	require.Contains(t, fields, "created_at")
}

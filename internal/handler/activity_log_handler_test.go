package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/handler"
	"github.com/adityawarmn/projectflow-api/internal/middleware"
)

type stubActivityLogService struct {
	entries []dto.ActivityLogResponse
	cleanup dto.CleanupResponse
	err     error
}

func (s stubActivityLogService) List(context.Context) ([]dto.ActivityLogResponse, error) {
	return s.entries, s.err
}

func (s stubActivityLogService) Cleanup(ctx context.Context, months int) (dto.CleanupResponse, error) {
	if s.err != nil {
		return dto.CleanupResponse{}, s.err
	}
	result := s.cleanup
	if months > 0 {
		result.Months = months
	}
	return result, nil
}

func TestActivityLogHandlerList(t *testing.T) {
	app := fiber.New()
	entries := []dto.ActivityLogResponse{
		{ID: 1, SubjectType: "task", SubjectID: 7, Action: "updated", Description: `Alice updated Task "Fix login bug" (status: todo → in_progress)`},
	}
	h := handler.NewActivityLogHandler(stubActivityLogService{entries: entries}, zerolog.Nop())
	h.Register(app.Group("/api/v1/activity-logs"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/activity-logs", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data []dto.ActivityLogResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	require.Equal(t, "task", body.Data[0].SubjectType)
}

func TestActivityLogHandlerCleanupRequiresAdmin(t *testing.T) {
	app := fiber.New()
	h := handler.NewActivityLogHandler(stubActivityLogService{cleanup: dto.CleanupResponse{Months: 3, Deleted: 2}}, zerolog.Nop())

	admin := app.Group("/api/v1/admin/activity-logs", func(c *fiber.Ctx) error {
		c.Locals("user_role", c.Get("X-Test-Role"))
		return c.Next()
	}, middleware.RequireRole("admin"))
	h.RegisterAdmin(admin)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/activity-logs/cleanup", nil)
	req.Header.Set("X-Test-Role", "member")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/activity-logs/cleanup?months=6", nil)
	req.Header.Set("X-Test-Role", "admin")
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.CleanupResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 6, body.Data.Months)
}

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
	"github.com/adityawarmn/projectflow-api/internal/service"
)

type stubReportService struct {
	report dto.ProjectReport
	cached bool
	err    error
}

func (s stubReportService) SyncProject(context.Context, uint) error { return s.err }

func (s stubReportService) List(context.Context) ([]dto.ProjectReport, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	return []dto.ProjectReport{s.report}, s.cached, nil
}

func (s stubReportService) Get(context.Context, uint) (dto.ProjectReport, bool, error) {
	if s.err != nil {
		return dto.ProjectReport{}, false, s.err
	}
	return s.report, s.cached, nil
}

func TestReportHandlerGetSetsCacheHeader(t *testing.T) {
	app := fiber.New()
	report := dto.ProjectReport{
		ProjectID:          1,
		ProjectName:        "Website Revamp",
		ProgressPercentage: 58,
	}
	h := handler.NewReportHandler(stubReportService{report: report, cached: true}, zerolog.Nop())
	h.Register(app.Group("/api/v1/reports"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "true", resp.Header.Get("X-Cache-Hit"))

	var body struct {
		Success bool              `json:"success"`
		Data    dto.ProjectReport `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body.Success)
	require.Equal(t, 58, body.Data.ProgressPercentage)
}

func TestReportHandlerListMissHeader(t *testing.T) {
	app := fiber.New()
	h := handler.NewReportHandler(stubReportService{}, zerolog.Nop())
	h.Register(app.Group("/api/v1/reports"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "false", resp.Header.Get("X-Cache-Hit"))
}

func TestReportHandlerGetMissingProject(t *testing.T) {
	app := fiber.New()
	h := handler.NewReportHandler(stubReportService{err: service.ErrProjectNotFound}, zerolog.Nop())
	h.Register(app.Group("/api/v1/reports"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/9", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestReportHandlerRejectsBadID(t *testing.T) {
	app := fiber.New()
	h := handler.NewReportHandler(stubReportService{}, zerolog.Nop())
	h.Register(app.Group("/api/v1/reports"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/adityawarmn/projectflow-api/internal/service"
	"github.com/adityawarmn/projectflow-api/internal/utils"
)

// cacheHitHeader tells clients whether the progress tree came from cache.
const cacheHitHeader = "X-Cache-Hit"

// ReportHandler exposes the progress report endpoints.
type ReportHandler struct {
	service service.ReportService
	logger  zerolog.Logger
}

// NewReportHandler constructs the report handler.
func NewReportHandler(service service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register wires report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
}

func (h *ReportHandler) list(c *fiber.Ctx) error {
	reports, cached, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build reports")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build reports")
	}

	c.Set(cacheHitHeader, cacheFlag(cached))
	return utils.SendSuccess(c, "reports retrieved", reports)
}

func (h *ReportHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	report, cached, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build report")
	}

	c.Set(cacheHitHeader, cacheFlag(cached))
	return utils.SendSuccess(c, "report retrieved", report)
}

func cacheFlag(cached bool) string {
	if cached {
		return "true"
	}
	return "false"
}

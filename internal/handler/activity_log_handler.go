package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/adityawarmn/projectflow-api/internal/service"
	"github.com/adityawarmn/projectflow-api/internal/utils"
)

// ActivityLogHandler exposes the audit trail and its retention sweep.
type ActivityLogHandler struct {
	service service.ActivityLogService
	logger  zerolog.Logger
}

// NewActivityLogHandler constructs the activity log handler.
func NewActivityLogHandler(service service.ActivityLogService, logger zerolog.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_log_handler").Logger(),
	}
}

// Register wires the read route.
func (h *ActivityLogHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

// RegisterAdmin wires the retention sweep route.
func (h *ActivityLogHandler) RegisterAdmin(router fiber.Router) {
	router.Post("/cleanup", h.cleanup)
}

func (h *ActivityLogHandler) list(c *fiber.Ctx) error {
	entries, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list activity logs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list activity logs")
	}
	return utils.SendSuccess(c, "activity logs retrieved", entries)
}

func (h *ActivityLogHandler) cleanup(c *fiber.Ctx) error {
	months, err := parseQueryInt(c, "months")
	if err != nil || months < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid months value")
	}

	result, err := h.service.Cleanup(c.UserContext(), months)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to clean up activity logs")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to clean up activity logs")
	}
	return utils.SendSuccess(c, "activity logs cleaned up", result)
}

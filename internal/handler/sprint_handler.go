package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/service"
	"github.com/adityawarmn/projectflow-api/internal/utils"
)

// SprintHandler exposes sprint endpoints nested under a project.
type SprintHandler struct {
	service service.SprintService
	logger  zerolog.Logger
}

// NewSprintHandler constructs the sprint handler.
func NewSprintHandler(service service.SprintService, logger zerolog.Logger) *SprintHandler {
	return &SprintHandler{
		service: service,
		logger:  logger.With().Str("component", "sprint_handler").Logger(),
	}
}

// Register wires sprint routes onto a project-scoped group.
func (h *SprintHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:sprintId", h.get)
	router.Put("/:sprintId", h.update)
	router.Delete("/:sprintId", h.delete)
}

func (h *SprintHandler) list(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	sprints, err := h.service.ListByProject(c.UserContext(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list sprints")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list sprints")
	}
	return utils.SendSuccess(c, "sprints retrieved", sprints)
}

func (h *SprintHandler) create(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var payload dto.SprintCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	sprint, err := h.service.Create(c.UserContext(), projectID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid sprint payload")
		}
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create sprint")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create sprint")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "sprint created", sprint)
}

func (h *SprintHandler) get(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}
	sprintID, err := parseIDParam(c, "sprintId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid sprint id")
	}

	sprint, err := h.service.Get(c.UserContext(), projectID, sprintID)
	if err != nil {
		if errors.Is(err, service.ErrSprintNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "sprint not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load sprint")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load sprint")
	}
	return utils.SendSuccess(c, "sprint retrieved", sprint)
}

func (h *SprintHandler) update(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}
	sprintID, err := parseIDParam(c, "sprintId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid sprint id")
	}

	var payload dto.SprintUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	sprint, err := h.service.Update(c.UserContext(), projectID, sprintID, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid sprint payload")
		}
		if errors.Is(err, service.ErrSprintNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "sprint not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update sprint")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update sprint")
	}
	return utils.SendSuccess(c, "sprint updated", sprint)
}

func (h *SprintHandler) delete(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}
	sprintID, err := parseIDParam(c, "sprintId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid sprint id")
	}

	if err := h.service.Delete(c.UserContext(), projectID, sprintID); err != nil {
		if errors.Is(err, service.ErrSprintNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "sprint not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete sprint")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete sprint")
	}
	return utils.SendSuccess(c, "sprint deleted", nil)
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/service"
	"github.com/adityawarmn/projectflow-api/internal/utils"
)

// TaskHandler exposes task endpoints nested under a project.
type TaskHandler struct {
	service service.TaskService
	logger  zerolog.Logger
}

// NewTaskHandler constructs the task handler.
func NewTaskHandler(service service.TaskService, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{
		service: service,
		logger:  logger.With().Str("component", "task_handler").Logger(),
	}
}

// Register wires task routes onto a project-scoped group.
func (h *TaskHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:taskId", h.get)
	router.Put("/:taskId", h.update)
	router.Delete("/:taskId", h.delete)
}

func (h *TaskHandler) list(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	tasks, err := h.service.ListByProject(c.UserContext(), projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list tasks")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list tasks")
	}
	return utils.SendSuccess(c, "tasks retrieved", tasks)
}

func (h *TaskHandler) create(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var payload dto.TaskCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	task, err := h.service.Create(c.UserContext(), projectID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid task payload")
		case errors.Is(err, service.ErrProjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		case errors.Is(err, service.ErrSprintNotFound), errors.Is(err, service.ErrSprintMismatch):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "sprint does not belong to the project")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to create task")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to create task")
		}
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "task created", task)
}

func (h *TaskHandler) get(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}
	taskID, err := parseIDParam(c, "taskId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid task id")
	}

	task, err := h.service.Get(c.UserContext(), projectID, taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "task not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load task")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load task")
	}
	return utils.SendSuccess(c, "task retrieved", task)
}

func (h *TaskHandler) update(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}
	taskID, err := parseIDParam(c, "taskId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid task id")
	}

	var payload dto.TaskUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	task, err := h.service.Update(c.UserContext(), projectID, taskID, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid task payload")
		case errors.Is(err, service.ErrTaskNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "task not found")
		case errors.Is(err, service.ErrSprintNotFound), errors.Is(err, service.ErrSprintMismatch):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, "sprint does not belong to the project")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update task")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update task")
		}
	}
	return utils.SendSuccess(c, "task updated", task)
}

func (h *TaskHandler) delete(c *fiber.Ctx) error {
	projectID, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}
	taskID, err := parseIDParam(c, "taskId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid task id")
	}

	if err := h.service.Delete(c.UserContext(), projectID, taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "task not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete task")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete task")
	}
	return utils.SendSuccess(c, "task deleted", nil)
}

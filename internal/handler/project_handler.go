package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/service"
	"github.com/adityawarmn/projectflow-api/internal/utils"
)

// ProjectHandler exposes project and membership endpoints.
type ProjectHandler struct {
	service service.ProjectService
	logger  zerolog.Logger
}

// NewProjectHandler constructs the project handler.
func NewProjectHandler(service service.ProjectService, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  logger.With().Str("component", "project_handler").Logger(),
	}
}

// Register wires project routes.
func (h *ProjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)

	router.Get("/:id/members", h.listMembers)
	router.Post("/:id/members", h.addMember)
	router.Delete("/:id/members/:memberId", h.removeMember)
}

func (h *ProjectHandler) list(c *fiber.Ctx) error {
	projects, err := h.service.List(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list projects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list projects")
	}
	return utils.SendSuccess(c, "projects retrieved", projects)
}

func (h *ProjectHandler) create(c *fiber.Ctx) error {
	var payload dto.ProjectCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	project, err := h.service.Create(c.UserContext(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid project payload")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create project")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "project created", project)
}

func (h *ProjectHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	project, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load project")
	}
	return utils.SendSuccess(c, "project retrieved", project)
}

func (h *ProjectHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var payload dto.ProjectUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	project, err := h.service.Update(c.UserContext(), id, payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid project payload")
		}
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to update project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update project")
	}
	return utils.SendSuccess(c, "project updated", project)
}

func (h *ProjectHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete project")
	}
	return utils.SendSuccess(c, "project deleted", nil)
}

func (h *ProjectHandler) listMembers(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	members, err := h.service.ListMembers(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list project members")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list project members")
	}
	return utils.SendSuccess(c, "project members retrieved", members)
}

func (h *ProjectHandler) addMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var payload dto.MemberAddRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	member, err := h.service.AddMember(c.UserContext(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid member payload")
		case errors.Is(err, service.ErrProjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrMemberExists):
			return utils.SendError(c, fiber.StatusConflict, "user is already a project member")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to add project member")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to add project member")
		}
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "project member added", member)
}

func (h *ProjectHandler) removeMember(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid project id")
	}
	memberID, err := parseIDParam(c, "memberId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid member id")
	}

	if err := h.service.RemoveMember(c.UserContext(), id, memberID); err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "project member not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to remove project member")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove project member")
	}
	return utils.SendSuccess(c, "project member removed", nil)
}

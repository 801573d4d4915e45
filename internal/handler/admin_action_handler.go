package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
	"github.com/TofuAo/Masjid-App-sub001/internal/utils"
)

// AdminActionHandler exposes the undo log: the list of still-reversible
// actions and the endpoint that reverses one.
type AdminActionHandler struct {
	service service.ActionLogService
	logger  zerolog.Logger
}

// NewAdminActionHandler constructs the handler.
func NewAdminActionHandler(service service.ActionLogService, logger zerolog.Logger) *AdminActionHandler {
	return &AdminActionHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_action_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminActionHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("/:id/undo", h.undo)
}

func (h *AdminActionHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	filter := repository.AdminActionFilter{
		Page:       page,
		PageSize:   pageSize,
		EntityType: c.Query("entityType"),
	}

	result, err := h.service.List(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list admin actions")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list admin actions")
	}

	return utils.SendSuccess(c, "admin actions retrieved", result)
}

func (h *AdminActionHandler) undo(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid action id")
	}

	result, err := h.service.Undo(c.Context(), id, actorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrActionNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "action not found")
		case errors.Is(err, service.ErrUndoForbidden):
			return utils.SendError(c, fiber.StatusForbidden, "only administrators may undo actions")
		case errors.Is(err, service.ErrActionExpired):
			return utils.SendError(c, fiber.StatusGone, "undo window has lapsed")
		case errors.Is(err, service.ErrActionConsumed):
			return utils.SendError(c, fiber.StatusConflict, "action already undone or superseded")
		default:
			requestLogger(h.logger, c).Error().Err(err).Uint("action_id", id).Msg("undo failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to undo action")
		}
	}

	return utils.SendSuccess(c, "action undone", result)
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
	"github.com/TofuAo/Masjid-App-sub001/internal/utils"
)

// AdminAnnouncementHandler manages admin announcement routes.
type AdminAnnouncementHandler struct {
	service service.AdminAnnouncementService
	logger  zerolog.Logger
}

// NewAdminAnnouncementHandler constructs the handler.
func NewAdminAnnouncementHandler(service service.AdminAnnouncementService, logger zerolog.Logger) *AdminAnnouncementHandler {
	return &AdminAnnouncementHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_announcement_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminAnnouncementHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *AdminAnnouncementHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}

	req := dto.AdminAnnouncementListRequest{
		Page:     page,
		PageSize: pageSize,
		Search:   c.Query("search"),
	}

	result, err := h.service.List(c.Context(), req)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list announcements")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list announcements")
	}

	return utils.SendSuccess(c, "announcements retrieved", result)
}

func (h *AdminAnnouncementHandler) create(c *fiber.Ctx) error {
	var payload dto.AnnouncementRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	announcement, err := h.service.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to create announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create announcement")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "announcement created", announcement)
}

func (h *AdminAnnouncementHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid announcement id")
	}

	var payload dto.AnnouncementRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	announcement, err := h.service.Update(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnnouncementNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to update announcement")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update announcement")
		}
	}

	return utils.SendSuccess(c, "announcement updated", announcement)
}

func (h *AdminAnnouncementHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid announcement id")
	}

	if err := h.service.Delete(c.Context(), id, actorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "announcement not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete announcement")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete announcement")
	}

	return utils.SendSuccess(c, "announcement deleted", nil)
}

package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
	"github.com/TofuAo/Masjid-App-sub001/internal/utils"
)

// ResultHandler manages the exam result routes.
type ResultHandler struct {
	service service.ResultService
	logger  zerolog.Logger
}

// NewResultHandler constructs the handler.
func NewResultHandler(service service.ResultService, logger zerolog.Logger) *ResultHandler {
	return &ResultHandler{
		service: service,
		logger:  logger.With().Str("component", "result_handler").Logger(),
	}
}

// Register attaches routes.
func (h *ResultHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *ResultHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	studentID, err := parseQueryInt(c, "studentId")
	if err != nil || studentID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	filter := repository.ResultFilter{
		Page:      page,
		PageSize:  pageSize,
		StudentID: uint(studentID),
		Subject:   c.Query("subject"),
		Term:      c.Query("term"),
	}

	result, err := h.service.List(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list exam results")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list exam results")
	}

	return utils.SendSuccess(c, "exam results retrieved", result)
}

func (h *ResultHandler) create(c *fiber.Ctx) error {
	var payload dto.ResultRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Create(c.Context(), payload, actorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to record exam result")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to record exam result")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam result recorded", result)
}

func (h *ResultHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid result id")
	}

	var payload dto.ResultUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Update(c.Context(), id, payload, actorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResultNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "exam result not found")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to correct exam result")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to correct exam result")
		}
	}

	return utils.SendSuccess(c, "exam result corrected", result)
}

func (h *ResultHandler) remove(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid result id")
	}

	if err := h.service.Delete(c.Context(), id, actorFromContext(c)); err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "exam result not found")
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to delete exam result")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete exam result")
	}

	return utils.SendSuccess(c, "exam result deleted", nil)
}

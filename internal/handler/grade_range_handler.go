package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
	"github.com/TofuAo/Masjid-App-sub001/internal/utils"
)

// GradeRangeHandler manages the grade partition settings routes.
type GradeRangeHandler struct {
	service service.GradeSettingService
	logger  zerolog.Logger
}

// NewGradeRangeHandler constructs the handler.
func NewGradeRangeHandler(service service.GradeSettingService, logger zerolog.Logger) *GradeRangeHandler {
	return &GradeRangeHandler{
		service: service,
		logger:  logger.With().Str("component", "grade_range_handler").Logger(),
	}
}

// Register attaches routes. The replace guard runs before the PUT handler.
func (h *GradeRangeHandler) Register(router fiber.Router, replaceGuard fiber.Handler) {
	router.Get("", h.current)
	if replaceGuard != nil {
		router.Put("", replaceGuard, h.replace)
	} else {
		router.Put("", h.replace)
	}
}

func (h *GradeRangeHandler) current(c *fiber.Ctx) error {
	result, err := h.service.Current(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to load grade ranges")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load grade ranges")
	}

	return utils.SendSuccess(c, "grade ranges retrieved", result)
}

func (h *GradeRangeHandler) replace(c *fiber.Ctx) error {
	var payload dto.GradeRangeUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, problems, err := h.service.Replace(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to replace grade ranges")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to replace grade ranges")
	}
	if len(problems) > 0 {
		return utils.SendValidationErrors(c, "grade ranges rejected", problems)
	}

	return utils.SendSuccess(c, "grade ranges replaced", result)
}

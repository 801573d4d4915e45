package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
	"github.com/TofuAo/Masjid-App-sub001/internal/utils"
)

// AttendanceHandler manages the daily attendance routes.
type AttendanceHandler struct {
	service service.AttendanceService
	logger  zerolog.Logger
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(service service.AttendanceService, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service: service,
		logger:  logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Put("", h.submitSheet)
	router.Get("", h.list)
	router.Get("/recap", h.recap)
}

func (h *AttendanceHandler) submitSheet(c *fiber.Ctx) error {
	var payload dto.AttendanceSheetRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.SubmitSheet(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to submit attendance sheet")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit attendance sheet")
	}

	return utils.SendSuccess(c, "attendance sheet recorded", result)
}

func (h *AttendanceHandler) list(c *fiber.Ctx) error {
	classID, err := parseQueryInt(c, "classId")
	if err != nil || classID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}

	result, err := h.service.List(c.Context(), uint(classID), c.Query("from"), c.Query("to"))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list attendance")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list attendance")
	}

	return utils.SendSuccess(c, "attendance retrieved", result)
}

func (h *AttendanceHandler) recap(c *fiber.Ctx) error {
	classID, err := parseQueryInt(c, "classId")
	if err != nil || classID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid class id")
	}
	studentID, err := parseQueryInt(c, "studentId")
	if err != nil || studentID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}

	result, err := h.service.Recap(c.Context(), uint(classID), uint(studentID), c.Query("from"), c.Query("to"))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build attendance recap")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build attendance recap")
	}

	return utils.SendSuccess(c, "attendance recap retrieved", result)
}

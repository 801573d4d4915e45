package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
	"github.com/TofuAo/Masjid-App-sub001/internal/utils"
)

// FeeHandler manages the monthly fee routes.
type FeeHandler struct {
	service service.FeeService
	logger  zerolog.Logger
}

// NewFeeHandler constructs the handler.
func NewFeeHandler(service service.FeeService, logger zerolog.Logger) *FeeHandler {
	return &FeeHandler{
		service: service,
		logger:  logger.With().Str("component", "fee_handler").Logger(),
	}
}

// Register attaches routes.
func (h *FeeHandler) Register(router fiber.Router) {
	router.Post("", h.record)
	router.Get("", h.list)
	router.Get("/outstanding", h.outstanding)
}

func (h *FeeHandler) record(c *fiber.Ctx) error {
	var payload dto.FeePaymentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	payment, err := h.service.Record(c.Context(), payload, actorFromContext(c))
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to record fee payment")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to record fee payment")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "fee payment recorded", payment)
}

func (h *FeeHandler) list(c *fiber.Ctx) error {
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
	month, err := parseQueryInt(c, "month")
	if err != nil || month < 0 || month > 12 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid month")
	}
	year, err := parseQueryInt(c, "year")
	if err != nil || year < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid year")
	}

	filter := repository.FeeFilter{
		Page:      page,
		PageSize:  pageSize,
		StudentID: uint(studentID),
		Month:     month,
		Year:      year,
	}

	result, err := h.service.List(c.Context(), filter)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list fee payments")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list fee payments")
	}

	return utils.SendSuccess(c, "fee payments retrieved", result)
}

func (h *FeeHandler) outstanding(c *fiber.Ctx) error {
	studentID, err := parseQueryInt(c, "studentId")
	if err != nil || studentID <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid student id")
	}
	year, err := parseQueryInt(c, "year")
	if err != nil || year < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid year")
	}

	result, err := h.service.Outstanding(c.Context(), uint(studentID), year)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute outstanding fees")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute outstanding fees")
	}

	return utils.SendSuccess(c, "outstanding fees retrieved", result)
}

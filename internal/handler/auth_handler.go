package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
	"github.com/TofuAo/Masjid-App-sub001/internal/utils"
)

// AuthHandler manages registration, login and the admin approval queue.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the public routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterAdmin attaches the approval queue routes.
func (h *AuthHandler) RegisterAdmin(router fiber.Router) {
	router.Get("/pending", h.listPending)
	router.Post("/:id/approve", h.approve)
	router.Post("/:id/reject", h.reject)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.Register(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("registration failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "registration failed")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "registration submitted for approval", user)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.Login(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid username or password")
		case errors.Is(err, service.ErrAccountNotApproved):
			return utils.SendError(c, fiber.StatusForbidden, "account is awaiting approval")
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("login failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
		}
	}

	return utils.SendSuccess(c, "login successful", result)
}

func (h *AuthHandler) listPending(c *fiber.Ctx) error {
	users, err := h.service.ListPending(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to list pending users")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list pending users")
	}

	return utils.SendSuccess(c, "pending registrations retrieved", users)
}

func (h *AuthHandler) approve(c *fiber.Ctx) error {
	return h.review(c, h.service.Approve, "registration approved")
}

func (h *AuthHandler) reject(c *fiber.Ctx) error {
	return h.review(c, h.service.Reject, "registration rejected")
}

func (h *AuthHandler) review(c *fiber.Ctx, decide func(ctx context.Context, userID uint, reviewer service.Actor) (dto.UserResponse, error), message string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid user id")
	}

	user, err := decide(c.Context(), id, actorFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrUserAlreadyDecided):
			return utils.SendError(c, fiber.StatusConflict, "registration already reviewed")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("failed to review registration")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to review registration")
		}
	}

	return utils.SendSuccess(c, message, user)
}

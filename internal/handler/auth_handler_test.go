package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
)

type stubAuthService struct {
	loginErr error
}

func (s *stubAuthService) Register(context.Context, dto.RegisterRequest) (dto.UserResponse, error) {
	return dto.UserResponse{ID: 1, Status: "pending"}, nil
}

func (s *stubAuthService) Login(context.Context, dto.LoginRequest) (dto.LoginResponse, error) {
	if s.loginErr != nil {
		return dto.LoginResponse{}, s.loginErr
	}
	return dto.LoginResponse{Token: "token"}, nil
}

func (s *stubAuthService) ListPending(context.Context) ([]dto.UserResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Approve(context.Context, uint, service.Actor) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func (s *stubAuthService) Reject(context.Context, uint, service.Actor) (dto.UserResponse, error) {
	return dto.UserResponse{}, nil
}

func loginRequest(t *testing.T) *http.Request {
	t.Helper()
	payload, err := json.Marshal(dto.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func newAuthTestApp(svc service.AuthService) *fiber.App {
	app := fiber.New()
	h := NewAuthHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/v1/auth"))
	return app
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newAuthTestApp(&stubAuthService{loginErr: service.ErrInvalidCredentials})

	resp, err := app.Test(loginRequest(t))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginPendingAccount(t *testing.T) {
	app := newAuthTestApp(&stubAuthService{loginErr: service.ErrAccountNotApproved})

	resp, err := app.Test(loginRequest(t))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestLoginSuccess(t *testing.T) {
	app := newAuthTestApp(&stubAuthService{})

	resp, err := app.Test(loginRequest(t))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

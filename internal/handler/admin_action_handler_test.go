package handler

import (
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
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
	"github.com/TofuAo/Masjid-App-sub001/internal/utils"
)

type stubActionLogService struct {
	undoErr  error
	undoResp dto.UndoResponse
	listResp dto.AdminActionListResponse
}

func (s *stubActionLogService) NewAction(string, models.Operation, interface{}, map[string]interface{}, service.Actor) (*models.AdminAction, error) {
	return nil, nil
}

func (s *stubActionLogService) List(ctx context.Context, filter repository.AdminActionFilter) (dto.AdminActionListResponse, error) {
	return s.listResp, nil
}

func (s *stubActionLogService) Undo(ctx context.Context, actionID uint, actor service.Actor) (dto.UndoResponse, error) {
	if s.undoErr != nil {
		return dto.UndoResponse{}, s.undoErr
	}
	return s.undoResp, nil
}

func (s *stubActionLogService) RegisterRestorer(string, service.EntityRestorer) {}

func newActionTestApp(svc service.ActionLogService) *fiber.App {
	app := fiber.New()
	h := NewAdminActionHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/admin/actions"))
	return app
}

func TestUndoStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", service.ErrActionNotFound, fiber.StatusNotFound},
		{"forbidden", service.ErrUndoForbidden, fiber.StatusForbidden},
		{"expired", service.ErrActionExpired, fiber.StatusGone},
		{"consumed", service.ErrActionConsumed, fiber.StatusConflict},
		{"no restorer", service.ErrNoRestorer, fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newActionTestApp(&stubActionLogService{undoErr: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/api/admin/actions/7/undo", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestUndoSuccessReturnsRestoredState(t *testing.T) {
	app := newActionTestApp(&stubActionLogService{
		undoResp: dto.UndoResponse{ActionID: 7, EntityType: "student", EntityID: "3", Operation: "update"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/actions/7/undo", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.True(t, envelope.Success)
}

func TestUndoRejectsMalformedID(t *testing.T) {
	app := newActionTestApp(&stubActionLogService{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/actions/abc/undo", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

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
	"github.com/TofuAo/Masjid-App-sub001/internal/grades"
	"github.com/TofuAo/Masjid-App-sub001/internal/service"
	"github.com/TofuAo/Masjid-App-sub001/internal/utils"
)

type stubGradeSettingService struct {
	current  dto.GradeRangeListResponse
	problems []string
}

func (s *stubGradeSettingService) Current(context.Context) (dto.GradeRangeListResponse, error) {
	return s.current, nil
}

func (s *stubGradeSettingService) Replace(_ context.Context, req dto.GradeRangeUpdateRequest) (dto.GradeRangeListResponse, []string, error) {
	if len(s.problems) > 0 {
		return dto.GradeRangeListResponse{}, s.problems, nil
	}
	return dto.GradeRangeListResponse{Ranges: req.Ranges}, nil, nil
}

func (s *stubGradeSettingService) ActiveRanges(context.Context) ([]grades.Range, error) {
	return grades.DefaultRanges(), nil
}

func newGradeRangeTestApp(svc service.GradeSettingService) *fiber.App {
	app := fiber.New()
	h := NewGradeRangeHandler(svc, zerolog.New(io.Discard))
	h.Register(app.Group("/api/admin/settings/grade-ranges"), nil)
	return app
}

func TestReplaceGradeRangesReturnsAllProblems(t *testing.T) {
	problems := []string{
		"range 1 has an empty grade label",
		"ranges must start at 0",
		"no range covers scores 45-49",
	}
	app := newGradeRangeTestApp(&stubGradeSettingService{problems: problems})

	payload, err := json.Marshal(dto.GradeRangeUpdateRequest{
		Ranges: []dto.GradeRangeItem{{Grade: "A", Min: 50}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings/grade-ranges", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(body, &envelope))
	require.False(t, envelope.Success)
	require.Equal(t, problems, envelope.Errors)
}

func TestReplaceGradeRangesAcceptsValidPartition(t *testing.T) {
	app := newGradeRangeTestApp(&stubGradeSettingService{})

	payload, err := json.Marshal(dto.GradeRangeUpdateRequest{
		Ranges: []dto.GradeRangeItem{
			{Grade: "Gagal", Min: 0},
			{Grade: "Lulus", Min: 60},
		},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/admin/settings/grade-ranges", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCurrentGradeRanges(t *testing.T) {
	app := newGradeRangeTestApp(&stubGradeSettingService{
		current: dto.GradeRangeListResponse{Ranges: []dto.GradeRangeItem{{Grade: "F", Min: 0}}},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings/grade-ranges", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/grades"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

// ErrResultNotFound indicates the exam result was not located.
var ErrResultNotFound = errors.New("exam result not found")

// ResultService records exam scores. The grade and pass/fail status are
// always re-derived here from the active partition, regardless of any value
// the client computed for live feedback.
type ResultService interface {
	List(ctx context.Context, filter repository.ResultFilter) (dto.ResultListResponse, error)
	Create(ctx context.Context, req dto.ResultRequest, actor Actor) (dto.ResultResponse, error)
	Update(ctx context.Context, id uint, req dto.ResultUpdateRequest, actor Actor) (dto.ResultResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type resultService struct {
	repo      repository.ResultRepository
	settings  GradeSettingService
	actions   ActionLogService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewResultService constructs the exam result service.
func NewResultService(repo repository.ResultRepository, settings GradeSettingService, actions ActionLogService, validator *validator.Validate, logger zerolog.Logger) ResultService {
	return &resultService{
		repo:      repo,
		settings:  settings,
		actions:   actions,
		validator: validator,
		logger:    logger.With().Str("component", "result_service").Logger(),
	}
}

func (s *resultService) List(ctx context.Context, filter repository.ResultFilter) (dto.ResultListResponse, error) {
	filter.Page = normalizePage(filter.Page)
	filter.PageSize = clampPageSize(filter.PageSize)

	results, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ResultListResponse{}, err
	}

	items := make([]dto.ResultResponse, 0, len(results))
	for _, result := range results {
		items = append(items, dto.NewResultResponse(result))
	}

	return dto.ResultListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *resultService) Create(ctx context.Context, req dto.ResultRequest, actor Actor) (dto.ResultResponse, error) {
	ctx, span := otel.Tracer("github.com/TofuAo/Masjid-App-sub001/internal/service/result").Start(ctx, "result.create")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation_failed")
		return dto.ResultResponse{}, err
	}

	grade, status, err := s.derive(ctx, req.Score)
	if err != nil {
		span.RecordError(err)
		return dto.ResultResponse{}, err
	}

	result := models.ExamResult{
		StudentID: req.StudentID,
		Subject:   strings.TrimSpace(req.Subject),
		Term:      strings.TrimSpace(req.Term),
		Score:     req.Score,
		Grade:     grade,
		Status:    status,
		GradedBy:  actor.ID,
	}

	action, err := s.actions.NewAction("result", models.OperationCreate, nil, map[string]interface{}{
		"title":     result.Subject,
		"operation": "entered exam result",
		"path":      "/results",
	}, actor)
	if err != nil {
		return dto.ResultResponse{}, err
	}

	if err := s.repo.Create(ctx, &result, action); err != nil {
		span.RecordError(err)
		return dto.ResultResponse{}, err
	}

	span.SetAttributes(
		attribute.Float64("result.score", result.Score),
		attribute.String("result.grade", result.Grade),
	)

	return dto.NewResultResponse(result), nil
}

func (s *resultService) Update(ctx context.Context, id uint, req dto.ResultUpdateRequest, actor Actor) (dto.ResultResponse, error) {
	ctx, span := otel.Tracer("github.com/TofuAo/Masjid-App-sub001/internal/service/result").Start(ctx, "result.update")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation_failed")
		return dto.ResultResponse{}, err
	}

	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResultResponse{}, ErrResultNotFound
		}
		return dto.ResultResponse{}, err
	}
	before := result

	grade, status, err := s.derive(ctx, req.Score)
	if err != nil {
		span.RecordError(err)
		return dto.ResultResponse{}, err
	}

	result.Score = req.Score
	result.Grade = grade
	result.Status = status
	result.GradedBy = actor.ID

	action, err := s.actions.NewAction("result", models.OperationUpdate, before, map[string]interface{}{
		"title":     result.Subject,
		"operation": "corrected exam result",
		"path":      "/results",
	}, actor)
	if err != nil {
		return dto.ResultResponse{}, err
	}
	action.EntityID = entityID(result.ID)

	if err := s.repo.Update(ctx, &result, action); err != nil {
		span.RecordError(err)
		return dto.ResultResponse{}, err
	}

	return dto.NewResultResponse(result), nil
}

func (s *resultService) Delete(ctx context.Context, id uint, actor Actor) error {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResultNotFound
		}
		return err
	}

	action, err := s.actions.NewAction("result", models.OperationDelete, result, map[string]interface{}{
		"title":     result.Subject,
		"operation": "deleted exam result",
		"path":      "/results",
	}, actor)
	if err != nil {
		return err
	}
	action.EntityID = entityID(result.ID)

	return s.repo.Delete(ctx, id, action)
}

// derive maps the score onto the active partition.
func (s *resultService) derive(ctx context.Context, score float64) (string, string, error) {
	ranges, err := s.settings.ActiveRanges(ctx)
	if err != nil {
		return "", "", err
	}
	grade := grades.DetermineGrade(score, ranges)
	return grade, grades.StatusFromGrade(grade), nil
}

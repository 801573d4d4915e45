package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/grades"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

const gradeRangeCacheKey = "grade_ranges:active:v1"

// GradeSettingService maintains the active grade partition. The set is always
// validated and replaced as a whole; there is no per-range patching.
type GradeSettingService interface {
	Current(ctx context.Context) (dto.GradeRangeListResponse, error)
	// Replace validates the candidate partition and persists it. A non-nil
	// problem list means the whole candidate set was rejected.
	Replace(ctx context.Context, req dto.GradeRangeUpdateRequest) (dto.GradeRangeListResponse, []string, error)
	// ActiveRanges returns the partition used for server-side grade
	// derivation, falling back to the built-in defaults when none is stored.
	ActiveRanges(ctx context.Context) ([]grades.Range, error)
}

type gradeSettingService struct {
	repo      repository.GradeRangeRepository
	cache     *redis.Client
	ttl       time.Duration
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGradeSettingService constructs the grade setting service.
func NewGradeSettingService(repo repository.GradeRangeRepository, cache *redis.Client, ttl time.Duration, validator *validator.Validate, logger zerolog.Logger) GradeSettingService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &gradeSettingService{
		repo:      repo,
		cache:     cache,
		ttl:       ttl,
		validator: validator,
		logger:    logger.With().Str("component", "grade_setting_service").Logger(),
	}
}

func (s *gradeSettingService) Current(ctx context.Context) (dto.GradeRangeListResponse, error) {
	ranges, err := s.ActiveRanges(ctx)
	if err != nil {
		return dto.GradeRangeListResponse{}, err
	}

	items := make([]dto.GradeRangeItem, 0, len(ranges))
	for _, r := range ranges {
		items = append(items, dto.GradeRangeItem{Grade: r.Grade, Min: r.Min, Max: r.Max})
	}
	return dto.GradeRangeListResponse{Ranges: items}, nil
}

func (s *gradeSettingService) Replace(ctx context.Context, req dto.GradeRangeUpdateRequest) (dto.GradeRangeListResponse, []string, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.GradeRangeListResponse{}, nil, err
	}

	candidates := make([]grades.Range, 0, len(req.Ranges))
	for _, item := range req.Ranges {
		candidates = append(candidates, grades.Range{Grade: item.Grade, Min: item.Min, Max: item.Max})
	}

	normalized, problems := grades.ValidateRanges(candidates)
	if len(problems) > 0 {
		return dto.GradeRangeListResponse{}, problems, nil
	}

	rows := make([]models.GradeRange, 0, len(normalized))
	for position, r := range normalized {
		max := r.EffectiveMax()
		rows = append(rows, models.GradeRange{Grade: r.Grade, Min: r.Min, Max: &max, Position: position})
	}

	if err := s.repo.ReplaceAll(ctx, rows); err != nil {
		return dto.GradeRangeListResponse{}, nil, err
	}

	if s.cache != nil {
		if err := s.cache.Del(ctx, gradeRangeCacheKey).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate grade range cache")
		}
	}

	items := make([]dto.GradeRangeItem, 0, len(normalized))
	for _, r := range normalized {
		max := r.EffectiveMax()
		items = append(items, dto.GradeRangeItem{Grade: r.Grade, Min: r.Min, Max: &max})
	}
	return dto.GradeRangeListResponse{Ranges: items}, nil, nil
}

func (s *gradeSettingService) ActiveRanges(ctx context.Context) ([]grades.Range, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, gradeRangeCacheKey).Result(); err == nil && cached != "" {
			var ranges []grades.Range
			if err := json.Unmarshal([]byte(cached), &ranges); err == nil {
				return ranges, nil
			}
		}
	}

	rows, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	var ranges []grades.Range
	if len(rows) == 0 {
		ranges = grades.DefaultRanges()
	} else {
		ranges = make([]grades.Range, 0, len(rows))
		for _, row := range rows {
			ranges = append(ranges, grades.Range{Grade: row.Grade, Min: row.Min, Max: row.Max})
		}
	}

	if s.cache != nil {
		if payload, err := json.Marshal(ranges); err == nil {
			if err := s.cache.Set(ctx, gradeRangeCacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache grade ranges")
			}
		}
	}

	return ranges, nil
}

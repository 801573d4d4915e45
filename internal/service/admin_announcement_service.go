package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

// ErrAnnouncementNotFound indicates the announcement was not located.
var ErrAnnouncementNotFound = errors.New("announcement not found")

// AdminAnnouncementService handles tracked announcement mutations.
type AdminAnnouncementService interface {
	List(ctx context.Context, req dto.AdminAnnouncementListRequest) (dto.AnnouncementListResponse, error)
	Create(ctx context.Context, req dto.AnnouncementRequest, actor Actor) (dto.AnnouncementResponse, error)
	Update(ctx context.Context, id uint, req dto.AnnouncementRequest, actor Actor) (dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type adminAnnouncementService struct {
	repo      repository.AnnouncementRepository
	actions   ActionLogService
	cache     *redis.Client
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAdminAnnouncementService constructs the admin announcement service.
func NewAdminAnnouncementService(repo repository.AnnouncementRepository, actions ActionLogService, cache *redis.Client, validator *validator.Validate, logger zerolog.Logger) AdminAnnouncementService {
	return &adminAnnouncementService{
		repo:      repo,
		actions:   actions,
		cache:     cache,
		validator: validator,
		logger:    logger.With().Str("component", "admin_announcement_service").Logger(),
	}
}

func (s *adminAnnouncementService) List(ctx context.Context, req dto.AdminAnnouncementListRequest) (dto.AnnouncementListResponse, error) {
	filter := repository.AdminAnnouncementFilter{
		Page:     normalizePage(req.Page),
		PageSize: clampPageSize(req.PageSize),
		Search:   strings.TrimSpace(req.Search),
	}

	items, total, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return dto.AnnouncementListResponse{}, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewAnnouncementResponse(item))
	}

	return dto.AnnouncementListResponse{
		Items: responses,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *adminAnnouncementService) Create(ctx context.Context, req dto.AnnouncementRequest, actor Actor) (dto.AnnouncementResponse, error) {
	model, err := s.fromRequest(req)
	if err != nil {
		return dto.AnnouncementResponse{}, err
	}
	model.CreatedBy = actor.ID

	action, err := s.actions.NewAction("announcement", models.OperationCreate, nil, map[string]interface{}{
		"title":     model.Title,
		"operation": "created announcement",
		"path":      "/announcements",
	}, actor)
	if err != nil {
		return dto.AnnouncementResponse{}, err
	}

	if err := s.repo.Create(ctx, &model, action); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	s.invalidateCache(ctx)
	return dto.NewAnnouncementResponse(model), nil
}

func (s *adminAnnouncementService) Update(ctx context.Context, id uint, req dto.AnnouncementRequest, actor Actor) (dto.AnnouncementResponse, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AnnouncementResponse{}, ErrAnnouncementNotFound
		}
		return dto.AnnouncementResponse{}, err
	}

	updated, err := s.fromRequest(req)
	if err != nil {
		return dto.AnnouncementResponse{}, err
	}
	updated.ID = existing.ID
	updated.CreatedBy = existing.CreatedBy
	updated.CreatedAt = existing.CreatedAt

	action, err := s.actions.NewAction("announcement", models.OperationUpdate, existing, map[string]interface{}{
		"title":     existing.Title,
		"operation": "updated announcement",
		"path":      "/announcements",
	}, actor)
	if err != nil {
		return dto.AnnouncementResponse{}, err
	}
	action.EntityID = entityID(existing.ID)

	if err := s.repo.Update(ctx, &updated, action); err != nil {
		return dto.AnnouncementResponse{}, err
	}

	s.invalidateCache(ctx)
	return dto.NewAnnouncementResponse(updated), nil
}

func (s *adminAnnouncementService) Delete(ctx context.Context, id uint, actor Actor) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	action, err := s.actions.NewAction("announcement", models.OperationDelete, existing, map[string]interface{}{
		"title":     existing.Title,
		"operation": "deleted announcement",
		"path":      "/announcements",
	}, actor)
	if err != nil {
		return err
	}
	action.EntityID = entityID(existing.ID)

	if err := s.repo.Delete(ctx, id, action); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *adminAnnouncementService) fromRequest(req dto.AnnouncementRequest) (models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Announcement{}, err
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return models.Announcement{}, err
	}

	var endsAt *time.Time
	if strings.TrimSpace(req.EndsAt) != "" {
		parsed, err := time.Parse(time.RFC3339, req.EndsAt)
		if err != nil {
			return models.Announcement{}, err
		}
		endsAt = &parsed
	}

	return models.Announcement{
		Title:    strings.TrimSpace(req.Title),
		Body:     strings.TrimSpace(req.Body),
		StartsAt: startsAt,
		EndsAt:   endsAt,
		IsPinned: req.IsPinned,
	}, nil
}

func (s *adminAnnouncementService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, "announcements:active:v1:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate announcement cache")
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to scan announcement cache keys")
	}
}

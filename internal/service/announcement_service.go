package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

// AnnouncementService exposes the public announcement listing.
type AnnouncementService interface {
	ListActive(ctx context.Context, page, pageSize int) (dto.AnnouncementListResponse, error)
}

type announcementService struct {
	repo   repository.AnnouncementRepository
	cache  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
	policy *bluemonday.Policy
}

// NewAnnouncementService constructs the public announcement service.
func NewAnnouncementService(repo repository.AnnouncementRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) AnnouncementService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &announcementService{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "announcement_service").Logger(),
		policy: bluemonday.UGCPolicy(),
	}
}

func (s *announcementService) ListActive(ctx context.Context, page, pageSize int) (dto.AnnouncementListResponse, error) {
	page = normalizePage(page)
	pageSize = clampPageSize(pageSize)

	cacheKey := ""
	if s.cache != nil {
		cacheKey = fmt.Sprintf("announcements:active:v1:%d:%d", page, pageSize)
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.AnnouncementListResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		}
	}

	items, total, err := s.repo.ListActive(ctx, repository.AnnouncementFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return dto.AnnouncementListResponse{}, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(items))
	for _, item := range items {
		response := dto.NewAnnouncementResponse(item)
		response.Title = strings.TrimSpace(response.Title)
		response.Body = s.policy.Sanitize(response.Body)
		responses = append(responses, response)
	}

	result := dto.AnnouncementListResponse{
		Items: responses,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, pageSize),
		},
	}

	if cacheKey != "" {
		if payload, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to cache announcements")
			}
		}
	}

	return result, nil
}

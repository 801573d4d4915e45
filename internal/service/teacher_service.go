package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

// ErrTeacherNotFound indicates the teacher was not located.
var ErrTeacherNotFound = errors.New("teacher not found")

// TeacherService handles tracked teacher record mutations.
type TeacherService interface {
	List(ctx context.Context, page, pageSize int, search string) (dto.TeacherListResponse, error)
	Create(ctx context.Context, req dto.TeacherCreateRequest, actor Actor) (dto.TeacherResponse, error)
	Update(ctx context.Context, id uint, req dto.TeacherUpdateRequest, actor Actor) (dto.TeacherResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type teacherService struct {
	repo      repository.TeacherRepository
	actions   ActionLogService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(repo repository.TeacherRepository, actions ActionLogService, validator *validator.Validate, logger zerolog.Logger) TeacherService {
	return &teacherService{
		repo:      repo,
		actions:   actions,
		validator: validator,
		logger:    logger.With().Str("component", "teacher_service").Logger(),
	}
}

func (s *teacherService) List(ctx context.Context, page, pageSize int, search string) (dto.TeacherListResponse, error) {
	filter := repository.TeacherFilter{
		Page:     normalizePage(page),
		PageSize: clampPageSize(pageSize),
		Search:   strings.TrimSpace(search),
	}

	teachers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.TeacherListResponse{}, err
	}

	items := make([]dto.TeacherResponse, 0, len(teachers))
	for _, teacher := range teachers {
		items = append(items, dto.NewTeacherResponse(teacher))
	}

	return dto.TeacherListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *teacherService) Create(ctx context.Context, req dto.TeacherCreateRequest, actor Actor) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher := models.Teacher{
		NIP:      strings.TrimSpace(req.NIP),
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Subjects: strings.TrimSpace(req.Subjects),
	}

	action, err := s.actions.NewAction("teacher", models.OperationCreate, nil, map[string]interface{}{
		"title":     teacher.Name,
		"operation": "registered teacher",
		"path":      "/teachers",
	}, actor)
	if err != nil {
		return dto.TeacherResponse{}, err
	}

	if err := s.repo.Create(ctx, &teacher, action); err != nil {
		return dto.TeacherResponse{}, err
	}

	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) Update(ctx context.Context, id uint, req dto.TeacherUpdateRequest, actor Actor) (dto.TeacherResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.TeacherResponse{}, err
	}

	teacher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TeacherResponse{}, ErrTeacherNotFound
		}
		return dto.TeacherResponse{}, err
	}
	before := teacher

	if req.Name != nil {
		teacher.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		teacher.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Subjects != nil {
		teacher.Subjects = strings.TrimSpace(*req.Subjects)
	}

	action, err := s.actions.NewAction("teacher", models.OperationUpdate, before, map[string]interface{}{
		"title":     before.Name,
		"operation": "updated teacher",
		"path":      "/teachers",
	}, actor)
	if err != nil {
		return dto.TeacherResponse{}, err
	}
	action.EntityID = entityID(teacher.ID)

	if err := s.repo.Update(ctx, &teacher, action); err != nil {
		return dto.TeacherResponse{}, err
	}

	return dto.NewTeacherResponse(teacher), nil
}

func (s *teacherService) Delete(ctx context.Context, id uint, actor Actor) error {
	teacher, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeacherNotFound
		}
		return err
	}

	action, err := s.actions.NewAction("teacher", models.OperationDelete, teacher, map[string]interface{}{
		"title":     teacher.Name,
		"operation": "removed teacher",
		"path":      "/teachers",
	}, actor)
	if err != nil {
		return err
	}
	action.EntityID = entityID(teacher.ID)

	return s.repo.Delete(ctx, id, action)
}

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

// ErrStudentNotFound indicates the student was not located.
var ErrStudentNotFound = errors.New("student not found")

// StudentService handles tracked student record mutations.
type StudentService interface {
	List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error)
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	Create(ctx context.Context, req dto.StudentCreateRequest, actor Actor) (dto.StudentResponse, error)
	Update(ctx context.Context, id uint, req dto.StudentUpdateRequest, actor Actor) (dto.StudentResponse, error)
	Delete(ctx context.Context, id uint, actor Actor) error
}

type studentService struct {
	repo      repository.StudentRepository
	actions   ActionLogService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, actions ActionLogService, validator *validator.Validate, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		actions:   actions,
		validator: validator,
		logger:    logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) List(ctx context.Context, req dto.StudentListRequest) (dto.StudentListResponse, error) {
	filter := repository.StudentFilter{
		Page:     normalizePage(req.Page),
		PageSize: clampPageSize(req.PageSize),
		Search:   strings.TrimSpace(req.Search),
		Status:   strings.TrimSpace(req.Status),
	}
	if req.ClassID > 0 {
		classID := req.ClassID
		filter.ClassID = &classID
	}

	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.StudentListResponse{}, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentResponse(student))
	}

	return dto.StudentListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Create(ctx context.Context, req dto.StudentCreateRequest, actor Actor) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		NIS:          strings.TrimSpace(req.NIS),
		Name:         strings.TrimSpace(req.Name),
		ClassID:      req.ClassID,
		GuardianName: strings.TrimSpace(req.GuardianName),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
		Status:       models.StudentStatusActive,
	}

	action, err := s.actions.NewAction("student", models.OperationCreate, nil, map[string]interface{}{
		"title":     student.Name,
		"operation": "registered student",
		"path":      "/students",
	}, actor)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	if err := s.repo.Create(ctx, &student, action); err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, id uint, req dto.StudentUpdateRequest, actor Actor) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	before := student

	if req.Name != nil {
		student.Name = strings.TrimSpace(*req.Name)
	}
	if req.ClassID != nil {
		student.ClassID = req.ClassID
	}
	if req.GuardianName != nil {
		student.GuardianName = strings.TrimSpace(*req.GuardianName)
	}
	if req.Phone != nil {
		student.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		student.Address = strings.TrimSpace(*req.Address)
	}
	if req.Status != nil {
		student.Status = models.StudentStatus(*req.Status)
	}

	action, err := s.actions.NewAction("student", models.OperationUpdate, before, map[string]interface{}{
		"title":     before.Name,
		"operation": "updated student",
		"path":      "/students",
	}, actor)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	action.EntityID = entityID(student.ID)

	if err := s.repo.Update(ctx, &student, action); err != nil {
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, id uint, actor Actor) error {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}

	action, err := s.actions.NewAction("student", models.OperationDelete, student, map[string]interface{}{
		"title":     student.Name,
		"operation": "removed student",
		"path":      "/students",
	}, actor)
	if err != nil {
		return err
	}
	action.EntityID = entityID(student.ID)

	return s.repo.Delete(ctx, id, action)
}

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

// Class errors.
var (
	ErrClassNotFound    = errors.New("class not found")
	ErrClassHasStudents = errors.New("class still has enrolled students")
)

// ClassService handles class administration.
type ClassService interface {
	List(ctx context.Context, page, pageSize int, academicYear string) (dto.ClassListResponse, error)
	Create(ctx context.Context, req dto.ClassRequest) (dto.ClassResponse, error)
	Update(ctx context.Context, id uint, req dto.ClassRequest) (dto.ClassResponse, error)
	Delete(ctx context.Context, id uint) error
}

type classService struct {
	repo      repository.ClassRepository
	students  repository.StudentRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewClassService constructs the class service.
func NewClassService(repo repository.ClassRepository, students repository.StudentRepository, validator *validator.Validate, logger zerolog.Logger) ClassService {
	return &classService{
		repo:      repo,
		students:  students,
		validator: validator,
		logger:    logger.With().Str("component", "class_service").Logger(),
	}
}

func (s *classService) List(ctx context.Context, page, pageSize int, academicYear string) (dto.ClassListResponse, error) {
	filter := repository.ClassFilter{
		Page:         normalizePage(page),
		PageSize:     clampPageSize(pageSize),
		AcademicYear: strings.TrimSpace(academicYear),
	}

	classes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ClassListResponse{}, err
	}

	items := make([]dto.ClassResponse, 0, len(classes))
	for _, class := range classes {
		items = append(items, dto.NewClassResponse(class))
	}

	return dto.ClassListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       filter.Page,
			PageSize:   filter.PageSize,
			TotalItems: total,
			TotalPages: calculateTotalPages(total, filter.PageSize),
		},
	}, nil
}

func (s *classService) Create(ctx context.Context, req dto.ClassRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ClassResponse{}, err
	}

	class := models.Class{
		Name:         strings.TrimSpace(req.Name),
		Level:        strings.TrimSpace(req.Level),
		TeacherID:    req.TeacherID,
		AcademicYear: strings.TrimSpace(req.AcademicYear),
	}

	if err := s.repo.Create(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class), nil
}

func (s *classService) Update(ctx context.Context, id uint, req dto.ClassRequest) (dto.ClassResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ClassResponse{}, err
	}

	class, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassResponse{}, ErrClassNotFound
		}
		return dto.ClassResponse{}, err
	}

	class.Name = strings.TrimSpace(req.Name)
	class.Level = strings.TrimSpace(req.Level)
	class.TeacherID = req.TeacherID
	class.AcademicYear = strings.TrimSpace(req.AcademicYear)

	if err := s.repo.Update(ctx, &class); err != nil {
		return dto.ClassResponse{}, err
	}

	return dto.NewClassResponse(class), nil
}

func (s *classService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}

	enrolled, err := s.students.CountByClass(ctx, id)
	if err != nil {
		return err
	}
	if enrolled > 0 {
		return ErrClassHasStudents
	}

	return s.repo.Delete(ctx, id)
}

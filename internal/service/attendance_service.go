package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/TofuAo/Masjid-App-sub001/internal/dto"
	"github.com/TofuAo/Masjid-App-sub001/internal/models"
	"github.com/TofuAo/Masjid-App-sub001/internal/repository"
)

const attendanceDateLayout = "2006-01-02"

// AttendanceService maintains per-class per-date attendance sheets.
type AttendanceService interface {
	SubmitSheet(ctx context.Context, req dto.AttendanceSheetRequest) (dto.AttendanceListResponse, error)
	List(ctx context.Context, classID uint, from, to string) (dto.AttendanceListResponse, error)
	Recap(ctx context.Context, classID, studentID uint, from, to string) ([]repository.AttendanceRecap, error)
}

type attendanceService struct {
	repo      repository.AttendanceRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo repository.AttendanceRepository, validator *validator.Validate, logger zerolog.Logger) AttendanceService {
	return &attendanceService{
		repo:      repo,
		validator: validator,
		logger:    logger.With().Str("component", "attendance_service").Logger(),
	}
}

func (s *attendanceService) SubmitSheet(ctx context.Context, req dto.AttendanceSheetRequest) (dto.AttendanceListResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AttendanceListResponse{}, err
	}

	date, err := time.Parse(attendanceDateLayout, req.Date)
	if err != nil {
		return dto.AttendanceListResponse{}, fmt.Errorf("invalid sheet date: %w", err)
	}

	entries := make([]models.Attendance, 0, len(req.Marks))
	for _, mark := range req.Marks {
		status := models.AttendanceStatus(mark.Status)
		if !status.Valid() {
			return dto.AttendanceListResponse{}, fmt.Errorf("invalid attendance status %q", mark.Status)
		}
		entries = append(entries, models.Attendance{
			StudentID: mark.StudentID,
			ClassID:   req.ClassID,
			Date:      date,
			Status:    status,
			Note:      mark.Note,
		})
	}

	if err := s.repo.UpsertSheet(ctx, entries); err != nil {
		return dto.AttendanceListResponse{}, err
	}

	items := make([]dto.AttendanceResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewAttendanceResponse(entry))
	}
	return dto.AttendanceListResponse{Items: items}, nil
}

func (s *attendanceService) List(ctx context.Context, classID uint, from, to string) (dto.AttendanceListResponse, error) {
	filter, err := buildAttendanceFilter(classID, 0, from, to)
	if err != nil {
		return dto.AttendanceListResponse{}, err
	}

	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.AttendanceListResponse{}, err
	}

	items := make([]dto.AttendanceResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewAttendanceResponse(entry))
	}
	return dto.AttendanceListResponse{Items: items}, nil
}

func (s *attendanceService) Recap(ctx context.Context, classID, studentID uint, from, to string) ([]repository.AttendanceRecap, error) {
	filter, err := buildAttendanceFilter(classID, studentID, from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.Recap(ctx, filter)
}

func buildAttendanceFilter(classID, studentID uint, from, to string) (repository.AttendanceFilter, error) {
	filter := repository.AttendanceFilter{ClassID: classID, StudentID: studentID}

	if from != "" {
		parsed, err := time.Parse(attendanceDateLayout, from)
		if err != nil {
			return repository.AttendanceFilter{}, fmt.Errorf("invalid from date: %w", err)
		}
		filter.From = parsed
	}
	if to != "" {
		parsed, err := time.Parse(attendanceDateLayout, to)
		if err != nil {
			return repository.AttendanceFilter{}, fmt.Errorf("invalid to date: %w", err)
		}
		filter.To = parsed
	}

	return filter, nil
}

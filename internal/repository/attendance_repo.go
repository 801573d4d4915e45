package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// AttendanceFilter narrows attendance queries by class and date range.
type AttendanceFilter struct {
	ClassID   uint
	StudentID uint
	From      time.Time
	To        time.Time
}

// AttendanceRecap aggregates one student's marks over a period.
type AttendanceRecap struct {
	StudentID uint  `json:"student_id"`
	Hadir     int64 `json:"hadir"`
	Izin      int64 `json:"izin"`
	Sakit     int64 `json:"sakit"`
	Alpha     int64 `json:"alpha"`
}

// AttendanceRepository persists attendance sheets.
type AttendanceRepository interface {
	// UpsertSheet replaces the marks for one class and date in one transaction.
	UpsertSheet(ctx context.Context, entries []models.Attendance) error
	List(ctx context.Context, filter AttendanceFilter) ([]models.Attendance, error)
	Recap(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecap, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository constructs the attendance repository.
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) UpsertSheet(ctx context.Context, entries []models.Attendance) error {
	if len(entries) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "class_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "note", "updated_at"}),
	}).Create(&entries).Error
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]models.Attendance, error) {
	query := r.db.WithContext(ctx).Model(&models.Attendance{})
	query = applyAttendanceFilter(query, filter)

	var entries []models.Attendance
	err := query.Order("date DESC, student_id ASC").Find(&entries).Error
	return entries, err
}

func (r *attendanceRepository) Recap(ctx context.Context, filter AttendanceFilter) ([]AttendanceRecap, error) {
	query := r.db.WithContext(ctx).Model(&models.Attendance{})
	query = applyAttendanceFilter(query, filter)

	var recaps []AttendanceRecap
	err := query.Select(
		"student_id, " +
			"SUM(CASE WHEN status = 'hadir' THEN 1 ELSE 0 END) AS hadir, " +
			"SUM(CASE WHEN status = 'izin' THEN 1 ELSE 0 END) AS izin, " +
			"SUM(CASE WHEN status = 'sakit' THEN 1 ELSE 0 END) AS sakit, " +
			"SUM(CASE WHEN status = 'alpha' THEN 1 ELSE 0 END) AS alpha").
		Group("student_id").
		Order("student_id ASC").
		Scan(&recaps).Error
	return recaps, err
}

func applyAttendanceFilter(query *gorm.DB, filter AttendanceFilter) *gorm.DB {
	if filter.ClassID > 0 {
		query = query.Where("class_id = ?", filter.ClassID)
	}
	if filter.StudentID > 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if !filter.From.IsZero() {
		query = query.Where("date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("date <= ?", filter.To)
	}
	return query
}

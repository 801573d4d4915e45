package models

import "time"

// AttendanceStatus enumerates the recognised attendance marks.
type AttendanceStatus string

const (
	AttendanceHadir AttendanceStatus = "hadir"
	AttendanceIzin  AttendanceStatus = "izin"
	AttendanceSakit AttendanceStatus = "sakit"
	AttendanceAlpha AttendanceStatus = "alpha"
)

// Valid reports whether the status is a recognised attendance mark.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceHadir, AttendanceIzin, AttendanceSakit, AttendanceAlpha:
		return true
	}
	return false
}

// Attendance is one student's mark on one class sheet for one date.
type Attendance struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	StudentID uint             `gorm:"not null;uniqueIndex:idx_attendance_sheet" json:"student_id"`
	ClassID   uint             `gorm:"not null;uniqueIndex:idx_attendance_sheet;index" json:"class_id"`
	Date      time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_sheet" json:"date"`
	Status    AttendanceStatus `gorm:"size:8;not null" json:"status"`
	Note      string           `gorm:"size:255" json:"note"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

package models

import "time"

// Class groups students under a homeroom teacher for one academic year.
type Class struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Level        string    `gorm:"size:32" json:"level"`
	TeacherID    *uint     `gorm:"index" json:"teacher_id"`
	AcademicYear string    `gorm:"size:16;not null" json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

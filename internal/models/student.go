package models

import "time"

// StudentStatus enumerates enrolment states for a student.
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "active"
	StudentStatusInactive  StudentStatus = "inactive"
	StudentStatusGraduated StudentStatus = "graduated"
)

// Student represents a learner enrolled in the education program.
type Student struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	NIS          string        `gorm:"column:nis;size:32;uniqueIndex;not null" json:"nis"`
	Name         string        `gorm:"size:255;not null" json:"name"`
	ClassID      *uint         `gorm:"index" json:"class_id"`
	GuardianName string        `gorm:"size:255" json:"guardian_name"`
	Phone        string        `gorm:"size:32" json:"phone"`
	Address      string        `gorm:"type:text" json:"address"`
	Status       StudentStatus `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

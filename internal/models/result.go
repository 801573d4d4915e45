package models

import "time"

// Result statuses derived from the grade partition.
const (
	ResultStatusLulus = "lulus"
	ResultStatusGagal = "gagal"
)

// ExamResult stores one student's score for a subject in a term. Grade and
// Status are derived server-side from the active grade partition when the
// score is written, never trusted from the client.
type ExamResult struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_result_entry;index" json:"student_id"`
	Subject   string    `gorm:"size:64;not null;uniqueIndex:idx_result_entry" json:"subject"`
	Term      string    `gorm:"size:32;not null;uniqueIndex:idx_result_entry" json:"term"`
	Score     float64   `gorm:"not null" json:"score"`
	Grade     string    `gorm:"size:8" json:"grade"`
	Status    string    `gorm:"size:8" json:"status"`
	GradedBy  uint      `gorm:"not null" json:"graded_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

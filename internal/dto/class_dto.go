package dto

import (
	"time"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// ClassResponse serializes a class record.
type ClassResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Level        string    `json:"level"`
	TeacherID    *uint     `json:"teacher_id,omitempty"`
	AcademicYear string    `json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewClassResponse maps the model onto the wire shape.
func NewClassResponse(model models.Class) ClassResponse {
	return ClassResponse{
		ID:           model.ID,
		Name:         model.Name,
		Level:        model.Level,
		TeacherID:    model.TeacherID,
		AcademicYear: model.AcademicYear,
		CreatedAt:    model.CreatedAt,
	}
}

// ClassListResponse wraps a paginated class listing.
type ClassListResponse struct {
	Items      []ClassResponse `json:"items"`
	Pagination PaginationMeta  `json:"pagination"`
}

// ClassRequest creates or replaces a class.
type ClassRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=64"`
	Level        string `json:"level" validate:"omitempty,max=32"`
	TeacherID    *uint  `json:"teacher_id"`
	AcademicYear string `json:"academic_year" validate:"required,max=16"`
}

package dto

import (
	"time"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// TeacherResponse serializes a teacher record.
type TeacherResponse struct {
	ID        uint      `json:"id"`
	NIP       string    `json:"nip"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Subjects  string    `json:"subjects"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTeacherResponse maps the model onto the wire shape.
func NewTeacherResponse(model models.Teacher) TeacherResponse {
	return TeacherResponse{
		ID:        model.ID,
		NIP:       model.NIP,
		Name:      model.Name,
		Phone:     model.Phone,
		Subjects:  model.Subjects,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// TeacherListResponse wraps a paginated teacher listing.
type TeacherListResponse struct {
	Items      []TeacherResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// TeacherCreateRequest registers a new teacher.
type TeacherCreateRequest struct {
	NIP      string `json:"nip" validate:"required,min=3,max=32"`
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	Subjects string `json:"subjects" validate:"omitempty,max=255"`
}

// TeacherUpdateRequest captures partial update payloads for teachers.
type TeacherUpdateRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=2,max=255"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	Subjects *string `json:"subjects" validate:"omitempty,max=255"`
}

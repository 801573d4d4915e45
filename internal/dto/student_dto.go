package dto

import (
	"time"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// StudentResponse serializes a student record.
type StudentResponse struct {
	ID           uint      `json:"id"`
	NIS          string    `json:"nis"`
	Name         string    `json:"name"`
	ClassID      *uint     `json:"class_id,omitempty"`
	GuardianName string    `json:"guardian_name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewStudentResponse maps the model onto the wire shape.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:           model.ID,
		NIS:          model.NIS,
		Name:         model.Name,
		ClassID:      model.ClassID,
		GuardianName: model.GuardianName,
		Phone:        model.Phone,
		Address:      model.Address,
		Status:       string(model.Status),
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

// StudentListResponse wraps a paginated student listing.
type StudentListResponse struct {
	Items      []StudentResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// StudentListRequest defines filters for listing students.
type StudentListRequest struct {
	Page     int
	PageSize int
	Search   string
	ClassID  uint
	Status   string
}

// StudentCreateRequest registers a new student.
type StudentCreateRequest struct {
	NIS          string `json:"nis" validate:"required,min=3,max=32"`
	Name         string `json:"name" validate:"required,min=2,max=255"`
	ClassID      *uint  `json:"class_id"`
	GuardianName string `json:"guardian_name" validate:"omitempty,max=255"`
	Phone        string `json:"phone" validate:"omitempty,max=32"`
	Address      string `json:"address" validate:"omitempty,max=2000"`
}

// StudentUpdateRequest captures partial update payloads for students.
type StudentUpdateRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=2,max=255"`
	ClassID      *uint   `json:"class_id"`
	GuardianName *string `json:"guardian_name" validate:"omitempty,max=255"`
	Phone        *string `json:"phone" validate:"omitempty,max=32"`
	Address      *string `json:"address" validate:"omitempty,max=2000"`
	Status       *string `json:"status" validate:"omitempty,oneof=active inactive graduated"`
}

package dto

import (
	"time"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// ResultRequest enters or corrects one exam score. Grade and status are
// derived server-side; the client never supplies them.
type ResultRequest struct {
	StudentID uint    `json:"student_id" validate:"required"`
	Subject   string  `json:"subject" validate:"required,min=1,max=64"`
	Term      string  `json:"term" validate:"required,min=1,max=32"`
	Score     float64 `json:"score" validate:"min=0,max=100"`
}

// ResultUpdateRequest corrects the score of an existing result.
type ResultUpdateRequest struct {
	Score float64 `json:"score" validate:"min=0,max=100"`
}

// ResultResponse serializes one exam result.
type ResultResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	Subject   string    `json:"subject"`
	Term      string    `json:"term"`
	Score     float64   `json:"score"`
	Grade     string    `json:"grade"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewResultResponse maps the model onto the wire shape.
func NewResultResponse(model models.ExamResult) ResultResponse {
	return ResultResponse{
		ID:        model.ID,
		StudentID: model.StudentID,
		Subject:   model.Subject,
		Term:      model.Term,
		Score:     model.Score,
		Grade:     model.Grade,
		Status:    model.Status,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// ResultListResponse wraps a paginated result listing.
type ResultListResponse struct {
	Items      []ResultResponse `json:"items"`
	Pagination PaginationMeta   `json:"pagination"`
}

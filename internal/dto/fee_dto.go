package dto

import (
	"time"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// FeePaymentRequest records one monthly fee payment.
type FeePaymentRequest struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Month     int    `json:"month" validate:"required,min=1,max=12"`
	Year      int    `json:"year" validate:"required,min=2000,max=2100"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
	Method    string `json:"method" validate:"omitempty,max=32"`
	Note      string `json:"note" validate:"omitempty,max=255"`
}

// FeePaymentResponse serializes one fee payment.
type FeePaymentResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	Month     int       `json:"month"`
	Year      int       `json:"year"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method,omitempty"`
	Note      string    `json:"note,omitempty"`
	PaidAt    time.Time `json:"paid_at"`
}

// NewFeePaymentResponse maps the model onto the wire shape.
func NewFeePaymentResponse(model models.FeePayment) FeePaymentResponse {
	return FeePaymentResponse{
		ID:        model.ID,
		StudentID: model.StudentID,
		Month:     model.Month,
		Year:      model.Year,
		Amount:    model.Amount,
		Method:    model.Method,
		Note:      model.Note,
		PaidAt:    model.PaidAt,
	}
}

// FeePaymentListResponse wraps a paginated fee listing.
type FeePaymentListResponse struct {
	Items      []FeePaymentResponse `json:"items"`
	Pagination PaginationMeta       `json:"pagination"`
}

// OutstandingFeesResponse names the unpaid months for one student and year.
type OutstandingFeesResponse struct {
	StudentID    uint  `json:"student_id"`
	Year         int   `json:"year"`
	UnpaidMonths []int `json:"unpaid_months"`
}

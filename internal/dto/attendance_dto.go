package dto

import (
	"time"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// AttendanceMark is one student's mark within a sheet submission.
type AttendanceMark struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=hadir izin sakit alpha"`
	Note      string `json:"note" validate:"omitempty,max=255"`
}

// AttendanceSheetRequest submits the marks for one class and date.
type AttendanceSheetRequest struct {
	ClassID uint             `json:"class_id" validate:"required"`
	Date    string           `json:"date" validate:"required"`
	Marks   []AttendanceMark `json:"marks" validate:"required,min=1,dive"`
}

// AttendanceResponse serializes one attendance entry.
type AttendanceResponse struct {
	ID        uint      `json:"id"`
	StudentID uint      `json:"student_id"`
	ClassID   uint      `json:"class_id"`
	Date      time.Time `json:"date"`
	Status    string    `json:"status"`
	Note      string    `json:"note,omitempty"`
}

// NewAttendanceResponse maps the model onto the wire shape.
func NewAttendanceResponse(model models.Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:        model.ID,
		StudentID: model.StudentID,
		ClassID:   model.ClassID,
		Date:      model.Date,
		Status:    string(model.Status),
		Note:      model.Note,
	}
}

// AttendanceListResponse wraps an attendance listing.
type AttendanceListResponse struct {
	Items []AttendanceResponse `json:"items"`
}

package dto

import "github.com/TofuAo/Masjid-App-sub001/internal/models"

// GradeRangeItem is one bucket of the partition on the wire. Max may be null,
// meaning "up to 100".
type GradeRangeItem struct {
	Grade string `json:"grade"`
	Min   int    `json:"min"`
	Max   *int   `json:"max"`
}

// GradeRangeUpdateRequest replaces the whole partition.
type GradeRangeUpdateRequest struct {
	Ranges []GradeRangeItem `json:"ranges" validate:"required,min=1,dive"`
}

// GradeRangeListResponse returns the active normalized partition.
type GradeRangeListResponse struct {
	Ranges []GradeRangeItem `json:"ranges"`
}

// NewGradeRangeItem maps a stored range onto the wire shape.
func NewGradeRangeItem(model models.GradeRange) GradeRangeItem {
	return GradeRangeItem{Grade: model.Grade, Min: model.Min, Max: model.Max}
}

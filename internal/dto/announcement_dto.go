package dto

import (
	"time"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// AnnouncementResponse serializes an announcement for read endpoints.
type AnnouncementResponse struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	IsPinned  bool       `json:"is_pinned"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewAnnouncementResponse maps the model onto the wire shape.
func NewAnnouncementResponse(model models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        model.ID,
		Title:     model.Title,
		Body:      model.Body,
		StartsAt:  model.StartsAt,
		EndsAt:    model.EndsAt,
		IsPinned:  model.IsPinned,
		CreatedAt: model.CreatedAt,
	}
}

// AnnouncementListResponse wraps a paginated announcement listing.
type AnnouncementListResponse struct {
	Items      []AnnouncementResponse `json:"items"`
	Pagination PaginationMeta         `json:"pagination"`
	CacheHit   bool                   `json:"cache_hit"`
}

// AnnouncementRequest creates or replaces an announcement.
type AnnouncementRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=255"`
	Body     string `json:"body" validate:"required"`
	StartsAt string `json:"starts_at" validate:"required"`
	EndsAt   string `json:"ends_at" validate:"omitempty"`
	IsPinned bool   `json:"is_pinned"`
}

// AdminAnnouncementListRequest defines filters for the admin listing.
type AdminAnnouncementListRequest struct {
	Page     int
	PageSize int
	Search   string
}

package dto

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// AdminActionResponse serializes one undoable action log entry.
type AdminActionResponse struct {
	ID         uint              `json:"id"`
	EntityType string            `json:"entity_type"`
	EntityID   string            `json:"entity_id"`
	Operation  string            `json:"operation"`
	Data       json.RawMessage   `json:"data,omitempty"`
	Metadata   datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedBy  uint              `json:"created_by"`
	CreatedAt  time.Time         `json:"created_at"`
	ExpiresAt  time.Time         `json:"expires_at"`
}

// NewAdminActionResponse maps the model onto the wire shape.
func NewAdminActionResponse(action models.AdminAction) AdminActionResponse {
	return AdminActionResponse{
		ID:         action.ID,
		EntityType: action.EntityType,
		EntityID:   action.EntityID,
		Operation:  string(action.Operation),
		Data:       json.RawMessage(action.BeforeState),
		Metadata:   action.Metadata,
		CreatedBy:  action.CreatedBy,
		CreatedAt:  action.CreatedAt,
		ExpiresAt:  action.ExpiresAt,
	}
}

// AdminActionListResponse wraps a paginated action listing.
type AdminActionListResponse struct {
	Items      []AdminActionResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// UndoResponse reports the outcome of a successful undo.
type UndoResponse struct {
	ActionID      uint            `json:"action_id"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	Operation     string          `json:"operation"`
	RestoredState json.RawMessage `json:"restored_state,omitempty"`
}

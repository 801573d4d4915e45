package models

import (
	"time"

	"gorm.io/datatypes"
)

// Operation identifies the kind of tracked mutation an admin action documents.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid reports whether the operation is one of the tracked variants.
func (o Operation) Valid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// AdminAction records a reversible mutation performed by an administrator.
// BeforeState holds the entity snapshot taken before the mutation; it is null
// for create operations because there is no prior state to restore.
type AdminAction struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	EntityType  string            `gorm:"size:64;not null;index" json:"entity_type"`
	EntityID    string            `gorm:"size:64;not null;index" json:"entity_id"`
	Operation   Operation         `gorm:"size:16;not null" json:"operation"`
	BeforeState datatypes.JSON    `gorm:"type:json" json:"data"`
	Metadata    datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedBy   uint              `gorm:"not null;index" json:"created_by"`
	CreatedAt   time.Time         `json:"created_at"`
	ExpiresAt   time.Time         `gorm:"not null;index" json:"expires_at"`
	ConsumedAt  *time.Time        `gorm:"index" json:"consumed_at,omitempty"`
}

// Consumed reports whether the action has already been undone or superseded.
func (a AdminAction) Consumed() bool {
	return a.ConsumedAt != nil
}

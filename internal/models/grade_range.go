package models

import "time"

// GradeRange is one bucket of the score partition. Max is nullable in storage;
// a null max means the bucket extends to 100.
type GradeRange struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Grade     string    `gorm:"size:8;not null;uniqueIndex" json:"grade"`
	Min       int       `gorm:"not null" json:"min"`
	Max       *int      `json:"max"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

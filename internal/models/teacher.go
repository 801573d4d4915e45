package models

import "time"

// Teacher represents an instructor assigned to classes and subjects.
type Teacher struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	NIP       string    `gorm:"column:nip;size:32;uniqueIndex;not null" json:"nip"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Subjects  string    `gorm:"size:255" json:"subjects"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import "time"

// FeePayment records one monthly fee payment by a student.
type FeePayment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_fee_period;index" json:"student_id"`
	Month     int       `gorm:"not null;uniqueIndex:idx_fee_period" json:"month"`
	Year      int       `gorm:"not null;uniqueIndex:idx_fee_period" json:"year"`
	Amount    int64     `gorm:"not null" json:"amount"`
	Method    string    `gorm:"size:32" json:"method"`
	Note      string    `gorm:"size:255" json:"note"`
	PaidAt    time.Time `gorm:"not null" json:"paid_at"`
	CreatedBy uint      `gorm:"not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

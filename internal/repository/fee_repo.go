package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// FeeFilter narrows fee payment queries.
type FeeFilter struct {
	Page      int
	PageSize  int
	StudentID uint
	Month     int
	Year      int
}

// FeeRepository persists monthly fee payments.
type FeeRepository interface {
	Create(ctx context.Context, payment *models.FeePayment) error
	List(ctx context.Context, filter FeeFilter) ([]models.FeePayment, int64, error)
	// PaidMonths returns the months of the given year a student has paid for.
	PaidMonths(ctx context.Context, studentID uint, year int) ([]int, error)
}

type feeRepository struct {
	db *gorm.DB
}

// NewFeeRepository constructs the fee repository.
func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

func (r *feeRepository) Create(ctx context.Context, payment *models.FeePayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *feeRepository) List(ctx context.Context, filter FeeFilter) ([]models.FeePayment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FeePayment{})

	if filter.StudentID > 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Month > 0 {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year > 0 {
		query = query.Where("year = ?", filter.Year)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var payments []models.FeePayment
	if err := query.Order("year DESC, month DESC").Find(&payments).Error; err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

func (r *feeRepository) PaidMonths(ctx context.Context, studentID uint, year int) ([]int, error) {
	var months []int
	err := r.db.WithContext(ctx).Model(&models.FeePayment{}).
		Where("student_id = ? AND year = ?", studentID, year).
		Order("month ASC").
		Pluck("month", &months).Error
	return months, err
}

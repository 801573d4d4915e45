package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// GradeRangeRepository persists the grade partition. The set is only ever
// replaced wholesale; there is no per-range patching.
type GradeRangeRepository interface {
	Load(ctx context.Context) ([]models.GradeRange, error)
	ReplaceAll(ctx context.Context, ranges []models.GradeRange) error
}

type gradeRangeRepository struct {
	db *gorm.DB
}

// NewGradeRangeRepository constructs the grade range repository.
func NewGradeRangeRepository(db *gorm.DB) GradeRangeRepository {
	return &gradeRangeRepository{db: db}
}

func (r *gradeRangeRepository) Load(ctx context.Context) ([]models.GradeRange, error) {
	var ranges []models.GradeRange
	err := r.db.WithContext(ctx).Order("min ASC").Find(&ranges).Error
	return ranges, err
}

func (r *gradeRangeRepository) ReplaceAll(ctx context.Context, ranges []models.GradeRange) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.GradeRange{}).Error; err != nil {
			return err
		}
		if len(ranges) == 0 {
			return nil
		}
		return tx.Create(&ranges).Error
	})
}

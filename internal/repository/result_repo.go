package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// ResultFilter narrows exam result queries.
type ResultFilter struct {
	Page      int
	PageSize  int
	StudentID uint
	Subject   string
	Term      string
}

// ResultRepository persists exam results. Score writes are tracked mutations.
type ResultRepository interface {
	List(ctx context.Context, filter ResultFilter) ([]models.ExamResult, int64, error)
	GetByID(ctx context.Context, id uint) (models.ExamResult, error)
	Create(ctx context.Context, result *models.ExamResult, action *models.AdminAction) error
	Update(ctx context.Context, result *models.ExamResult, action *models.AdminAction) error
	Delete(ctx context.Context, id uint, action *models.AdminAction) error
}

type resultRepository struct {
	db *gorm.DB
}

// NewResultRepository constructs the exam result repository.
func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) List(ctx context.Context, filter ResultFilter) ([]models.ExamResult, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ExamResult{})

	if filter.StudentID > 0 {
		query = query.Where("student_id = ?", filter.StudentID)
	}
	if filter.Subject != "" {
		query = query.Where("subject = ?", filter.Subject)
	}
	if filter.Term != "" {
		query = query.Where("term = ?", filter.Term)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var results []models.ExamResult
	if err := query.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, 0, err
	}

	return results, total, nil
}

func (r *resultRepository) GetByID(ctx context.Context, id uint) (models.ExamResult, error) {
	var result models.ExamResult
	err := r.db.WithContext(ctx).First(&result, id).Error
	return result, err
}

func (r *resultRepository) Create(ctx context.Context, result *models.ExamResult, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		if action != nil {
			action.EntityID = entityIdentifier(result.ID)
		}
		return recordActionTx(tx, action)
	})
}

func (r *resultRepository) Update(ctx context.Context, result *models.ExamResult, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(result).Error; err != nil {
			return err
		}
		return recordActionTx(tx, action)
	})
}

func (r *resultRepository) Delete(ctx context.Context, id uint, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ExamResult{}, id).Error; err != nil {
			return err
		}
		return recordActionTx(tx, action)
	})
}

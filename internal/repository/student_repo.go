package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// StudentFilter narrows student list queries.
type StudentFilter struct {
	Page     int
	PageSize int
	Search   string
	ClassID  *uint
	Status   string
}

// StudentRepository persists student records. Tracked mutations write the
// domain row and the admin action entry in one transaction.
type StudentRepository interface {
	List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
	Create(ctx context.Context, student *models.Student, action *models.AdminAction) error
	Update(ctx context.Context, student *models.Student, action *models.AdminAction) error
	Delete(ctx context.Context, id uint, action *models.AdminAction) error
	CountByClass(ctx context.Context, classID uint) (int64, error)
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs the student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) List(ctx context.Context, filter StudentFilter) ([]models.Student, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Student{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR nis LIKE ?", pattern, pattern)
	}
	if filter.ClassID != nil {
		query = query.Where("class_id = ?", *filter.ClassID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var students []models.Student
	if err := query.Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).First(&student, id).Error
	return student, err
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		if action != nil {
			action.EntityID = entityIdentifier(student.ID)
		}
		return recordActionTx(tx, action)
	})
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(student).Error; err != nil {
			return err
		}
		return recordActionTx(tx, action)
	})
}

func (r *studentRepository) Delete(ctx context.Context, id uint, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Student{}, id).Error; err != nil {
			return err
		}
		return recordActionTx(tx, action)
	})
}

func (r *studentRepository) CountByClass(ctx context.Context, classID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Student{}).Where("class_id = ?", classID).Count(&count).Error
	return count, err
}

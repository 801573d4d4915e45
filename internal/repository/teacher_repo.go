package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// TeacherFilter narrows teacher list queries.
type TeacherFilter struct {
	Page     int
	PageSize int
	Search   string
}

// TeacherRepository persists teacher records with tracked mutations.
type TeacherRepository interface {
	List(ctx context.Context, filter TeacherFilter) ([]models.Teacher, int64, error)
	GetByID(ctx context.Context, id uint) (models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher, action *models.AdminAction) error
	Update(ctx context.Context, teacher *models.Teacher, action *models.AdminAction) error
	Delete(ctx context.Context, id uint, action *models.AdminAction) error
}

type teacherRepository struct {
	db *gorm.DB
}

// NewTeacherRepository constructs the teacher repository.
func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) List(ctx context.Context, filter TeacherFilter) ([]models.Teacher, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Teacher{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR nip LIKE ?", pattern, pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var teachers []models.Teacher
	if err := query.Order("name ASC").Find(&teachers).Error; err != nil {
		return nil, 0, err
	}

	return teachers, total, nil
}

func (r *teacherRepository) GetByID(ctx context.Context, id uint) (models.Teacher, error) {
	var teacher models.Teacher
	err := r.db.WithContext(ctx).First(&teacher, id).Error
	return teacher, err
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(teacher).Error; err != nil {
			return err
		}
		if action != nil {
			action.EntityID = entityIdentifier(teacher.ID)
		}
		return recordActionTx(tx, action)
	})
}

func (r *teacherRepository) Update(ctx context.Context, teacher *models.Teacher, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(teacher).Error; err != nil {
			return err
		}
		return recordActionTx(tx, action)
	})
}

func (r *teacherRepository) Delete(ctx context.Context, id uint, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Teacher{}, id).Error; err != nil {
			return err
		}
		return recordActionTx(tx, action)
	})
}

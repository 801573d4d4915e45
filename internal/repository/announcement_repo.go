package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// AnnouncementFilter filters public announcement list queries.
type AnnouncementFilter struct {
	Page     int
	PageSize int
}

// AdminAnnouncementFilter filters the unrestricted admin listing.
type AdminAnnouncementFilter struct {
	Page     int
	PageSize int
	Search   string
}

// AnnouncementRepository exposes persistence helpers for announcements.
// Mutations take the admin action entry documenting them; both rows are
// written in one transaction.
type AnnouncementRepository interface {
	ListActive(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, int64, error)
	ListAll(ctx context.Context, filter AdminAnnouncementFilter) ([]models.Announcement, int64, error)
	GetByID(ctx context.Context, id uint) (models.Announcement, error)
	Create(ctx context.Context, item *models.Announcement, action *models.AdminAction) error
	Update(ctx context.Context, item *models.Announcement, action *models.AdminAction) error
	Delete(ctx context.Context, id uint, action *models.AdminAction) error
}

type announcementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository constructs the repository implementation.
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) ListActive(ctx context.Context, filter AnnouncementFilter) ([]models.Announcement, int64, error) {
	now := time.Now()
	query := r.db.WithContext(ctx).Model(&models.Announcement{}).
		Where("is_pinned = ? OR (starts_at <= ? AND (ends_at IS NULL OR ends_at >= ?))", true, now, now)

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var items []models.Announcement
	if err := query.Order("is_pinned DESC, starts_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *announcementRepository) ListAll(ctx context.Context, filter AdminAnnouncementFilter) ([]models.Announcement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Announcement{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ?", pattern)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var items []models.Announcement
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *announcementRepository) GetByID(ctx context.Context, id uint) (models.Announcement, error) {
	var item models.Announcement
	err := r.db.WithContext(ctx).First(&item, id).Error
	return item, err
}

func (r *announcementRepository) Create(ctx context.Context, item *models.Announcement, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		if action != nil {
			action.EntityID = entityIdentifier(item.ID)
		}
		return recordActionTx(tx, action)
	})
}

func (r *announcementRepository) Update(ctx context.Context, item *models.Announcement, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return recordActionTx(tx, action)
	})
}

func (r *announcementRepository) Delete(ctx context.Context, id uint, action *models.AdminAction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Announcement{}, id).Error; err != nil {
			return err
		}
		return recordActionTx(tx, action)
	})
}

func paginate(query *gorm.DB, page, pageSize int) *gorm.DB {
	if pageSize <= 0 {
		return query
	}
	if page <= 0 {
		page = 1
	}
	return query.Offset((page - 1) * pageSize).Limit(pageSize)
}

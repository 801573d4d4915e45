package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/TofuAo/Masjid-App-sub001/internal/models"
)

// ErrActionConsumed is returned when the conditional consume update matches no
// row, meaning another request already claimed the entry.
var ErrActionConsumed = errors.New("admin action already consumed")

// AdminActionFilter filters the eligible-action listing.
type AdminActionFilter struct {
	Page       int
	PageSize   int
	EntityType string
}

// AdminActionRepository persists the reversible-action log.
type AdminActionRepository interface {
	GetByID(ctx context.Context, id uint) (models.AdminAction, error)
	// ListEligible returns unconsumed entries whose undo window is still open,
	// newest first.
	ListEligible(ctx context.Context, filter AdminActionFilter) ([]models.AdminAction, int64, error)
	// ConsumeAndRestore marks the entry consumed and applies the restore
	// callback in one transaction. The consume is a conditional update, so
	// exactly one of any concurrent callers wins; the rest get
	// ErrActionConsumed without their callback running.
	ConsumeAndRestore(ctx context.Context, id uint, restore func(tx *gorm.DB) error) error
}

type adminActionRepository struct {
	db *gorm.DB
}

// NewAdminActionRepository constructs the repository implementation.
func NewAdminActionRepository(db *gorm.DB) AdminActionRepository {
	return &adminActionRepository{db: db}
}

func (r *adminActionRepository) GetByID(ctx context.Context, id uint) (models.AdminAction, error) {
	var action models.AdminAction
	err := r.db.WithContext(ctx).First(&action, id).Error
	return action, err
}

func (r *adminActionRepository) ListEligible(ctx context.Context, filter AdminActionFilter) ([]models.AdminAction, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AdminAction{}).
		Where("consumed_at IS NULL AND expires_at >= ?", time.Now())

	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = paginate(query, filter.Page, filter.PageSize)

	var entries []models.AdminAction
	if err := query.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *adminActionRepository) ConsumeAndRestore(ctx context.Context, id uint, restore func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.AdminAction{}).
			Where("id = ? AND consumed_at IS NULL", id).
			Update("consumed_at", time.Now())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrActionConsumed
		}

		return restore(tx)
	})
}

// recordActionTx persists the action entry inside the caller's transaction.
// Any still-unconsumed entries for the same entity are consumed first, so only
// the most recent mutation stays reversible.
func recordActionTx(tx *gorm.DB, action *models.AdminAction) error {
	if action == nil {
		return nil
	}

	if action.EntityID != "" {
		err := tx.Model(&models.AdminAction{}).
			Where("entity_type = ? AND entity_id = ? AND consumed_at IS NULL", action.EntityType, action.EntityID).
			Update("consumed_at", time.Now()).Error
		if err != nil {
			return err
		}
	}

	return tx.Create(action).Error
}

func entityIdentifier(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

package repository

import (
	"context"
	"errors"

	"github.com/vicriadty/cafe-app-ai/internal/model"

	"gorm.io/gorm"
)

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

func (r *MenuRepository) CreateCategory(ctx context.Context, category *model.MenuCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *MenuRepository) GetCategory(ctx context.Context, id uint) (*model.MenuCategory, error) {
	var category model.MenuCategory
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *MenuRepository) UpdateCategory(ctx context.Context, category *model.MenuCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// DeleteCategory removes the category together with its items.
func (r *MenuRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&model.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MenuCategory{}, id).Error
	})
}

func (r *MenuRepository) CreateItem(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *MenuRepository) GetItem(ctx context.Context, id uint) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemsByIDs loads all requested items in one query. Missing IDs are
// simply absent from the result.
func (r *MenuRepository) GetItemsByIDs(ctx context.Context, ids []uint) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *MenuRepository) UpdateItem(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *MenuRepository) DeleteItem(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.MenuItem{}, id).Error
}

func (r *MenuRepository) ListByRestaurant(ctx context.Context, restaurantID uint, includeUnavailable bool) ([]model.MenuCategory, error) {
	var categories []model.MenuCategory
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			if !includeUnavailable {
				db = db.Where("available = ?", true)
			}
			return db.Order("display_order ASC, id ASC")
		}).
		Where("restaurant_id = ?", restaurantID).
		Order("display_order ASC, id ASC").
		Find(&categories).Error
	return categories, err
}

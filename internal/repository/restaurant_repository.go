package repository

import (
	"context"
	"errors"

	"github.com/vicriadty/cafe-app-ai/internal/model"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func orderedCategories(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, id ASC")
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("display_order ASC, id ASC")
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := r.db.WithContext(ctx).First(&restaurant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) GetByIDWithMenu(ctx context.Context, id uint) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Preload("Categories.Items", orderedItems).
		First(&restaurant, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) GetBySlugWithMenu(ctx context.Context, slug string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Preload("Categories.Items", orderedItems).
		Where("slug = ?", slug).
		First(&restaurant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) ListActive(ctx context.Context) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&restaurants).Error
	return restaurants, err
}

func (r *RestaurantRepository) ListByOwner(ctx context.Context, ownerID uint) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	err := r.db.WithContext(ctx).
		Preload("Categories", orderedCategories).
		Preload("Categories.Items", orderedItems).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&restaurants).Error
	return restaurants, err
}

// CountBySlug counts restaurants using the slug, excluding excludeID (0 to
// count all).
func (r *RestaurantRepository) CountBySlug(ctx context.Context, slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Restaurant{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *RestaurantRepository) Update(ctx context.Context, restaurant *model.Restaurant) error {
	return r.db.WithContext(ctx).Save(restaurant).Error
}

// Delete removes the restaurant and cascades to its categories, items and
// orders in one transaction.
func (r *RestaurantRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderIDs := tx.Model(&model.Order{}).Select("id").Where("restaurant_id = ?", id)
		if err := tx.Where("order_id IN (?)", orderIDs).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&model.Order{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&model.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&model.MenuCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Restaurant{}, id).Error
	})
}

package repository

import (
	"context"
	"errors"

	"github.com/vicriadty/cafe-app-ai/internal/model"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists the order header and its items in a single transaction.
// Readers never observe a header without its items.
func (r *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update writes the order header. Items are immutable and never updated
// here.
func (r *OrderRepository) Update(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(order).Error
}

func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uint, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Order{}).Where("customer_id = ?", customerID)
	return r.list(query, status, page, limit)
}

func (r *OrderRepository) ListByRestaurant(ctx context.Context, restaurantID uint, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Order{}).Where("restaurant_id = ?", restaurantID)
	return r.list(query, status, page, limit)
}

func (r *OrderRepository) list(query *gorm.DB, status model.OrderStatus, page, limit int) ([]model.Order, int64, error) {
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []model.Order
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	return orders, total, err
}

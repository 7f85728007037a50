package service

import (
	"context"

	"github.com/vicriadty/cafe-app-ai/internal/model"
)

// Repository lookups return (nil, nil) when the record does not exist;
// services translate that into NOT_FOUND.

type RestaurantRepository interface {
	Create(ctx context.Context, restaurant *model.Restaurant) error
	GetByID(ctx context.Context, id uint) (*model.Restaurant, error)
	GetByIDWithMenu(ctx context.Context, id uint) (*model.Restaurant, error)
	GetBySlugWithMenu(ctx context.Context, slug string) (*model.Restaurant, error)
	ListActive(ctx context.Context) ([]model.Restaurant, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]model.Restaurant, error)
	CountBySlug(ctx context.Context, slug string, excludeID uint) (int64, error)
	Update(ctx context.Context, restaurant *model.Restaurant) error
	Delete(ctx context.Context, id uint) error
}

type MenuRepository interface {
	CreateCategory(ctx context.Context, category *model.MenuCategory) error
	GetCategory(ctx context.Context, id uint) (*model.MenuCategory, error)
	UpdateCategory(ctx context.Context, category *model.MenuCategory) error
	DeleteCategory(ctx context.Context, id uint) error
	CreateItem(ctx context.Context, item *model.MenuItem) error
	GetItem(ctx context.Context, id uint) (*model.MenuItem, error)
	GetItemsByIDs(ctx context.Context, ids []uint) ([]model.MenuItem, error)
	UpdateItem(ctx context.Context, item *model.MenuItem) error
	DeleteItem(ctx context.Context, id uint) error
	ListByRestaurant(ctx context.Context, restaurantID uint, includeUnavailable bool) ([]model.MenuCategory, error)
}

type OrderRepository interface {
	// Create persists the order header and all its items atomically.
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id uint) (*model.Order, error)
	Update(ctx context.Context, order *model.Order) error
	ListByCustomer(ctx context.Context, customerID uint, status model.OrderStatus, page, limit int) ([]model.Order, int64, error)
	ListByRestaurant(ctx context.Context, restaurantID uint, status model.OrderStatus, page, limit int) ([]model.Order, int64, error)
}

// DirectoryCache is an optional cache-aside layer for public restaurant
// reads. Implementations must be safe to skip entirely (a nil cache).
type DirectoryCache interface {
	GetBySlug(ctx context.Context, slug string) (*model.Restaurant, bool)
	SetBySlug(ctx context.Context, restaurant *model.Restaurant)
	Invalidate(ctx context.Context, slugs ...string)
}

// EventPublisher emits order lifecycle events. Publishing is best-effort;
// implementations log failures instead of returning them.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *model.Order)
	OrderStatusChanged(ctx context.Context, order *model.Order, previous model.OrderStatus)
}

// Generator produces assistant replies from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

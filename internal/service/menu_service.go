package service

import (
	"context"

	"github.com/vicriadty/cafe-app-ai/internal/apperr"
	"github.com/vicriadty/cafe-app-ai/internal/model"

	"github.com/shopspring/decimal"
)

type MenuService struct {
	menu        MenuRepository
	restaurants RestaurantRepository
	cache       DirectoryCache
}

func NewMenuService(menu MenuRepository, restaurants RestaurantRepository, cache DirectoryCache) *MenuService {
	return &MenuService{menu: menu, restaurants: restaurants, cache: cache}
}

type CategoryInput struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
	RestaurantID uint   `json:"restaurant_id"`
}

type ItemInput struct {
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Available    *bool           `json:"available"`
	DisplayOrder int             `json:"display_order"`
	CategoryID   uint            `json:"category_id"`
	RestaurantID uint            `json:"restaurant_id"`
}

// ownedRestaurant loads a restaurant and verifies the caller owns it. Every
// menu mutation is gated through the owning restaurant, not the category or
// item itself.
func (s *MenuService) ownedRestaurant(ctx context.Context, restaurantID uint, caller model.Identity) (*model.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load restaurant", err)
	}
	if restaurant == nil {
		return nil, apperr.NotFound("restaurant not found")
	}
	if restaurant.OwnerID != caller.ID {
		return nil, apperr.Forbidden("you do not own this restaurant")
	}
	return restaurant, nil
}

func (s *MenuService) invalidate(ctx context.Context, restaurant *model.Restaurant) {
	if s.cache != nil && restaurant != nil {
		s.cache.Invalidate(ctx, restaurant.Slug)
	}
}

// GetByRestaurant returns the restaurant's categories with their items,
// sorted by display order. Unavailable items are included only on request.
func (s *MenuService) GetByRestaurant(ctx context.Context, restaurantID uint, includeUnavailable bool) ([]model.MenuCategory, error) {
	restaurant, err := s.restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load restaurant", err)
	}
	if restaurant == nil {
		return nil, apperr.NotFound("restaurant not found")
	}

	categories, err := s.menu.ListByRestaurant(ctx, restaurantID, includeUnavailable)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load menu", err)
	}
	return categories, nil
}

func (s *MenuService) CreateCategory(ctx context.Context, input CategoryInput, caller model.Identity) (*model.MenuCategory, error) {
	if input.Name == "" {
		return nil, apperr.BadRequest("name is required")
	}
	restaurant, err := s.ownedRestaurant(ctx, input.RestaurantID, caller)
	if err != nil {
		return nil, err
	}

	category := &model.MenuCategory{
		Name:         input.Name,
		DisplayOrder: input.DisplayOrder,
		RestaurantID: input.RestaurantID,
	}
	if err := s.menu.CreateCategory(ctx, category); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create category", err)
	}
	s.invalidate(ctx, restaurant)
	return category, nil
}

func (s *MenuService) UpdateCategory(ctx context.Context, id uint, input CategoryInput, caller model.Identity) (*model.MenuCategory, error) {
	category, err := s.menu.GetCategory(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load category", err)
	}
	if category == nil {
		return nil, apperr.NotFound("category not found")
	}
	restaurant, err := s.ownedRestaurant(ctx, category.RestaurantID, caller)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	category.DisplayOrder = input.DisplayOrder
	if err := s.menu.UpdateCategory(ctx, category); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update category", err)
	}
	s.invalidate(ctx, restaurant)
	return category, nil
}

func (s *MenuService) DeleteCategory(ctx context.Context, id uint, caller model.Identity) error {
	category, err := s.menu.GetCategory(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to load category", err)
	}
	if category == nil {
		return apperr.NotFound("category not found")
	}
	restaurant, err := s.ownedRestaurant(ctx, category.RestaurantID, caller)
	if err != nil {
		return err
	}

	if err := s.menu.DeleteCategory(ctx, id); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete category", err)
	}
	s.invalidate(ctx, restaurant)
	return nil
}

func (s *MenuService) CreateItem(ctx context.Context, input ItemInput, caller model.Identity) (*model.MenuItem, error) {
	if input.Name == "" {
		return nil, apperr.BadRequest("name is required")
	}
	if input.Price.IsNegative() {
		return nil, apperr.BadRequest("price cannot be negative")
	}
	restaurant, err := s.ownedRestaurant(ctx, input.RestaurantID, caller)
	if err != nil {
		return nil, err
	}
	if err := s.checkCategoryLink(ctx, input.CategoryID, input.RestaurantID); err != nil {
		return nil, err
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}
	item := &model.MenuItem{
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price.Round(2),
		Available:    available,
		DisplayOrder: input.DisplayOrder,
		CategoryID:   input.CategoryID,
		RestaurantID: input.RestaurantID,
	}
	if err := s.menu.CreateItem(ctx, item); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create item", err)
	}
	s.invalidate(ctx, restaurant)
	return item, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, id uint, input ItemInput, caller model.Identity) (*model.MenuItem, error) {
	item, err := s.menu.GetItem(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load item", err)
	}
	if item == nil {
		return nil, apperr.NotFound("menu item not found")
	}
	restaurant, err := s.ownedRestaurant(ctx, item.RestaurantID, caller)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != 0 && input.CategoryID != item.CategoryID {
		if err := s.checkCategoryLink(ctx, input.CategoryID, item.RestaurantID); err != nil {
			return nil, err
		}
		item.CategoryID = input.CategoryID
	}
	if input.Name != "" {
		item.Name = input.Name
	}
	item.Description = input.Description
	if input.Price.IsNegative() {
		return nil, apperr.BadRequest("price cannot be negative")
	}
	// Price changes never touch existing order items; those keep their
	// snapshot.
	item.Price = input.Price.Round(2)
	if input.Available != nil {
		item.Available = *input.Available
	}
	item.DisplayOrder = input.DisplayOrder

	if err := s.menu.UpdateItem(ctx, item); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update item", err)
	}
	s.invalidate(ctx, restaurant)
	return item, nil
}

func (s *MenuService) DeleteItem(ctx context.Context, id uint, caller model.Identity) error {
	item, err := s.menu.GetItem(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to load item", err)
	}
	if item == nil {
		return apperr.NotFound("menu item not found")
	}
	restaurant, err := s.ownedRestaurant(ctx, item.RestaurantID, caller)
	if err != nil {
		return err
	}

	if err := s.menu.DeleteItem(ctx, id); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete item", err)
	}
	s.invalidate(ctx, restaurant)
	return nil
}

// ToggleItemAvailability flips the availability flag relative to the last
// read value. Two concurrent toggles resolve last-write-wins.
func (s *MenuService) ToggleItemAvailability(ctx context.Context, id uint, caller model.Identity) (*model.MenuItem, error) {
	item, err := s.menu.GetItem(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load item", err)
	}
	if item == nil {
		return nil, apperr.NotFound("menu item not found")
	}
	restaurant, err := s.ownedRestaurant(ctx, item.RestaurantID, caller)
	if err != nil {
		return nil, err
	}

	item.Available = !item.Available
	if err := s.menu.UpdateItem(ctx, item); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update item", err)
	}
	s.invalidate(ctx, restaurant)
	return item, nil
}

// checkCategoryLink rejects cross-restaurant category assignment.
func (s *MenuService) checkCategoryLink(ctx context.Context, categoryID, restaurantID uint) error {
	if categoryID == 0 {
		return apperr.BadRequest("category_id is required")
	}
	category, err := s.menu.GetCategory(ctx, categoryID)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to load category", err)
	}
	if category == nil {
		return apperr.BadRequest("category does not exist")
	}
	if category.RestaurantID != restaurantID {
		return apperr.BadRequest("category belongs to a different restaurant")
	}
	return nil
}

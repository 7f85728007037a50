package service

import (
	"context"
	"fmt"

	"github.com/vicriadty/cafe-app-ai/internal/apperr"
	"github.com/vicriadty/cafe-app-ai/internal/model"
)

type RestaurantService struct {
	restaurants RestaurantRepository
	cache       DirectoryCache
}

// NewRestaurantService builds the restaurant directory service. cache may be
// nil when caching is disabled.
func NewRestaurantService(restaurants RestaurantRepository, cache DirectoryCache) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, cache: cache}
}

type CreateRestaurantInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

type UpdateRestaurantInput struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Active      *bool   `json:"active"`
}

// GetBySlug returns the public projection of an active restaurant with its
// available menu, serving from the cache when possible.
func (s *RestaurantService) GetBySlug(ctx context.Context, slug string) (*model.Restaurant, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetBySlug(ctx, slug); ok {
			return cached, nil
		}
	}

	restaurant, err := s.restaurants.GetBySlugWithMenu(ctx, slug)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load restaurant", err)
	}
	if restaurant == nil {
		return nil, apperr.NotFound("restaurant not found")
	}

	public := restaurant.PublicView()
	if s.cache != nil {
		s.cache.SetBySlug(ctx, public)
	}
	return public, nil
}

// ListPublic returns active restaurants, newest first, without owner contact
// fields or menus.
func (s *RestaurantService) ListPublic(ctx context.Context) ([]model.Restaurant, error) {
	restaurants, err := s.restaurants.ListActive(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list restaurants", err)
	}
	public := make([]model.Restaurant, 0, len(restaurants))
	for i := range restaurants {
		view := restaurants[i].PublicView()
		view.Categories = nil
		public = append(public, *view)
	}
	return public, nil
}

// GetByID returns the restaurant with its menu. Non-owners receive the
// redacted projection with unavailable items stripped.
func (s *RestaurantService) GetByID(ctx context.Context, id uint, caller model.Identity) (*model.Restaurant, error) {
	restaurant, err := s.restaurants.GetByIDWithMenu(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load restaurant", err)
	}
	if restaurant == nil {
		return nil, apperr.NotFound("restaurant not found")
	}
	if restaurant.OwnerID != caller.ID {
		return restaurant.PublicView(), nil
	}
	return restaurant, nil
}

// Create registers a new restaurant owned by the caller.
func (s *RestaurantService) Create(ctx context.Context, input CreateRestaurantInput, caller model.Identity) (*model.Restaurant, error) {
	if input.Name == "" {
		return nil, apperr.BadRequest("name is required")
	}
	if !model.ValidSlug(input.Slug) {
		return nil, apperr.BadRequest("slug must contain only lowercase letters, digits and hyphens")
	}

	taken, err := s.restaurants.CountBySlug(ctx, input.Slug, 0)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to check slug", err)
	}
	if taken > 0 {
		return nil, apperr.Conflict(fmt.Sprintf("slug %q is already taken", input.Slug))
	}

	restaurant := &model.Restaurant{
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		Address:     input.Address,
		Phone:       input.Phone,
		Email:       input.Email,
		Active:      true,
		OwnerID:     caller.ID,
	}
	if err := s.restaurants.Create(ctx, restaurant); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create restaurant", err)
	}
	return restaurant, nil
}

// Update modifies a restaurant owned by the caller.
func (s *RestaurantService) Update(ctx context.Context, id uint, input UpdateRestaurantInput, caller model.Identity) (*model.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load restaurant", err)
	}
	if restaurant == nil {
		return nil, apperr.NotFound("restaurant not found")
	}
	if restaurant.OwnerID != caller.ID {
		return nil, apperr.Forbidden("you do not own this restaurant")
	}

	previousSlug := restaurant.Slug
	if input.Slug != nil && *input.Slug != restaurant.Slug {
		if !model.ValidSlug(*input.Slug) {
			return nil, apperr.BadRequest("slug must contain only lowercase letters, digits and hyphens")
		}
		taken, err := s.restaurants.CountBySlug(ctx, *input.Slug, id)
		if err != nil {
			return nil, apperr.Wrap(apperr.CodeInternal, "failed to check slug", err)
		}
		if taken > 0 {
			return nil, apperr.Conflict(fmt.Sprintf("slug %q is already taken", *input.Slug))
		}
		restaurant.Slug = *input.Slug
	}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, apperr.BadRequest("name cannot be empty")
		}
		restaurant.Name = *input.Name
	}
	if input.Description != nil {
		restaurant.Description = *input.Description
	}
	if input.Address != nil {
		restaurant.Address = *input.Address
	}
	if input.Phone != nil {
		restaurant.Phone = *input.Phone
	}
	if input.Email != nil {
		restaurant.Email = *input.Email
	}
	if input.Active != nil {
		restaurant.Active = *input.Active
	}

	if err := s.restaurants.Update(ctx, restaurant); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update restaurant", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, previousSlug, restaurant.Slug)
	}
	return restaurant, nil
}

// Delete removes a restaurant owned by the caller, cascading to its
// categories, items and orders.
func (s *RestaurantService) Delete(ctx context.Context, id uint, caller model.Identity) error {
	restaurant, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to load restaurant", err)
	}
	if restaurant == nil {
		return apperr.NotFound("restaurant not found")
	}
	if restaurant.OwnerID != caller.ID {
		return apperr.Forbidden("you do not own this restaurant")
	}

	if err := s.restaurants.Delete(ctx, id); err != nil {
		return apperr.Wrap(apperr.CodeInternal, "failed to delete restaurant", err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, restaurant.Slug)
	}
	return nil
}

// ListMine returns all restaurants owned by the caller with their full menus.
func (s *RestaurantService) ListMine(ctx context.Context, caller model.Identity) ([]model.Restaurant, error) {
	restaurants, err := s.restaurants.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list restaurants", err)
	}
	return restaurants, nil
}

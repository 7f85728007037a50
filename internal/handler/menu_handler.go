package handler

import (
	"net/http"
	"strconv"

	"github.com/vicriadty/cafe-app-ai/internal/middleware"
	"github.com/vicriadty/cafe-app-ai/internal/service"
	"github.com/vicriadty/cafe-app-ai/pkg/logger"
	"github.com/vicriadty/cafe-app-ai/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type MenuHandler struct {
	menu *service.MenuService
}

func NewMenuHandler(menu *service.MenuService) *MenuHandler {
	return &MenuHandler{menu: menu}
}

// GetByRestaurant handles listing a restaurant's menu, sorted by display
// order
func (h *MenuHandler) GetByRestaurant(c echo.Context) error {
	log := logger.FromContext(c)

	restaurantID, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant ID"})
	}

	includeUnavailable := false
	if raw := c.QueryParam("include_unavailable"); raw != "" {
		if parsed, parseErr := strconv.ParseBool(raw); parseErr == nil {
			includeUnavailable = parsed
		} else {
			log.Warn("Invalid include_unavailable parameter", zap.String("value", raw))
		}
	}

	categories, svcErr := h.menu.GetByRestaurant(c.Request().Context(), restaurantID, includeUnavailable)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	log.Info("Menu retrieved",
		zap.Uint("restaurant_id", restaurantID),
		zap.Int("categories", len(categories)))
	prometheus.RecordMenuOperation("get_by_restaurant")
	return c.JSON(http.StatusOK, categories)
}

// CreateCategory handles menu category creation by the restaurant owner
func (h *MenuHandler) CreateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var input service.CategoryInput
	if err := c.Bind(&input); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	category, err := h.menu.CreateCategory(c.Request().Context(), input, identity)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.Uint("restaurant_id", category.RestaurantID))
	prometheus.RecordMenuOperation("create_category")
	return c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles menu category updates by the restaurant owner
func (h *MenuHandler) UpdateCategory(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category ID"})
	}

	var input service.CategoryInput
	if err := c.Bind(&input); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	category, svcErr := h.menu.UpdateCategory(c.Request().Context(), id, input, identity)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	prometheus.RecordMenuOperation("update_category")
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles menu category deletion by the restaurant owner
func (h *MenuHandler) DeleteCategory(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category ID"})
	}

	if err := h.menu.DeleteCategory(c.Request().Context(), id, identity); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Category deleted", zap.Uint("category_id", id))
	prometheus.RecordMenuOperation("delete_category")
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted successfully"})
}

// CreateItem handles menu item creation by the restaurant owner
func (h *MenuHandler) CreateItem(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var input service.ItemInput
	if err := c.Bind(&input); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	item, err := h.menu.CreateItem(c.Request().Context(), input, identity)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Menu item created",
		zap.Uint("item_id", item.ID),
		zap.String("name", item.Name),
		zap.String("price", item.Price.StringFixed(2)))
	prometheus.RecordMenuOperation("create_item")
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem handles menu item updates by the restaurant owner
func (h *MenuHandler) UpdateItem(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item ID"})
	}

	var input service.ItemInput
	if err := c.Bind(&input); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	item, svcErr := h.menu.UpdateItem(c.Request().Context(), id, input, identity)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	prometheus.RecordMenuOperation("update_item")
	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles menu item deletion by the restaurant owner
func (h *MenuHandler) DeleteItem(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item ID"})
	}

	if err := h.menu.DeleteItem(c.Request().Context(), id, identity); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Menu item deleted", zap.Uint("item_id", id))
	prometheus.RecordMenuOperation("delete_item")
	return c.JSON(http.StatusOK, echo.Map{"message": "item deleted successfully"})
}

// ToggleItemAvailability handles flipping a menu item's availability flag
func (h *MenuHandler) ToggleItemAvailability(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item ID"})
	}

	item, svcErr := h.menu.ToggleItemAvailability(c.Request().Context(), id, identity)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	log.Info("Menu item availability toggled",
		zap.Uint("item_id", item.ID),
		zap.Bool("available", item.Available))
	prometheus.RecordMenuOperation("toggle_availability")
	return c.JSON(http.StatusOK, item)
}

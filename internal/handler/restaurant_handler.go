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

type RestaurantHandler struct {
	restaurants *service.RestaurantService
}

func NewRestaurantHandler(restaurants *service.RestaurantService) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

// ListPublic handles the public restaurant directory listing
func (h *RestaurantHandler) ListPublic(c echo.Context) error {
	log := logger.FromContext(c)

	restaurants, err := h.restaurants.ListPublic(c.Request().Context())
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Public restaurants listed", zap.Int("count", len(restaurants)))
	prometheus.RecordRestaurantOperation("list_public")
	return c.JSON(http.StatusOK, restaurants)
}

// GetBySlug handles public restaurant lookup by slug with the available menu
func (h *RestaurantHandler) GetBySlug(c echo.Context) error {
	log := logger.FromContext(c)
	slug := c.Param("slug")
	log.Info("Getting restaurant by slug", zap.String("slug", slug))

	restaurant, err := h.restaurants.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return respondError(c, log, err)
	}

	prometheus.RecordRestaurantOperation("get_by_slug")
	return c.JSON(http.StatusOK, restaurant)
}

// GetByID handles authenticated restaurant lookup; non-owners receive the
// redacted projection
func (h *RestaurantHandler) GetByID(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		log.Warn("Invalid restaurant ID", zap.String("id", c.Param("id")))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant ID"})
	}

	restaurant, svcErr := h.restaurants.GetByID(c.Request().Context(), id, identity)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	prometheus.RecordRestaurantOperation("get_by_id")
	return c.JSON(http.StatusOK, restaurant)
}

// Create handles restaurant creation by an owner
func (h *RestaurantHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var input service.CreateRestaurantInput
	if err := c.Bind(&input); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	log.Info("Creating restaurant",
		zap.String("name", input.Name),
		zap.String("slug", input.Slug),
		zap.Uint("owner_id", identity.ID))

	restaurant, err := h.restaurants.Create(c.Request().Context(), input, identity)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Restaurant created",
		zap.Uint("restaurant_id", restaurant.ID),
		zap.String("slug", restaurant.Slug))
	prometheus.RecordRestaurantOperation("create")
	return c.JSON(http.StatusCreated, restaurant)
}

// Update handles restaurant updates by its owner
func (h *RestaurantHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant ID"})
	}

	var input service.UpdateRestaurantInput
	if err := c.Bind(&input); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	restaurant, svcErr := h.restaurants.Update(c.Request().Context(), id, input, identity)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	log.Info("Restaurant updated", zap.Uint("restaurant_id", restaurant.ID))
	prometheus.RecordRestaurantOperation("update")
	return c.JSON(http.StatusOK, restaurant)
}

// Delete handles restaurant deletion by its owner, cascading to menu and
// orders
func (h *RestaurantHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant ID"})
	}

	if err := h.restaurants.Delete(c.Request().Context(), id, identity); err != nil {
		return respondError(c, log, err)
	}

	log.Info("Restaurant deleted", zap.Uint("restaurant_id", id))
	prometheus.RecordRestaurantOperation("delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "restaurant deleted successfully"})
}

// ListMine handles listing all restaurants owned by the caller
func (h *RestaurantHandler) ListMine(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	restaurants, err := h.restaurants.ListMine(c.Request().Context(), identity)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Owned restaurants listed",
		zap.Uint("owner_id", identity.ID),
		zap.Int("count", len(restaurants)))
	prometheus.RecordRestaurantOperation("list_mine")
	return c.JSON(http.StatusOK, restaurants)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

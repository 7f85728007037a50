package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/vicriadty/cafe-app-ai/internal/middleware"
	"github.com/vicriadty/cafe-app-ai/internal/model"
	"github.com/vicriadty/cafe-app-ai/internal/service"
	"github.com/vicriadty/cafe-app-ai/pkg/logger"
	"github.com/vicriadty/cafe-app-ai/prometheus"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// PlaceOrder handles order creation by an authenticated customer
func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var input service.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	log.Info("Placing order",
		zap.Uint("restaurant_id", input.RestaurantID),
		zap.Uint("customer_id", identity.ID),
		zap.Int("items", len(input.Items)))

	order, err := h.orders.PlaceOrder(c.Request().Context(), input, identity)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Order placed",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)))
	prometheus.RecordOrderOperation("place")
	return c.JSON(http.StatusCreated, order)
}

// UpdateStatus handles order status transitions by the restaurant owner
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	previous := ""
	order, svcErr := h.orders.GetByID(c.Request().Context(), id, identity)
	if svcErr == nil && order != nil {
		previous = string(order.Status)
	}

	updated, svcErr := h.orders.UpdateStatus(c.Request().Context(), id, model.OrderStatus(req.Status), identity)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	log.Info("Order status updated",
		zap.Uint("order_id", updated.ID),
		zap.String("status", string(updated.Status)))
	prometheus.RecordOrderOperation("update_status")
	prometheus.RecordOrderStatusTransition(previous, string(updated.Status))
	return c.JSON(http.StatusOK, updated)
}

// CancelOrder handles order cancellation by its customer
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	order, svcErr := h.orders.CancelOrder(c.Request().Context(), id, req.Reason, identity)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	log.Info("Order cancelled",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber))
	prometheus.RecordOrderOperation("cancel")
	return c.JSON(http.StatusOK, order)
}

// GetByID handles order lookup by its customer or the restaurant owner
func (h *OrderHandler) GetByID(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	order, svcErr := h.orders.GetByID(c.Request().Context(), id, identity)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	prometheus.RecordOrderOperation("get_by_id")
	return c.JSON(http.StatusOK, order)
}

// GetMyOrders handles the customer's paginated order history
func (h *OrderHandler) GetMyOrders(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	page, limit := parsePaging(c)
	result, err := h.orders.GetMyOrders(c.Request().Context(), identity, c.QueryParam("status"), page, limit)
	if err != nil {
		return respondError(c, log, err)
	}

	log.Info("Customer orders listed",
		zap.Uint("customer_id", identity.ID),
		zap.Int64("total", result.Total))
	prometheus.RecordOrderOperation("list_mine")
	return c.JSON(http.StatusOK, result)
}

// GetOrdersForRestaurant handles the owner's paginated order list for one
// restaurant
func (h *OrderHandler) GetOrdersForRestaurant(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	restaurantID, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid restaurant ID"})
	}

	page, limit := parsePaging(c)
	result, svcErr := h.orders.GetOrdersForRestaurant(c.Request().Context(), restaurantID, identity, c.QueryParam("status"), page, limit)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	log.Info("Restaurant orders listed",
		zap.Uint("restaurant_id", restaurantID),
		zap.Int64("total", result.Total))
	prometheus.RecordOrderOperation("list_for_restaurant")
	return c.JSON(http.StatusOK, result)
}

// GetQRCode renders a QR code pointing at the order tracking reference.
// Visibility follows the same rule as GetByID.
func (h *OrderHandler) GetQRCode(c echo.Context) error {
	log := logger.FromContext(c)

	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := parseID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order ID"})
	}

	order, svcErr := h.orders.GetByID(c.Request().Context(), id, identity)
	if svcErr != nil {
		return respondError(c, log, svcErr)
	}

	payload := fmt.Sprintf("order:%s", order.OrderNumber)
	png, qrErr := qrcode.Encode(payload, qrcode.Medium, 256)
	if qrErr != nil {
		log.Error("Failed to generate QR code", zap.Error(qrErr))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to generate QR code"})
	}

	prometheus.RecordOrderOperation("qr_code")
	return c.Blob(http.StatusOK, "image/png", png)
}

func parsePaging(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return page, limit
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vicriadty/cafe-app-ai/internal/apperr"
	"github.com/vicriadty/cafe-app-ai/internal/model"

	"github.com/shopspring/decimal"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

type OrderService struct {
	orders      OrderRepository
	menu        MenuRepository
	restaurants RestaurantRepository
	events      EventPublisher
}

func NewOrderService(orders OrderRepository, menu MenuRepository, restaurants RestaurantRepository, events EventPublisher) *OrderService {
	return &OrderService{orders: orders, menu: menu, restaurants: restaurants, events: events}
}

type OrderItemInput struct {
	MenuItemID          uint   `json:"menu_item_id"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"special_instructions"`
}

type PlaceOrderInput struct {
	RestaurantID  uint             `json:"restaurant_id"`
	Items         []OrderItemInput `json:"items"`
	CustomerName  string           `json:"customer_name"`
	CustomerEmail string           `json:"customer_email"`
	CustomerPhone string           `json:"customer_phone"`
	Notes         string           `json:"notes"`
}

type OrderPage struct {
	Orders []model.Order `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

// PlaceOrder validates the cart against the current menu, snapshots prices,
// and persists the order header together with its items in one transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput, caller model.Identity) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperr.BadRequest("order must contain at least one item")
	}
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, apperr.BadRequest("quantity must be at least 1")
		}
	}

	restaurant, err := s.restaurants.GetByID(ctx, input.RestaurantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load restaurant", err)
	}
	if restaurant == nil || !restaurant.Active {
		return nil, apperr.NotFound("restaurant not found or inactive")
	}

	// Batched lookup instead of fetching cart items one at a time.
	ids := make([]uint, 0, len(input.Items))
	for _, line := range input.Items {
		ids = append(ids, line.MenuItemID)
	}
	menuItems, err := s.menu.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load menu items", err)
	}
	byID := make(map[uint]model.MenuItem, len(menuItems))
	for _, item := range menuItems {
		byID[item.ID] = item
	}

	total := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		item, ok := byID[line.MenuItemID]
		if !ok {
			return nil, apperr.NotFound(fmt.Sprintf("menu item %d not found", line.MenuItemID))
		}
		if !item.Available {
			return nil, apperr.BadRequest(fmt.Sprintf("menu item %q is not available", item.Name))
		}
		if item.RestaurantID != input.RestaurantID {
			return nil, apperr.BadRequest(fmt.Sprintf("menu item %q belongs to a different restaurant", item.Name))
		}

		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		orderItems = append(orderItems, model.OrderItem{
			MenuItemID:          item.ID,
			Quantity:            line.Quantity,
			UnitPrice:           item.Price,
			TotalPrice:          lineTotal,
			SpecialInstructions: line.SpecialInstructions,
		})
	}

	customerName := input.CustomerName
	if customerName == "" {
		customerName = caller.Name
	}
	customerEmail := input.CustomerEmail
	if customerEmail == "" {
		customerEmail = caller.Email
	}

	order := &model.Order{
		OrderNumber:   model.NewOrderNumber(),
		TotalAmount:   total,
		Status:        model.OrderStatusPending,
		CustomerID:    caller.ID,
		RestaurantID:  input.RestaurantID,
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		CustomerPhone: input.CustomerPhone,
		Notes:         input.Notes,
		Items:         orderItems,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		// Callers never see partial-success detail from the transaction.
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to create order", err)
	}

	if s.events != nil {
		s.events.OrderCreated(ctx, order)
	}
	return order, nil
}

// UpdateStatus advances an order through the status graph. The caller must
// own the restaurant the order was placed with, verified by loading the
// order's restaurant, not just any owner role.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, next model.OrderStatus, caller model.Identity) (*model.Order, error) {
	if _, ok := model.ParseOrderStatus(string(next)); !ok {
		return nil, apperr.BadRequest(fmt.Sprintf("unknown status %q", string(next)))
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load order", err)
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}

	restaurant, err := s.restaurants.GetByID(ctx, order.RestaurantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load restaurant", err)
	}
	if restaurant == nil || restaurant.OwnerID != caller.ID {
		return nil, apperr.Forbidden("you do not own the restaurant for this order")
	}

	previous := order.Status
	if !previous.CanTransitionTo(next) {
		return nil, apperr.BadRequest(fmt.Sprintf("cannot transition order from %s to %s", previous, next))
	}

	order.Status = next
	if next == model.OrderStatusCompleted {
		now := time.Now()
		order.ActualDeliveryTime = &now
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update order", err)
	}

	if s.events != nil {
		s.events.OrderStatusChanged(ctx, order, previous)
	}
	return order, nil
}

// CancelOrder lets the order's customer cancel it while it is still PENDING.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uint, reason string, caller model.Identity) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load order", err)
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}
	if order.CustomerID != caller.ID {
		return nil, apperr.Forbidden("you can only cancel your own orders")
	}
	if order.Status != model.OrderStatusPending {
		return nil, apperr.BadRequest("order can no longer be cancelled")
	}

	previous := order.Status
	order.Status = model.OrderStatusCancelled
	if reason != "" {
		if order.Notes != "" {
			order.Notes += "\n"
		}
		order.Notes += "Cancellation reason: " + reason
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to update order", err)
	}

	if s.events != nil {
		s.events.OrderStatusChanged(ctx, order, previous)
	}
	return order, nil
}

// GetByID returns an order to its customer or to the owner of its
// restaurant.
func (s *OrderService) GetByID(ctx context.Context, orderID uint, caller model.Identity) (*model.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load order", err)
	}
	if order == nil {
		return nil, apperr.NotFound("order not found")
	}
	if order.CustomerID == caller.ID {
		return order, nil
	}

	restaurant, err := s.restaurants.GetByID(ctx, order.RestaurantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to load restaurant", err)
	}
	if restaurant == nil || restaurant.OwnerID != caller.ID {
		return nil, apperr.Forbidden("you do not have access to this order")
	}
	return order, nil
}

// GetMyOrders returns the caller's order history, newest first.
func (s *OrderService) GetMyOrders(ctx context.Context, caller model.Identity, statusFilter string, page, limit int) (*OrderPage, error) {
	status, err := normalizeStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit)

	orders, total, listErr := s.orders.ListByCustomer(ctx, caller.ID, status, page, limit)
	if listErr != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list orders", listErr)
	}
	return &OrderPage{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

// GetOrdersForRestaurant returns a restaurant's orders to its owner.
func (s *OrderService) GetOrdersForRestaurant(ctx context.Context, restaurantID uint, caller model.Identity, statusFilter string, page, limit int) (*OrderPage, error) {
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

	status, err := normalizeStatusFilter(statusFilter)
	if err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit)

	orders, total, listErr := s.orders.ListByRestaurant(ctx, restaurantID, status, page, limit)
	if listErr != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, "failed to list orders", listErr)
	}
	return &OrderPage{Orders: orders, Total: total, Page: page, Limit: limit}, nil
}

func normalizeStatusFilter(raw string) (model.OrderStatus, error) {
	if raw == "" {
		return "", nil
	}
	status, ok := model.ParseOrderStatus(raw)
	if !ok {
		return "", apperr.BadRequest(fmt.Sprintf("unknown status %q", raw))
	}
	return status, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

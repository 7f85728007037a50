package model

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// orderTransitions encodes the allowed status graph. Terminal states map to
// an empty set.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:     {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	status := OrderStatus(raw)
	_, ok := orderTransitions[status]
	return status, ok
}

// CanTransitionTo reports whether the status graph allows moving from s to
// next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// Order is the order header. TotalAmount always equals the sum of its items'
// TotalPrice at creation time.
type Order struct {
	ID                    uint            `json:"id" gorm:"primarykey"`
	OrderNumber           string          `json:"order_number" gorm:"type:varchar(50);uniqueIndex;not null"`
	TotalAmount           decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status                OrderStatus     `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	CustomerID            uint            `json:"customer_id" gorm:"index;not null"`
	RestaurantID          uint            `json:"restaurant_id" gorm:"index;not null"`
	CustomerName          string          `json:"customer_name" gorm:"type:varchar(255)"`
	CustomerEmail         string          `json:"customer_email" gorm:"type:varchar(255)"`
	CustomerPhone         string          `json:"customer_phone,omitempty" gorm:"type:varchar(50)"`
	Notes                 string          `json:"notes,omitempty" gorm:"type:text"`
	EstimatedDeliveryTime *time.Time      `json:"estimated_delivery_time,omitempty"`
	ActualDeliveryTime    *time.Time      `json:"actual_delivery_time,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	DeletedAt             gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem is a line item with the menu item price snapshotted at order
// time. Rows are immutable once created.
type OrderItem struct {
	ID                  uint            `json:"id" gorm:"primarykey"`
	OrderID             uint            `json:"order_id" gorm:"index;not null"`
	MenuItemID          uint            `json:"menu_item_id" gorm:"index;not null"`
	Quantity            int             `json:"quantity" gorm:"not null"`
	UnitPrice           decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice          decimal.Decimal `json:"total_price" gorm:"type:decimal(10,2);not null"`
	SpecialInstructions string          `json:"special_instructions,omitempty" gorm:"type:text"`
	CreatedAt           time.Time       `json:"created_at"`
}

const orderNumberSuffixChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderNumber builds a human-readable order number from the current time
// and a random base36 suffix. Uniqueness is enforced by the database
// constraint; a collision here is tolerated as extremely rare.
func NewOrderNumber() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = orderNumberSuffixChars[rand.Intn(len(orderNumberSuffixChars))]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

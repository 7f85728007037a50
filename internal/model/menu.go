package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuCategory groups menu items within a restaurant
type MenuCategory struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	Name         string         `json:"name" gorm:"type:varchar(100);not null"`
	DisplayOrder int            `json:"display_order" gorm:"default:0"`
	RestaurantID uint           `json:"restaurant_id" gorm:"index;not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Items []MenuItem `json:"items,omitempty" gorm:"foreignKey:CategoryID"`
}

// MenuItem represents a single orderable dish. CategoryID must belong to the
// same restaurant as the item.
type MenuItem struct {
	ID           uint            `json:"id" gorm:"primarykey"`
	Name         string          `json:"name" gorm:"type:varchar(255);not null"`
	Description  string          `json:"description" gorm:"type:text"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Available    bool            `json:"available" gorm:"default:true"`
	DisplayOrder int             `json:"display_order" gorm:"default:0"`
	CategoryID   uint            `json:"category_id" gorm:"index;not null"`
	RestaurantID uint            `json:"restaurant_id" gorm:"index;not null"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`
}

package model

import (
	"regexp"
	"time"

	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Restaurant represents a restaurant operated by an owner account
type Restaurant struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null"`
	Slug        string         `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Address     string         `json:"address" gorm:"type:varchar(255)"`
	Phone       string         `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Email       string         `json:"email,omitempty" gorm:"type:varchar(255)"`
	Active      bool           `json:"active" gorm:"default:true"`
	OwnerID     uint           `json:"owner_id" gorm:"index;not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Categories []MenuCategory `json:"categories,omitempty" gorm:"foreignKey:RestaurantID"`
}

// ValidSlug reports whether s is a URL-safe slug (lowercase letters, digits
// and single hyphens).
func ValidSlug(s string) bool {
	return s != "" && len(s) <= 100 && slugPattern.MatchString(s)
}

// PublicView strips owner-only contact fields and unavailable menu items,
// producing the projection served to non-owners.
func (r *Restaurant) PublicView() *Restaurant {
	public := &Restaurant{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Address:     r.Address,
		Active:      r.Active,
		OwnerID:     r.OwnerID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for _, category := range r.Categories {
		filtered := category
		filtered.Items = nil
		for _, item := range category.Items {
			if item.Available {
				filtered.Items = append(filtered.Items, item)
			}
		}
		public.Categories = append(public.Categories, filtered)
	}
	return public
}

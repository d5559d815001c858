package models

import (
	"time"
)

// Product represents a purchasable menu item
type Product struct {
	ID          uint     `json:"id" gorm:"primaryKey"`
	Name        string   `json:"name" gorm:"not null"`
	Description string   `json:"description" gorm:"not null"`
	Price       float64  `json:"price" gorm:"not null"`
	CategoryID  uint     `json:"categoryId" gorm:"not null"`
	Category    Category `json:"-" gorm:"foreignKey:CategoryID"`
	ImageURL    string   `json:"imageUrl"`

	// Available=false keeps the product visible on the menu but blocks
	// it from being ordered. No column default: a `default` tag makes GORM
	// omit the zero value on insert, which would turn false into true.
	Available   bool     `json:"available"`
	Ingredients []string `json:"ingredients" gorm:"serializer:json"`

	// Stock fields are informational for the admin panel; order placement
	// does not decrement them.
	StockQuantity int `json:"stockQuantity"`
	MinimumStock  int `json:"minimumStock"`

	CostPrice       *float64 `json:"costPrice,omitempty"`
	Weight          *float64 `json:"weight,omitempty"`
	Featured        bool     `json:"featured"`
	DiscountPercent int      `json:"discountPercent"`
	Tags            []string `json:"tags" gorm:"serializer:json"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}
